// Package report splits the tables of ResourceUnit.html report pages into
// one CSV file per category.
package report

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"itree-extract/internal/errors"
	"itree-extract/internal/logging"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
)

// Result summarizes one extraction run
type Result struct {
	Pages int
	Files []string
}

// Splitter walks a resource directory and splits every report page it finds
type Splitter struct {
	fileName string
	logger   *log.Logger
}

// NewSplitter creates a splitter for report pages named fileName
func NewSplitter(fileName string, logger *log.Logger) *Splitter {
	return &Splitter{
		fileName: fileName,
		logger:   logging.OrDiscard(logger),
	}
}

// Extract splits every report page under resourceDir. Output for a page in
// directory X goes to outputDir/output__X__<category>.csv. The first
// category lookup failure stops the run; files already written are kept.
func (s *Splitter) Extract(outputDir, resourceDir string) (Result, error) {
	var res Result
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return res, err
		}
	}

	err := filepath.WalkDir(resourceDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || d.Name() != s.fileName {
			return nil
		}

		unit := filepath.Base(filepath.Dir(path))
		files, err := s.SplitFile(path, filepath.Join(outputDir, "output__"+unit))
		res.Files = append(res.Files, files...)
		if err != nil {
			return err
		}
		res.Pages++
		s.logger.Info("split report", "unit", unit, "tables", len(files))
		return nil
	})
	return res, err
}

// SplitFile parses the page at path and writes one file per table, named
// prefix__<category>.csv. It returns the files written.
func (s *Splitter) SplitFile(path, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}
	return s.split(doc, path, prefix)
}

func (s *Splitter) split(doc *goquery.Document, source, prefix string) ([]string, error) {
	categories := Categories(doc)

	var written []string
	tables := doc.Find("table")
	for i := range tables.Nodes {
		table := tables.Eq(i)

		category, err := resolveCategory(table, categories, source)
		if err != nil {
			return written, err
		}

		out := prefix + "__" + category + ".csv"
		if err := writeTable(out, table); err != nil {
			return written, err
		}
		written = append(written, out)
		s.logger.Debug("wrote table", "file", out)
	}
	return written, nil
}

// Categories maps anchor ids to labels using the links of the page's first
// paragraph. "#a1" linking "Street Trees" yields a1 -> street_trees.
func Categories(doc *goquery.Document) map[string]string {
	ids := make(map[string]string)
	doc.Find("p").First().Find("a").Each(func(i int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		ids[strings.TrimPrefix(href, "#")] = Label(a.Text())
	})
	return ids
}

// Label normalizes a link's text into a file name component
func Label(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

// resolveCategory finds the label for table via the name of the nearest
// anchor sibling before it
func resolveCategory(table *goquery.Selection, categories map[string]string, source string) (string, error) {
	anchor := table.PrevAllFiltered("a").First()
	if anchor.Length() == 0 {
		return "", errors.NewCategoryError(source, "")
	}
	name, ok := anchor.Attr("name")
	if !ok {
		return "", errors.NewCategoryError(source, "")
	}
	category, ok := categories[name]
	if !ok {
		return "", errors.NewCategoryError(source, name)
	}
	return category, nil
}

// writeTable writes one line per row of table to path, replacing the file.
// Cell text has commas removed and is joined unquoted.
func writeTable(path string, table *goquery.Selection) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.ReplaceAll(cell.Text(), ",", ""))
		})
		w.WriteString(strings.Join(cells, ",") + "\n")
	})
	return w.Flush()
}
