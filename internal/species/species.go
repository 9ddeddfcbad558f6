// Package species flattens the per-region SpeciesCode spreadsheets of a
// resource directory into a single species master list.
package species

import (
	"bufio"
	stderrors "errors"
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"itree-extract/internal/converter"
	"itree-extract/internal/errors"
	"itree-extract/internal/logging"
	"itree-extract/internal/models"

	"github.com/charmbracelet/log"
)

// OutputFile is the name of the master list written into the output directory
const OutputFile = "species_master_list.csv"

// Result summarizes one extraction run
type Result struct {
	Path    string
	Regions int
	Rows    int
}

// Normalizer walks a resource directory and writes the master list
type Normalizer struct {
	conv     converter.Converter
	fileName string
	logger   *log.Logger
}

// NewNormalizer creates a normalizer that converts every file named
// fileName with conv
func NewNormalizer(conv converter.Converter, fileName string, logger *log.Logger) *Normalizer {
	return &Normalizer{
		conv:     conv,
		fileName: fileName,
		logger:   logging.OrDiscard(logger),
	}
}

// IsValidCode reports whether a species code is usable: non-blank and not
// a repeat of the header label
func IsValidCode(code string) bool {
	code = strings.TrimSpace(code)
	return code != "" && models.CleanLabel(code) != models.ColSpeciesCode
}

// IsValidName reports whether a scientific name is real text. Conversion
// artifacts show up as numeric placeholders. Out of range numbers such as
// 1e400 still count as numeric.
func IsValidName(name string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(name), 64)
	if err == nil || stderrors.Is(err, strconv.ErrRange) {
		return false
	}
	return true
}

// Extract writes outputDir/species_master_list.csv, replacing any previous
// file, with one row per valid species of every region under resourceDir
func (n *Normalizer) Extract(outputDir, resourceDir string) (res Result, err error) {
	if err := n.conv.EnsureAvailable(); err != nil {
		return res, err
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return res, err
		}
	}

	res.Path = filepath.Join(outputDir, OutputFile)
	f, err := os.Create(res.Path)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(f)
	w := csv.NewWriter(buf)
	if err := w.Write(models.SpeciesHeader()); err != nil {
		return res, err
	}

	err = filepath.WalkDir(resourceDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || d.Name() != n.fileName {
			return nil
		}

		region := filepath.Base(filepath.Dir(path))
		rows, err := n.regionRows(path, region)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := w.Write(row.Record()); err != nil {
				return err
			}
		}
		res.Regions++
		res.Rows += len(rows)
		n.logger.Debug("region converted", "region", region, "rows", len(rows))
		return nil
	})

	// Flush what was written even when the walk failed part way
	w.Flush()
	if ferr := w.Error(); err == nil {
		err = ferr
	}
	if ferr := buf.Flush(); err == nil {
		err = ferr
	}
	return res, err
}

// regionRows converts one spreadsheet and returns its valid rows tagged with
// region
func (n *Normalizer) regionRows(path, region string) ([]models.SpeciesRow, error) {
	table, err := n.conv.Convert(path)
	if err != nil {
		return nil, err
	}
	if table.Header == nil {
		return nil, nil
	}

	idx := models.NewColumnIndex(table.Header)
	for _, col := range []string{models.ColSpeciesCode, models.ColScientificName} {
		if !idx.Has(col) {
			return nil, errors.NewMissingColumnError(path, col)
		}
	}

	var rows []models.SpeciesRow
	for _, record := range table.Rows {
		row := idx.SpeciesRow(record)
		if !IsValidCode(row.SpeciesCode) || !IsValidName(row.ScientificName) {
			continue
		}
		row.Region = region
		rows = append(rows, row)
	}
	return rows, nil
}
