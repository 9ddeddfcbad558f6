package converter

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"itree-extract/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// Native reads spreadsheets in process: legacy .xls workbooks with xlrd and
// .xlsx workbooks with excelize
type Native struct {
	logger *log.Logger
}

// NewNative creates an in-process converter
func NewNative(logger *log.Logger) *Native {
	return &Native{logger: logging.OrDiscard(logger)}
}

// EnsureAvailable always succeeds; nothing outside the binary is needed
func (n *Native) EnsureAvailable() error {
	return nil
}

// Convert reads the first sheet of the workbook at path
func (n *Native) Convert(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return n.convertXLSX(path)
	default:
		return n.convertXLS(path)
	}
}

func (n *Native) convertXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	n.logger.Debug("reading sheet", "file", path, "sheet", sheets[0])

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return tableFromRows(rows), nil
}

func (n *Native) convertXLS(path string) (*Table, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{})
	if err != nil {
		return nil, err
	}
	if book.NSheets == 0 {
		return &Table{}, nil
	}

	sheet, err := book.SheetByIndex(0)
	if err != nil {
		return nil, err
	}
	n.logger.Debug("reading sheet", "file", path, "sheet", sheet.Name)

	rows := make([][]string, 0, sheet.NRows)
	for rowx := 0; rowx < sheet.NRows; rowx++ {
		row := make([]string, sheet.NCols)
		for colx := 0; colx < sheet.NCols; colx++ {
			row[colx] = xlsCellText(sheet.RawCellType(rowx, colx), sheet.RawCellValue(rowx, colx))
		}
		rows = append(rows, row)
	}
	return tableFromRows(rows), nil
}

func xlsCellText(ctype int, value interface{}) string {
	switch ctype {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return ""
	case xlrd.XL_CELL_NUMBER:
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			if v {
				return "TRUE"
			}
			return "FALSE"
		case int:
			if v != 0 {
				return "TRUE"
			}
			return "FALSE"
		}
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
