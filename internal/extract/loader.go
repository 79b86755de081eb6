package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/extrame/xls"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"

	"github.com/mmech/complyboard/internal/report"
)

// idWidth is the fixed width of zero-padded employee identifiers.
const idWidth = 6

// Load reads a compliance extract into a report.Table. The format follows
// the file extension: .csv, .csv.xz (or .xz), .xls, and anything else is
// treated as xlsx. The first row is the header; empty cells become null;
// IDs are zero-padded. Over-length IDs are kept verbatim (padding never
// truncates); they are a data-quality problem in the extract itself.
func Load(path string) (report.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.Table{}, fmt.Errorf("open extract: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f, path)
	if err != nil {
		return report.Table{}, fmt.Errorf("read extract %s: %w", filepath.Base(path), err)
	}
	return rowsToTable(rows)
}

func readRows(reader io.Reader, filename string) ([][]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".xz"):
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		return readCSVRows(xzReader)
	case strings.HasSuffix(name, ".csv"):
		return readCSVRows(reader)
	case strings.HasSuffix(name, ".xls"):
		return readXLSRows(reader)
	default:
		return readXLSXRows(reader)
	}
}

func readCSVRows(reader io.Reader) ([][]string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("extract is empty")
	}
	return rows, nil
}

func readXLSRows(reader io.Reader) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows := workbook.ReadAllCells(100000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

func readXLSXRows(reader io.Reader) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

func rowsToTable(rows [][]string) (report.Table, error) {
	header := rows[0]

	// Column index by name; an unnamed pandas index column is dropped.
	indexByColumn := make(map[string]int, len(header))
	var columns []string
	for idx, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" || name == "Unnamed: 0" {
			continue
		}
		if _, dup := indexByColumn[name]; dup {
			return report.Table{}, fmt.Errorf("duplicate column %q", name)
		}
		indexByColumn[name] = idx
		columns = append(columns, name)
	}

	for _, required := range report.RequiredColumns() {
		if _, ok := indexByColumn[required]; !ok {
			return report.Table{}, fmt.Errorf("missing required column: %s", required)
		}
	}

	table := report.NewTable(columns)
	for _, raw := range rows[1:] {
		if emptyRecord(raw) {
			continue
		}
		row := make(report.Row, len(columns))
		for _, col := range columns {
			row[col] = cellValue(raw, indexByColumn[col])
		}
		if id := row.Get(report.ColID); id != nil {
			row[report.ColID] = report.Ptr(report.PadLeadingZerosValue(*id, idWidth))
		}
		normalizeDateCell(row, report.ColCourseExpir)
		normalizeDateCell(row, report.ColLicExpir)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func emptyRecord(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellValue(raw []string, idx int) *string {
	if idx < 0 || idx >= len(raw) {
		return nil
	}
	v := strings.TrimSpace(raw[idx])
	if v == "" {
		return nil
	}
	return report.Ptr(v)
}

// normalizeDateCell rewrites an Excel numeric date serial as YYYY-MM-DD
// text. Comma-delimited date lists are textual already and pass through;
// the serial range guard keeps plain years from being misread as serials.
func normalizeDateCell(row report.Row, col string) {
	cell := row.Get(col)
	if cell == nil {
		return
	}
	serial, err := strconv.ParseFloat(*cell, 64)
	if err != nil {
		return
	}
	if serial < 20000 || serial > 80000 {
		return
	}
	if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
		row[col] = report.Ptr(parsed.Format("2006-01-02"))
	}
}

// Cache wraps Load with a process-lifetime single-load cache, the only
// caching in the system; it is invalidated by restart alone.
type Cache struct {
	path string

	once  sync.Once
	table report.Table
	err   error
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) Load() (report.Table, error) {
	c.once.Do(func() {
		c.table, c.err = Load(c.path)
	})
	return c.table, c.err
}
