package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// table is a header plus data rows read from a CSV or XLSX export. lines
// holds the 1-based source line (or sheet row) of each record.
type table struct {
	header  []string
	records [][]string
	lines   []int
}

// line returns the source line of record i.
func (t *table) line(i int) int {
	if i < len(t.lines) {
		return t.lines[i]
	}
	return i + 2
}

// readTable reads path as CSV, or the first sheet when the file is .xlsx.
func readTable(path string) (*table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func readCSV(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parseCSV(file)
}

func parseCSV(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	t := &table{header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		t.records = append(t.records, record)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

// readXLSX reads the first sheet of an XLSX file. The first row is the header.
func readXLSX(path string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	t := &table{}
	rowNum := 0
	for rows.Next() {
		rowNum++
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		if rowNum == 1 {
			t.header = record
			continue
		}
		if isBlank(record) {
			continue
		}
		t.records = append(t.records, record)
		t.lines = append(t.lines, rowNum)
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}

	return t, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
