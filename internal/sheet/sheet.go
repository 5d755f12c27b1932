// Package sheet implements the spreadsheet import/export engine: tolerant
// header resolution, xlsx/csv decoding into header-keyed rows, and workbook
// generation for exports.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type used when streaming generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HeaderRows is the number of rows preceding the data in an uploaded sheet.
// Row errors report spreadsheet row numbers, so data row i maps to row
// i + HeaderRows + 1.
const HeaderRows = 1

var acceptedContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel":                                          true,
	"text/csv":                                                          true,
	"application/csv":                                                   true,
}

var acceptedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// Row maps normalized column headers to raw cell values
type Row map[string]string

// Accepted reports whether an upload looks like a spreadsheet. Either the
// declared content type or the file extension may match, because upload
// tooling reports inconsistent content types for CSV.
func Accepted(filename, contentType string) bool {
	if mediaType, _, found := strings.Cut(contentType, ";"); found {
		contentType = mediaType
	}
	if acceptedContentTypes[strings.TrimSpace(strings.ToLower(contentType))] {
		return true
	}
	return acceptedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Decode parses an uploaded spreadsheet into header-keyed rows. Only the
// first sheet of a workbook is read; the first row becomes the keys.
func Decode(filename string, data []byte) ([]Row, error) {
	var (
		records [][]string
		err     error
	)
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		records, err = decodeCSV(data)
	} else {
		records, err = decodeWorkbook(data)
	}
	if err != nil {
		return nil, err
	}
	return keyRows(records), nil
}

func decodeCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return records, nil
}

func keyRows(records [][]string) []Row {
	if len(records) < HeaderRows {
		return nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-HeaderRows)
	for _, record := range records[HeaderRows:] {
		row := Row{}
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// normalizeHeader folds a column header to its canonical lookup form:
// lowercase with spaces, underscores and hyphens removed, so "Net Volume",
// "net_volume" and "NetVolume" all collide.
func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch r {
		case ' ', '_', '-':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// lookup resolves a field value from a row through its alias set
func lookup(row Row, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// SplitList splits a comma-separated cell into trimmed, non-empty elements
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
