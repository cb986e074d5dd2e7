package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the file format of an import source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// FormatFor picks the format from the location's extension. Query strings
// and s3:// prefixes are ignored.
func FormatFor(location string) (Format, error) {
	if i := strings.IndexByte(location, '?'); i >= 0 {
		location = location[:i]
	}
	switch ext := strings.ToLower(path.Ext(location)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported import format %q: want .csv or .xlsx", ext)
	}
}

// rowReader yields table rows one at a time and returns io.EOF after the last.
type rowReader interface {
	Next() ([]string, error)
	Close() error
}

func newRowReader(r io.Reader, format Format) (rowReader, error) {
	switch format {
	case FormatCSV:
		return newCSVReader(r), nil
	case FormatXLSX:
		return newXLSXReader(r)
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
}

type csvReader struct {
	r *csv.Reader
}

func newCSVReader(r io.Reader) *csvReader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = br.Discard(len(byteOrderMark))
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &csvReader{r: cr}
}

func (c *csvReader) Next() ([]string, error) {
	row, err := c.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return row, nil
}

func (c *csvReader) Close() error { return nil }

// xlsxReader streams the first sheet of a workbook. excelize drops trailing
// empty cells, so rows are padded to the width of the first row.
type xlsxReader struct {
	file  *excelize.File
	rows  *excelize.Rows
	width int
}

func newXLSXReader(r io.Reader) (*xlsxReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, errors.New("xlsx file has no sheets")
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return &xlsxReader{file: f, rows: rows}, nil
}

func (x *xlsxReader) Next() ([]string, error) {
	for x.rows.Next() {
		row, err := x.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
		}
		if isBlank(row) {
			continue
		}
		if x.width == 0 {
			x.width = len(row)
		}
		for len(row) < x.width {
			row = append(row, "")
		}
		return row, nil
	}
	if err := x.rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return nil, io.EOF
}

func (x *xlsxReader) Close() error {
	_ = x.rows.Close()
	return x.file.Close()
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
