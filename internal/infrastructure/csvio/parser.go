package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser reads an uploaded CSV file with relaxed header matching: headers
// are normalized so "First Name", "first_name" and "FIRST NAME" all bind
// to the same column.
type Parser struct {
	headers    []string
	headerMap  map[string]int
	currentRow int
	totalRows  int
	reader     *csv.Reader
}

// NewParser creates a Parser from a reader. The file must be UTF-8; a
// leading byte order mark is stripped.
func NewParser(r io.Reader) (*Parser, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := checkUTF8(buf); err != nil {
		return nil, err
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	return &Parser{
		headerMap: make(map[string]int),
		reader:    reader,
	}, nil
}

// ParseBytes creates a Parser over an in-memory upload
func ParseBytes(data []byte) (*Parser, error) {
	return NewParser(bytes.NewReader(data))
}

func checkUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding check: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// NormalizeHeader reduces a header to its canonical key: lowercase with
// runs of spaces, dots and dashes collapsed to underscores, so exported
// files round-trip through import unchanged.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	var b strings.Builder
	pendingSep := false
	for _, r := range h {
		switch r {
		case ' ', '\t', '.', '-', '_':
			pendingSep = true
		default:
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseHeader reads and normalizes the header row
func (p *Parser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		key := NormalizeHeader(h)
		p.headers[i] = key
		p.headerMap[key] = i
	}
	if len(p.headers) == 0 {
		return ErrMissingHeader
	}

	p.currentRow = 1
	return nil
}

// Headers returns the normalized header keys
func (p *Parser) Headers() []string {
	return p.headers
}

// HasHeader checks whether a normalized header key is present
func (p *Parser) HasHeader(key string) bool {
	_, ok := p.headerMap[key]
	return ok
}

// MissingHeaders returns the required header keys that are absent
func (p *Parser) MissingHeaders(required []string) []string {
	var missing []string
	for _, key := range required {
		if !p.HasHeader(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Row is one parsed data row keyed by normalized header
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed value of a column by normalized header key
func (r *Row) Get(key string) string {
	return r.Data[key]
}

// IsEmpty reports whether the row holds no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next data row. io.EOF marks the end of the file.
func (p *Parser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		p.currentRow++
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}

	p.currentRow++
	p.totalRows++

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
	}
	for i, key := range p.headers {
		if i < len(record) {
			row.Data[key] = strings.TrimSpace(record[i])
		} else {
			row.Data[key] = ""
		}
	}
	return row, nil
}

// ReadAllRows reads every remaining data row, skipping fully empty lines
func (p *Parser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TotalRows returns the number of data rows read so far
func (p *Parser) TotalRows() int {
	return p.totalRows
}
