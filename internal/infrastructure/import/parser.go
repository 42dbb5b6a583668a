// Package csvimport reads CSV uploads row by row with header lookup.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// utf8BOM is stripped from the start of the input when present
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser reads a CSV stream whose first record is the header
type Parser struct {
	reader    *csv.Reader
	headers   []string
	headerMap map[string]int
	line      int
}

// ParserOption configures a Parser
type ParserOption func(*csv.Reader)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(r *csv.Reader) {
		r.Comma = d
	}
}

// NewParser wraps r, drops a UTF-8 BOM and reads the header row.
// Header names are trimmed and lower-cased.
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && string(head[:3]) == string(utf8BOM) {
		_, _ = buf.Discard(3)
		head = head[3:]
	}
	if !utf8.Valid(trimPartialRune(head)) {
		return nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	for _, opt := range opts {
		opt(reader)
	}

	record, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	p := &Parser{
		reader:    reader,
		headers:   make([]string, len(record)),
		headerMap: make(map[string]int, len(record)),
		line:      1,
	}
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		p.headers[i] = name
		p.headerMap[name] = i
	}
	return p, nil
}

// Headers returns the normalized header names
func (p *Parser) Headers() []string {
	return p.headers
}

// MissingHeaders returns the required headers absent from the file
func (p *Parser) MissingHeaders(required ...string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := p.headerMap[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one data record keyed by header
type Row struct {
	Line int
	data map[string]string
}

// Get returns the trimmed value of a column, empty when absent
func (r *Row) Get(column string) string {
	return r.data[column]
}

// Has reports whether the row carries the column
func (r *Row) Has(column string) bool {
	_, ok := r.data[column]
	return ok
}

// IsEmpty reports whether every value is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.data {
		if v != "" {
			return false
		}
	}
	return true
}

// Next returns the next non-empty row or io.EOF
func (p *Parser) Next() (*Row, error) {
	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		p.line++
		if err != nil {
			return nil, NewRowError(p.line, "", fmt.Sprintf("malformed row: %v", err))
		}

		row := &Row{Line: p.line, data: make(map[string]string, len(p.headers))}
		for i, h := range p.headers {
			if i < len(record) {
				row.data[h] = strings.TrimSpace(record[i])
			}
		}
		if row.IsEmpty() {
			continue
		}
		return row, nil
	}
}

// trimPartialRune cuts a rune split by the peek boundary
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size > 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}
