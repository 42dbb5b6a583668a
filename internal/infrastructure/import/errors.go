package csvimport

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when the upload has no bytes
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the upload is not UTF-8
	ErrInvalidEncoding = errors.New("CSV file must be UTF-8 encoded")

	// ErrMissingHeader is returned when the upload has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// RowError describes a rejected row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a RowError
func NewRowError(row int, column, message string) *RowError {
	return &RowError{Row: row, Column: column, Message: message}
}

// Report summarizes an import run
type Report struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Errors  []*RowError `json:"errors"`
}

// NewReport returns an empty report
func NewReport() *Report {
	return &Report{Errors: []*RowError{}}
}

// Fail records a row error
func (r *Report) Fail(err *RowError) {
	r.Errors = append(r.Errors, err)
}

// Failf records a row error built from a format string
func (r *Report) Failf(row int, column, format string, args ...any) {
	r.Fail(NewRowError(row, column, fmt.Sprintf(format, args...)))
}
