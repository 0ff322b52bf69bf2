package report

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a file type the reader cannot open.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrNoPatients indicates a spreadsheet with a header but no data rows.
var ErrNoPatients = errors.New("spreadsheet contains no patient rows")

// ErrMissingColumn indicates a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// ReadError represents a failure to read a spreadsheet.
type ReadError struct {
	File string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.File, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
