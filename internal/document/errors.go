package document

import (
	"errors"
	"fmt"
)

// ErrNothingToExport is returned when there is no rendered description to export or preview.
var ErrNothingToExport = errors.New("document: nothing to export")

// ExportError represents a failure while building the PDF or preview.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
