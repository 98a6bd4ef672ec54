package bulkimport

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Call-level failures. Nothing is attempted when one of these is returned;
// they are distinct from per-row errors, which never abort the call.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnreadableFile    = errors.New("file could not be read")
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrFileTooLarge      = errors.New("file exceeds the maximum upload size")
	ErrTooManyRows       = errors.New("file exceeds the maximum row count")
)

// Code classifies one per-row error.
type Code string

const (
	CodeMissingField      Code = "MissingField"
	CodeInvalidEmail      Code = "InvalidEmail"
	CodeInvalidDate       Code = "InvalidDate"
	CodeInvalidEnum       Code = "InvalidEnum"
	CodeInvalidNumber     Code = "InvalidNumber"
	CodeDuplicateInFile   Code = "DuplicateInFile"
	CodeAlreadyExists     Code = "AlreadyExists"
	CodeReferenceNotFound Code = "ReferenceNotFound"
	CodeCreateFailed      Code = "CreateFailed"
	CodeTimeout           Code = "Timeout"
)

// RowError attaches one problem to one physical row of the uploaded file.
// Row ordinals are 1-based and include the header row, so the first data row
// is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d, field %s: %s", e.Row, e.Field, e.Message)
}

func newRowError(row int, field string, code Code, message, value string) RowError {
	return RowError{Row: row, Field: field, Code: code, Message: message, Value: value}
}
