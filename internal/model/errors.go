package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a single file failed to convert
type ErrorKind string

const (
	ErrInputNotFound          ErrorKind = "input_not_found"
	ErrInputUnreadable        ErrorKind = "input_unreadable"
	ErrMalformedDocument      ErrorKind = "malformed_document"
	ErrInsufficientRegions    ErrorKind = "insufficient_regions"
	ErrMissingCalibrationData ErrorKind = "missing_calibration_data"
	ErrOutputWriteFailure     ErrorKind = "output_write_failure"
	ErrCancelled              ErrorKind = "cancelled"
	ErrUnexpected             ErrorKind = "unexpected"
)

// ConversionError is the per-file failure returned by the converter
type ConversionError struct {
	Kind   ErrorKind
	Path   string // File the failure refers to (input or output)
	Detail string // Probable cause, user-facing
	Err    error  // Underlying error, shown with --debug
	Stack  []byte // Captured for ErrUnexpected panics
}

func (e *ConversionError) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Remedy returns a concrete next step for the user
func (e *ConversionError) Remedy() string {
	switch e.Kind {
	case ErrInputNotFound:
		return "The file may have been moved or deleted. Check the path and try again."
	case ErrInputUnreadable:
		return "Check that you have permission to read the file and that it is not locked by another program."
	case ErrMalformedDocument:
		return "The file may be corrupted or in a different format. Open it in NDP.view2 (or re-export the CSV) to verify it."
	case ErrInsufficientRegions:
		return "Add more reference annotations: the first 3 regions must be calibration points, followed by the shapes to capture."
	case ErrMissingCalibrationData:
		return "Make sure the first 3 regions are circle annotations with valid coordinates, or rerun with --force to write (0, 0) placeholders."
	case ErrOutputWriteFailure:
		return "Check folder write permissions and free disk space, or choose a different output folder."
	case ErrCancelled:
		return "The conversion was stopped before the file was written. Run it again to convert this file."
	default:
		return "Check that the file is a valid annotation export and try converting other files to see if the issue is file-specific. Rerun with --debug for details."
	}
}

// NewError builds a ConversionError
func NewError(kind ErrorKind, path, detail string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Path: path, Detail: detail, Err: err}
}

// Errorf builds a ConversionError with a formatted detail and no wrapped cause
func Errorf(kind ErrorKind, path, format string, args ...interface{}) *ConversionError {
	return &ConversionError{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind carried by err, or ErrUnexpected
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrUnexpected
}
