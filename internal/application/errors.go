package application

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNoFileSelected  = errors.New("no file selected")
	ErrInvalidFileType = errors.New("only PDF files are supported")
	ErrNoSuchArtifact  = errors.New("artifact index out of range")
	ErrEditInProgress  = errors.New("another edit is already in progress")
	ErrNoEditSession   = errors.New("no edit session is open")
	ErrNoDialogs       = errors.New("native dialogs are not available")
)

// OperationError wraps a failure at an operation boundary with the
// operation name for logging.
type OperationError struct {
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new operation error
func NewOperationError(operation string, err error) *OperationError {
	return &OperationError{
		Operation: operation,
		Err:       err,
	}
}
