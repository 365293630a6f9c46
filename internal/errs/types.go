package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// DuplicateIDError is returned when a widget is appended to a collection
// that already holds its id. Callers must generate fresh ids.
type DuplicateIDError struct {
	ErrorMessage
	ID string
}

// SourceError wraps a failure to load or parse the business record.
type SourceError struct {
	ErrorMessage
	Path string
	Err  error
}

func (e *SourceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDuplicateIDError(id string) *DuplicateIDError {
	return &DuplicateIDError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("widget id %q already exists", id)},
		ID:           id,
	}
}

func NewSourceError(path string, err error) *SourceError {
	return &SourceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("failed to load record %s: %v", path, err)},
		Path:         path,
		Err:          err,
	}
}
