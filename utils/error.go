package utils

import "errors"

// ErrorKind classifies business errors so the HTTP layer can map each kind to a
// distinct status without string matching.
type ErrorKind string

const (
	ErrorKindNotFound          ErrorKind = "NotFound"
	ErrorKindInvalidTransition ErrorKind = "InvalidTransition"
	ErrorKindForbidden         ErrorKind = "Forbidden"
	ErrorKindConflict          ErrorKind = "Conflict"
	ErrorKindValidation        ErrorKind = "Validation"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrorKindNotFound, message)
}

func InvalidTransitionError(message string) *AppError {
	return NewAppError(ErrorKindInvalidTransition, message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrorKindForbidden, message)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrorKindConflict, message)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrorKindValidation, message)
}

// KindOf reports the classification of err; ok is false for infrastructure
// errors, which callers surface as an opaque 5xx.
func KindOf(err error) (ErrorKind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

var ErrorRecordNotFound = NotFoundError("record not found")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
