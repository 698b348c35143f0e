package apperrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType classifies application errors for logging and transport mapping.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError is an application error carrying a type, a stable code and
// optional structured context.
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]interface{}
	Source   string
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped internal error.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches on type and code for AppError targets, otherwise defers to the
// wrapped error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext attaches a key/value pair to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns the error as structured logging fields.
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	for k, v := range e.Context {
		fields = append(fields, k, v)
	}
	return fields
}

// New creates a new AppError recording the caller as its source.
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  callerSource(),
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   callerSource(),
	}
}

func callerSource() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", file, line)
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for errors that
// are not AppErrors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsValidation reports whether err is a validation AppError.
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// Convenience constructors for the common cases.

func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: "VALIDATION", Message: message, Source: callerSource()}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND", Message: fmt.Sprintf("%s not found", resource), Source: callerSource()}
}

func NewDatabaseError(err error) *AppError {
	return &AppError{Type: ErrorTypeDatabase, Code: "DB_ERROR", Message: "Database operation failed", Internal: err, Source: callerSource()}
}

func NewExternalAPIError(err error, api string) *AppError {
	e := &AppError{Type: ErrorTypeExternal, Code: "EXTERNAL_API", Message: fmt.Sprintf("%s API error", api), Internal: err, Source: callerSource()}
	return e.WithContext("api", api)
}

func NewTimeoutError(operation string) *AppError {
	e := &AppError{Type: ErrorTypeTimeout, Code: "TIMEOUT", Message: fmt.Sprintf("%s operation timed out", operation), Source: callerSource()}
	return e.WithContext("operation", operation)
}
