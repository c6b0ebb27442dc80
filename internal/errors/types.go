package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeMalformedConfig ErrorType = "malformed_config"
	ErrorTypeIO              ErrorType = "io"
	ErrorTypeRendering       ErrorType = "rendering"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeInternal        ErrorType = "internal"
)

// StencilError is a structured error type with context.
type StencilError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Path      string
	Operation string
	Line      int
}

// Error implements the error interface.
func (e *StencilError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Operation != "" {
		parts = append(parts, e.Operation)
	}

	if e.Path != "" {
		location := e.Path
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *StencilError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *StencilError) Is(target error) bool {
	var t *StencilError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *StencilError) WithContext(key string, value interface{}) *StencilError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the file or directory the error refers to.
func (e *StencilError) WithPath(path string) *StencilError {
	e.Path = path

	return e
}

// WithLine adds a line number, used for manifest parse errors.
func (e *StencilError) WithLine(line int) *StencilError {
	e.Line = line

	return e
}

// WithOperation records the operation that failed (read, write, mkdir, ...).
func (e *StencilError) WithOperation(op string) *StencilError {
	e.Operation = op

	return e
}

// Error creation functions

// NewNotFoundError creates an error for an absent template or architecture.
// The attempted path is kept so the CLI can show where it looked.
func NewNotFoundError(code, message, path string) *StencilError {
	return &StencilError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
		Path:    path,
	}
}

// NewMalformedConfigError creates an error for an unparseable manifest.
func NewMalformedConfigError(code, message string) *StencilError {
	return &StencilError{
		Type:    ErrorTypeMalformedConfig,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *StencilError {
	return &StencilError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewRenderingError creates a markup rendering error.
func NewRenderingError(code, message string, cause error) *StencilError {
	return &StencilError{
		Type:    ErrorTypeRendering,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *StencilError {
	return &StencilError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *StencilError {
	return &StencilError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TypeOf returns the ErrorType of err, or an empty type for foreign errors.
func TypeOf(err error) ErrorType {
	var se *StencilError
	if errors.As(err, &se) {
		return se.Type
	}

	return ""
}

// CodeOf returns the error code of err, or an empty string for foreign errors.
func CodeOf(err error) string {
	var se *StencilError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsNotFound checks if an error reports a missing template or architecture.
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsMalformedConfig checks if an error comes from manifest parsing.
func IsMalformedConfig(err error) bool {
	return TypeOf(err) == ErrorTypeMalformedConfig
}

// IsIO checks if an error is an I/O failure.
func IsIO(err error) bool {
	return TypeOf(err) == ErrorTypeIO
}

// IsRendering checks if an error is a rendering failure.
func IsRendering(err error) bool {
	return TypeOf(err) == ErrorTypeRendering
}

// Common error codes.
const (
	ErrCodeTemplateNotFound     = "ERR_TEMPLATE_NOT_FOUND"
	ErrCodeArchitectureNotFound = "ERR_ARCHITECTURE_NOT_FOUND"
	ErrCodeManifestInvalid      = "ERR_MANIFEST_INVALID"
	ErrCodeArchitectureInvalid  = "ERR_ARCHITECTURE_INVALID"
	ErrCodeReadFailed           = "ERR_READ_FAILED"
	ErrCodeWriteFailed          = "ERR_WRITE_FAILED"
	ErrCodeMkdirFailed          = "ERR_MKDIR_FAILED"
	ErrCodeWalkFailed           = "ERR_WALK_FAILED"
	ErrCodeRenderFailed         = "ERR_RENDER_FAILED"
	ErrCodeTemplateParse        = "ERR_TEMPLATE_PARSE"
	ErrCodeInvalidName          = "ERR_INVALID_NAME"
	ErrCodeConfigInvalid        = "ERR_CONFIG_INVALID"
	ErrCodeInternalError        = "ERR_INTERNAL"
)

// Helper functions for common errors

// ErrTemplateNotFound creates a template not found error.
func ErrTemplateNotFound(templateType, path string) *StencilError {
	return NewNotFoundError(
		ErrCodeTemplateNotFound,
		"template not found: "+templateType,
		path,
	)
}

// ErrArchitectureNotFound creates an architecture not found error.
func ErrArchitectureNotFound(name, path string) *StencilError {
	return NewNotFoundError(
		ErrCodeArchitectureNotFound,
		"architecture not found and no default architecture available: "+name,
		path,
	)
}

// ErrInvalidName creates an error for an unusable base name.
func ErrInvalidName(name string) *StencilError {
	return NewValidationError(ErrCodeInvalidName, fmt.Sprintf("invalid name %q", name))
}
