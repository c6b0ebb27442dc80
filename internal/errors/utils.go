package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a StencilError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *StencilError {
	if err == nil {
		return nil
	}

	// Keep location details from an inner StencilError
	var se *StencilError
	if errors.As(err, &se) {
		return &StencilError{
			Type:      errType,
			Code:      code,
			Message:   message,
			Cause:     se,
			Context:   se.Context,
			Path:      se.Path,
			Operation: se.Operation,
			Line:      se.Line,
		}
	}

	return &StencilError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapIO wraps an OS error as an I/O error tagged with the path and operation
func WrapIO(err error, code, op, path string) *StencilError {
	se := Wrap(err, ErrorTypeIO, code, "failed")
	if se != nil {
		se.Operation = op
		se.Path = path
	}
	return se
}

// WrapRendering wraps a markup diagnostic as a rendering error for the given template file
func WrapRendering(err error, code, path string) *StencilError {
	se := Wrap(err, ErrorTypeRendering, code, "template rendering failed")
	if se != nil {
		se.Path = path
	}
	return se
}

// WrapConfig wraps an error as a malformed configuration error
func WrapConfig(err error, code, message string) *StencilError {
	return Wrap(err, ErrorTypeMalformedConfig, code, message)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, code, message string) *StencilError {
	return Wrap(err, ErrorTypeInternal, code, message)
}

// RootCause walks the Unwrap chain and returns the innermost error.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
