package errors

import (
	"errors"
	"fmt"
)

// CompileError is a compiler error with a stable code. Codes in the M1xxx
// range are schema problems, M2xxx are compiler invariants, M3xxx are
// external tool or environment failures.
type CompileError struct {
	Code    string
	Message string
	cause   error
}

func (e *CompileError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *CompileError) Unwrap() error {
	return e.cause
}

func (e *CompileError) Is(target error) bool {
	if t, ok := target.(*CompileError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// Schema errors: the input cannot be compiled.
	ErrSchema             = &CompileError{Code: "M1000", Message: "Invalid schema"}
	ErrUnknownElement     = &CompileError{Code: "M1001", Message: "Unrecognized schema element"}
	ErrUnsupportedElement = &CompileError{Code: "M1002", Message: "Unsupported schema construct"}
	ErrInvalidMapKey      = &CompileError{Code: "M1003", Message: "Map key must be a scalar type"}
	ErrOneofNonField      = &CompileError{Code: "M1004", Message: "Oneof may only contain fields"}

	// Compiler invariants: reaching these is a bug, not a data error.
	ErrUnexpectedElement     = &CompileError{Code: "M2001", Message: "Unexpected element kind in generator"}
	ErrUnexpectedCardinality = &CompileError{Code: "M2002", Message: "Unexpected field cardinality"}

	// Environment and external tools.
	ErrConfig          = &CompileError{Code: "M3001", Message: "Invalid configuration"}
	ErrProtocFailed    = &CompileError{Code: "M3002", Message: "Wire compiler (protoc) failed"}
	ErrProtocNotFound  = &CompileError{Code: "M3003", Message: "Wire compiler (protoc) not found"}
	ErrModuleNotFound  = &CompileError{Code: "M3004", Message: "go.mod not found"}
	ErrWriteFailed     = &CompileError{Code: "M3005", Message: "Failed to write generated file"}
	ErrSchemaNotFound  = &CompileError{Code: "M3006", Message: "Schema file not found"}
	ErrBindingsMissing = &CompileError{Code: "M3007", Message: "Wire bindings not produced"}
)

// New builds a CompileError with an ad-hoc code and message.
func New(code, message string, cause error) *CompileError {
	return &CompileError{Code: code, Message: message, cause: cause}
}

// Wrap attaches a cause to a sentinel, keeping its code for errors.Is.
func Wrap(sentinel *CompileError, cause error) *CompileError {
	return &CompileError{Code: sentinel.Code, Message: sentinel.Message, cause: cause}
}

// Wrapf attaches a formatted detail message to a sentinel.
func Wrapf(sentinel *CompileError, format string, args ...interface{}) *CompileError {
	return &CompileError{Code: sentinel.Code, Message: sentinel.Message, cause: fmt.Errorf(format, args...)}
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema) ||
		errors.Is(err, ErrUnknownElement) ||
		errors.Is(err, ErrUnsupportedElement) ||
		errors.Is(err, ErrInvalidMapKey) ||
		errors.Is(err, ErrOneofNonField)
}

func IsCompilerBug(err error) bool {
	return errors.Is(err, ErrUnexpectedElement) || errors.Is(err, ErrUnexpectedCardinality)
}

func IsExternal(err error) bool {
	return errors.Is(err, ErrProtocFailed) ||
		errors.Is(err, ErrProtocNotFound) ||
		errors.Is(err, ErrBindingsMissing)
}
