package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Path / format resolution errors
	ErrorTypeInvalidExtension  ErrorType = "invalid_extension"
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"

	// Codec errors
	ErrorTypeDecode ErrorType = "decode"
	ErrorTypeEncode ErrorType = "encode"

	// Caller supplied input errors
	ErrorTypeInvalidOptions ErrorType = "invalid_options"

	// System errors
	ErrorTypeInternal ErrorType = "internal"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error codes for specific scenarios
const (
	CodeInvalidExtension  = "INVALID_EXTENSION"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeDecodeFailed      = "DECODE_FAILED"
	CodeEncodeFailed      = "ENCODE_FAILED"
	CodeInvalidOptions    = "INVALID_OPTIONS"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	InnerError error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.InnerError != nil {
		return e.InnerError.Error()
	}
	return string(e.Type)
}

// Unwrap returns the inner error
func (e *AppError) Unwrap() error {
	return e.InnerError
}

// WithCode adds a code to the error
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithInnerError sets the inner error
func (e *AppError) WithInnerError(err error) *AppError {
	e.InnerError = err
	return e
}

// Is reports whether target is an *AppError of the same type, so that
// errors.Is(err, &AppError{Type: ErrorTypeDecode}) works through wrapping.
func (e *AppError) Is(target error) bool {
	if targetApp, ok := target.(*AppError); ok {
		return e.Type == targetApp.Type
	}
	return false
}

// ExitCode maps the error type onto a process exit status for the CLI.
func (e *AppError) ExitCode() int {
	switch e.Type {
	case ErrorTypeInvalidOptions, ErrorTypeInvalidExtension, ErrorTypeUnsupportedFormat:
		return 2
	case ErrorTypeDecode, ErrorTypeEncode:
		return 3
	default:
		return 1
	}
}

// New creates a new AppError
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    string(errType),
	}
}

// FromError converts a standard error to AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Type:       ErrorTypeUnknown,
		Code:       string(ErrorTypeUnknown),
		Message:    err.Error(),
		InnerError: err,
	}
}

// WrapWithType wraps an error with a specific type
func WrapWithType(err error, errType ErrorType, message string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		InnerError: err,
		Code:       string(errType),
	}
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err (or anything it wraps) is an AppError of errType.
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// NewInvalidExtension reports a path without a file extension.
func NewInvalidExtension(path string) *AppError {
	return New(ErrorTypeInvalidExtension, "Invalid file extension").
		WithCode(CodeInvalidExtension).
		WithDetail("path", path)
}

// NewUnsupportedFormat reports an extension outside the supported table.
func NewUnsupportedFormat(ext string) *AppError {
	return New(ErrorTypeUnsupportedFormat, fmt.Sprintf("Unsupported format: %s", ext)).
		WithCode(CodeUnsupportedFormat).
		WithDetail("extension", ext)
}

// NewDecode wraps an I/O or bitstream failure while reading path.
func NewDecode(path string, cause error) *AppError {
	return WrapWithType(cause, ErrorTypeDecode, fmt.Sprintf("failed to decode %s: %v", path, cause)).
		WithCode(CodeDecodeFailed).
		WithDetail("path", path)
}

// NewEncode wraps an I/O or pixel layout failure while writing path.
func NewEncode(path string, cause error) *AppError {
	return WrapWithType(cause, ErrorTypeEncode, fmt.Sprintf("failed to encode %s: %v", path, cause)).
		WithCode(CodeEncodeFailed).
		WithDetail("path", path)
}

func NewInvalidOptions(message string) *AppError {
	return New(ErrorTypeInvalidOptions, message).WithCode(CodeInvalidOptions)
}

func NewInternal(message string) *AppError {
	return New(ErrorTypeInternal, message).WithCode(CodeInternalError)
}

// ErrorFormatter renders errors with their type, code and details for logs.
type ErrorFormatter struct {
	showInner bool
}

// NewErrorFormatter creates a formatter; showInner appends the wrapped cause.
func NewErrorFormatter(showInner bool) *ErrorFormatter {
	return &ErrorFormatter{
		showInner: showInner,
	}
}

// Format renders err on one line. Details are sorted by key so the output is stable.
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	appErr := FromError(err)

	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", appErr.Type, appErr.Message))

	if appErr.Code != "" {
		parts = append(parts, fmt.Sprintf("code=%s", appErr.Code))
	}

	if len(appErr.Details) > 0 {
		keys := make([]string, 0, len(appErr.Details))
		for k := range appErr.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, appErr.Details[k]))
		}
	}

	if f.showInner && appErr.InnerError != nil {
		parts = append(parts, "caused_by: "+appErr.InnerError.Error())
	}

	return strings.Join(parts, " | ")
}
