package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify an input JSON file")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrInvalidRoot     = errors.New("JSON root must be an object or a non-empty array of objects")
	ErrConfigNotFound  = errors.New("no built-in, local or file configuration matches the identifier")
	ErrConfigInvalid   = errors.New("configuration does not match the expected schema")
	ErrUnknownStruct   = errors.New("referenced struct is not defined")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeSchema  ErrorType = "schema"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeRender  ErrorType = "render"
	ErrorTypeFormat  ErrorType = "format"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError of the same Type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newAppError(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading the input document
func NewInputError(message string, err error) *AppError {
	return newAppError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to JSON syntax
func NewParsingError(message string, err error) *AppError {
	return newAppError(ErrorTypeParsing, message, err)
}

// NewSchemaError creates a new error for a root value of the wrong shape
func NewSchemaError(message string, err error) *AppError {
	return newAppError(ErrorTypeSchema, message, err)
}

// NewConfigError creates a new error related to template configuration lookup or decoding
func NewConfigError(message string, err error) *AppError {
	return newAppError(ErrorTypeConfig, message, err)
}

// NewRenderError creates a new error for a broken struct map during rendering
func NewRenderError(message string, err error) *AppError {
	return newAppError(ErrorTypeRender, message, err)
}

// NewFormatError creates a new error related to post-render formatting
func NewFormatError(message string, err error) *AppError {
	return newAppError(ErrorTypeFormat, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newAppError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeSchema:
			return fmt.Sprintf("Schema error: %s", appErr.Message)
		case ErrorTypeConfig:
			if appErr.Err != nil {
				return fmt.Sprintf("Configuration error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeRender:
			if appErr.Err != nil {
				return fmt.Sprintf("Render error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Render error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Code formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON object or array."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify an input JSON file."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrInvalidRoot) {
		return "Error: The JSON root must be an object or a non-empty array of objects."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
