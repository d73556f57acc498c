// Package derrors provides custom error types for navsh.
// Each type carries a stable code so callers can branch on the failure kind
// without matching on message text.
package derrors

import (
	"fmt"
)

// NavshError is the base interface for all navsh errors
type NavshError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all navsh errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// NavigationError represents a directory change that could not be made
type NavigationError struct {
	baseError
	Path string
}

// NewNavigationError creates a new navigation error
func NewNavigationError(path string, message string) *NavigationError {
	return &NavigationError{
		baseError: baseError{
			code:    "NAV_ERROR",
			message: message,
		},
		Path: path,
	}
}

// ExecutionError represents a delegated command that failed.
// Output holds whatever the command wrote before failing.
type ExecutionError struct {
	baseError
	Command string
	Output  string
}

// NewExecutionError creates a new execution error
func NewExecutionError(command, output string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
		Output:  output,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents a configuration value rejected by the schema
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}
