package config

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/navsh/internal/prompt"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) fail(field, message string) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
	return r
}

// Validate checks a config file against the schema, then checks the values
// the schema cannot express (the prompt template must parse).
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return result.fail("syntax", fmt.Sprintf("Failed to parse config: %v", err)), nil
	}

	if _, err := prompt.ParseTemplate(cfg.Prompt.Template); err != nil {
		result.fail("prompt.template", fmt.Sprintf("Invalid template: %v", err))
	}

	return result, nil
}
