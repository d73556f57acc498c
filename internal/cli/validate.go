package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/navsh/internal/config"
)

// Validate validates a navsh configuration file.
// With no path, the file in the config directory is used.
func Validate(out io.Writer, configPath string) error {
	if configPath == "" {
		configPath = config.FindConfigFile()
		if configPath == "" {
			return fmt.Errorf("no config file found")
		}
	}

	fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintln(out, "✅ Configuration is valid!")
		return nil
	}

	fmt.Fprintln(out, "❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
