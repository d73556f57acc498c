package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/navsh/internal/config"
)

// Schema prints the JSON Schema for navsh configuration files, or writes it
// to outputPath when one is given.
func Schema(out io.Writer, outputPath string) error {
	schemaJSON := config.GetSchemaJSON()

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		fmt.Fprintf(out, "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	fmt.Fprintln(out, schemaJSON)
	return nil
}
