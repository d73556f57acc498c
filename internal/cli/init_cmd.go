package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/navsh/internal/config"
	"github.com/NikitaCOEUR/navsh/internal/derrors"
)

const sampleConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/NikitaCOEUR/navsh/main/internal/config/schema.json
# navsh configuration file

# Log level written to stderr (debug, info, warn, error)
log_level: warn

prompt:
  # Go text/template with sprig functions.
  # Fields: .Path .Via .Symbol (styled) and .Dir (plain display path)
  template: "{{ .Path }} {{ .Via }} {{ .Symbol }} "
  path_color: "6"
  via_color: "7"
  symbol: "λ"
  symbol_color: "2"

shell:
  # inherit: delegated commands write stderr to the terminal
  # discard: stderr of delegated commands is dropped
  stderr: inherit
`

// Init writes a sample config file into the navsh config directory
func Init(out io.Writer) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return derrors.NewConfigurationError("", "failed to get config directory", err)
	}

	configPath := filepath.Join(dir, config.SupportedConfigNames[0])

	if existing := config.FindConfigFile(); existing != "" {
		return derrors.NewConfigurationError(existing, fmt.Sprintf("config file already exists: %s", existing), nil)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to create config directory", err)
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	fmt.Fprintf(out, "Created config: %s\n", configPath)
	return nil
}
