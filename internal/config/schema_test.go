package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaJSON_IsValidJSON(t *testing.T) {
	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(GetSchemaJSON()), &schema))
	assert.Equal(t, "navsh Configuration", schema["title"])
}

func TestValidateWithSchema_ValidYAML(t *testing.T) {
	content := []byte(`
log_level: debug
prompt:
  template: "{{ .Dir }} > "
  symbol: ">"
shell:
  stderr: discard
`)

	result, err := ValidateWithSchema("config.yml", content)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateWithSchema_EmptyDocument(t *testing.T) {
	result, err := ValidateWithSchema("config.yaml", []byte(""))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWithSchema_UnknownKey(t *testing.T) {
	result, err := ValidateWithSchema("config.yml", []byte("history: 100\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateWithSchema_InvalidLogLevel(t *testing.T) {
	result, err := ValidateWithSchema("config.json", []byte(`{"log_level": "loud"}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "log_level", result.Errors[0].Field)
}

func TestValidateWithSchema_EmptySymbol(t *testing.T) {
	content := []byte(`
[prompt]
symbol = ""
`)

	result, err := ValidateWithSchema("config.toml", content)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0].Field, "symbol")
}

func TestValidateWithSchema_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		message string
	}{
		{"yaml", "config.yml", "prompt: [unclosed", "Invalid YAML syntax"},
		{"json", "config.json", `{"log_level":`, "Invalid JSON syntax"},
		{"toml", "config.toml", "log_level = ", "Invalid TOML syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateWithSchema(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, "syntax", result.Errors[0].Field)
			assert.Contains(t, result.Errors[0].Message, tt.message)
		})
	}
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema("config.ini", []byte(""))
	assert.Error(t, err)
}
