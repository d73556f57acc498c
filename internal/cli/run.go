package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/navsh/internal/completion"
	"github.com/NikitaCOEUR/navsh/internal/config"
	"github.com/NikitaCOEUR/navsh/internal/derrors"
	"github.com/NikitaCOEUR/navsh/internal/executor"
	"github.com/NikitaCOEUR/navsh/internal/fsquery"
	"github.com/NikitaCOEUR/navsh/internal/logger"
	"github.com/NikitaCOEUR/navsh/internal/prompt"
	"github.com/NikitaCOEUR/navsh/internal/repl"
	"github.com/NikitaCOEUR/navsh/internal/shell"
	"github.com/NikitaCOEUR/navsh/internal/trace"
	"github.com/NikitaCOEUR/navsh/pkg/version"
)

// RunParams contains parameters for the interactive session
type RunParams struct {
	LogLevel   string // Overrides the config file when set
	ConfigPath string // Config file; the XDG location is searched when empty
	Dir        string // Initial working directory; the process cwd when empty
	Stdin      *os.File
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run starts an interactive session and returns when input ends or a quit
// alias is entered.
func Run(ctx context.Context, params RunParams) error {
	if params.Stdin == nil {
		params.Stdin = os.Stdin
	}
	if params.Stdout == nil {
		params.Stdout = os.Stdout
	}
	if params.Stderr == nil {
		params.Stderr = os.Stderr
	}

	configPath := params.ConfigPath
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, params.Stderr)
	if params.LogLevel != "" {
		log.SetLevel(params.LogLevel)
	}

	fs := fsquery.OS{}

	dir, err := initialDir(params.Dir, fs)
	if err != nil {
		return err
	}

	var cmdStderr io.Writer = params.Stderr
	if cfg.Shell.Stderr == config.StderrDiscard {
		cmdStderr = nil
	}

	renderer, err := prompt.New(cfg.Prompt.Options())
	if err != nil {
		return derrors.NewConfigurationError(cfg.Path, "invalid prompt template", err)
	}

	loop := repl.New(
		shell.NewMachine(fs, executor.NewSh(cmdStderr, log), log),
		completion.NewEngine(fs, log),
		renderer,
		shell.NewState(dir),
		log,
	)

	log.Debug().
		Str("version", version.Version).
		Str("config", cfg.Path).
		Str("dir", dir).
		Str("log_level", log.Level()).
		Bool("trace", trace.IsEnabled()).
		Msg("Starting session")

	return loop.Run(ctx, params.Stdin, params.Stdout)
}

// initialDir resolves the starting directory to an existing absolute path
func initialDir(dir string, fs fsquery.FS) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if !fs.IsDir(abs) {
		return "", derrors.NewNavigationError(abs, fmt.Sprintf("no such directory: %s", dir))
	}
	return abs, nil
}
