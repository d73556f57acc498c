// Package main is the entry point for the navsh CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	navcli "github.com/NikitaCOEUR/navsh/internal/cli"
	"github.com/NikitaCOEUR/navsh/internal/trace"
	"github.com/NikitaCOEUR/navsh/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stop := trace.Init()

	err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(context.Background(), os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdin *os.File, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "navsh",
		Usage:     "Interactive shell front-end with cd completion",
		Version:   version.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); overrides the config file",
				Sources: cli.EnvVars("NAVSH_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (defaults to $XDG_CONFIG_HOME/navsh/config.yml)",
				Sources: cli.EnvVars("NAVSH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Initial working directory",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return navcli.Run(ctx, navcli.RunParams{
				LogLevel:   cmd.String("log-level"),
				ConfigPath: cmd.String("config"),
				Dir:        cmd.String("dir"),
				Stdin:      stdin,
				Stdout:     stdout,
				Stderr:     stderr,
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a sample config file in the navsh config directory",
				Action: func(_ context.Context, _ *cli.Command) error {
					return navcli.Init(stdout)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a navsh configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return navcli.Validate(stdout, configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for navsh configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return navcli.Schema(stdout, outputPath)
				},
			},
		},
	}
}
