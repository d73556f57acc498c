// Package executor runs delegated command lines with an embedded POSIX shell
// interpreter, bound to the navsh working directory.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NikitaCOEUR/navsh/internal/derrors"
	"github.com/NikitaCOEUR/navsh/internal/logger"
	"github.com/NikitaCOEUR/navsh/internal/trace"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Executor runs a command line in dir and returns its captured standard output
type Executor interface {
	Execute(ctx context.Context, command, dir string) (string, error)
}

// Sh interprets command lines with mvdan.cc/sh.
// Execution blocks until the command finishes; there is no timeout.
type Sh struct {
	// Stderr receives the command's standard error; nil discards it
	Stderr io.Writer
	// Env replaces the process environment when non-nil
	Env []string

	log *logger.Logger
}

// NewSh creates a shell executor forwarding stderr to the given writer
func NewSh(stderr io.Writer, log *logger.Logger) *Sh {
	if log == nil {
		log = logger.Nop()
	}
	return &Sh{Stderr: stderr, log: log.Component("executor")}
}

// Execute parses and runs command with dir as its working directory
func (s *Sh) Execute(ctx context.Context, command, dir string) (string, error) {
	defer trace.Region(ctx, "delegate")()

	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(command), "")
	if err != nil {
		return "", derrors.NewExecutionError(command, "", "failed to parse command", err)
	}

	stderr := s.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	var stdout bytes.Buffer
	opts := []interp.RunnerOption{
		interp.StdIO(nil, &stdout, stderr),
		interp.Dir(dir),
	}
	if s.Env != nil {
		opts = append(opts, interp.Env(expand.ListEnviron(s.Env...)))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return "", derrors.NewExecutionError(command, "", "failed to prepare command", err)
	}

	start := time.Now()
	err = runner.Run(ctx, file)
	output := stdout.String()

	s.log.Debug().
		Str("command", command).
		Str("dir", dir).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("Delegated command finished")

	if err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return output, derrors.NewExecutionError(command, output, fmt.Sprintf("Failed with exit code %d", uint8(status)), nil)
		}
		return output, derrors.NewExecutionError(command, output, "command failed", err)
	}

	return output, nil
}
