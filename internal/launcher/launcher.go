// Package launcher selects one of the IDX servers from a single selector token
// and hands the current process over to it.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/idx/internal/logging"
	"github.com/aretw0/idx/pkg/adapters/process"
	"github.com/muesli/termenv"
)

// Executor hands control to a registered process by name.
type Executor interface {
	Exec(ctx context.Context, name string) error
}

// Dispatcher evaluates the selector and dispatches exactly once.
type Dispatcher struct {
	program  string
	out      io.Writer
	executor Executor
	logger   *slog.Logger
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithOutput sets where progress and usage lines are written.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithExecutor replaces the process runner.
func WithExecutor(e Executor) Option {
	return func(d *Dispatcher) {
		d.executor = e
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates a dispatcher for program (used in the usage line).
// By default it writes to Stdout and execs through a process.Runner holding
// the fixed target registry. Where the runner has to spawn and wait, the
// child writes to the dispatcher's output.
func NewDispatcher(program string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		program: program,
		out:     os.Stdout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.executor == nil {
		d.executor = process.NewRunner(
			process.WithRegistry(Registry()),
			process.WithStdio(os.Stdin, d.out, os.Stderr),
		)
	}
	return d
}

// Resolve maps the first argument to a target. Only args[0] is inspected.
func Resolve(args []string) (Target, error) {
	token := ""
	if len(args) > 0 {
		token = args[0]
	}
	for _, t := range Targets() {
		if t.Command == token {
			return t, nil
		}
	}
	return Target{}, &InvalidCommandError{Token: token}
}

// Usage returns the one-line usage string.
func Usage(program string) string {
	commands := make([]string, 0, 2)
	for _, t := range Targets() {
		commands = append(commands, t.Command)
	}
	return fmt.Sprintf("Usage: %s {%s}", program, strings.Join(commands, "|"))
}

// Run resolves args and hands the process over to the selected target.
// On an unknown selector it prints the error and usage lines and returns an
// *InvalidCommandError without executing anything.
func (d *Dispatcher) Run(ctx context.Context, args []string) error {
	out := termenv.NewOutput(d.out)

	target, err := Resolve(args)
	var invalid *InvalidCommandError
	if errors.As(err, &invalid) {
		d.logger.Debug("Rejected selector", "token", invalid.Token)
		fmt.Fprintln(d.out, out.String("Invalid command: "+invalid.Token).Foreground(out.Color("1")))
		fmt.Fprintln(d.out, Usage(d.program))
		return err
	}

	d.logger.Debug("Dispatching",
		"command", target.Command,
		"addr", target.Addr(),
		"exec", target.Process.CommandLine(),
	)
	fmt.Fprintln(d.out, out.String(fmt.Sprintf("Starting %s on %s...", target.Name, target.Addr())).Bold())

	return d.executor.Exec(ctx, target.Command)
}
