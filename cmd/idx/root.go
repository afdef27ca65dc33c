package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/aretw0/idx/internal/launcher"
	"github.com/aretw0/idx/internal/logging"
	"github.com/aretw0/idx/pkg/adapters/process"
	"github.com/spf13/cobra"
)

// newRootCmd builds the launcher command. A nil executor uses the real
// process runner.
func newRootCmd(program string, executor launcher.Executor) *cobra.Command {
	return &cobra.Command{
		Use:   program + " {api|ui}",
		Short: "Launch the IDX agent API or UI server",
		Long: `Selects one of the IDX servers from the first argument and replaces the
current process with it:

  api  API server on 0.0.0.0:8001
  ui   UI server on 0.0.0.0:8502`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []launcher.Option{
				launcher.WithOutput(cmd.OutOrStdout()),
				launcher.WithLogger(createLogger()),
			}
			if executor != nil {
				opts = append(opts, launcher.WithExecutor(executor))
			}
			return launcher.NewDispatcher(program, opts...).Run(cmd.Context(), args)
		},
	}
}

// Execute runs the launcher and exits with the resulting status.
func Execute() {
	program := filepath.Base(os.Args[0])
	cmd := newRootCmd(program, nil)
	cmd.SetArgs(os.Args[1:])
	err := cmd.ExecuteContext(context.Background())
	os.Exit(exitCode(err, cmd.ErrOrStderr(), program))
}

// exitCode maps a dispatch outcome to a process status, reporting hand-over
// failures on w. Invalid selectors were already reported by the dispatcher.
func exitCode(err error, w io.Writer, program string) int {
	if err == nil {
		return 0
	}

	var exitErr *process.ExitError
	if errors.As(err, &exitErr) {
		// -1 means the child was killed by a signal.
		if exitErr.Code < 0 {
			return 1
		}
		return exitErr.Code
	}

	if errors.Is(err, launcher.ErrInvalidCommand) {
		return 1
	}

	fmt.Fprintf(w, "%s: %v\n", program, err)
	if errors.Is(err, exec.ErrNotFound) {
		return 127
	}
	return 1
}

// createLogger enables debug diagnostics on Stderr when IDX_DEBUG is set.
func createLogger() *slog.Logger {
	if os.Getenv("IDX_DEBUG") != "" {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
