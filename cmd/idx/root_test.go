package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/aretw0/idx/pkg/adapters/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	calls []string
	err   error
}

func (r *recordingExecutor) Exec(ctx context.Context, name string) error {
	r.calls = append(r.calls, name)
	return r.err
}

func run(t *testing.T, executor *recordingExecutor, args ...string) (string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	cmd := newRootCmd("idx", executor)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	code := exitCode(err, &errOut, "idx")
	return out.String() + errOut.String(), code
}

func TestLauncher_Scenarios(t *testing.T) {
	t.Run("api", func(t *testing.T) {
		executor := &recordingExecutor{}
		out, code := run(t, executor, "api")
		assert.Equal(t, 0, code)
		assert.Equal(t, []string{"api"}, executor.calls)
		assert.Contains(t, out, "0.0.0.0:8001")
	})

	t.Run("ui", func(t *testing.T) {
		executor := &recordingExecutor{}
		out, code := run(t, executor, "ui")
		assert.Equal(t, 0, code)
		assert.Equal(t, []string{"ui"}, executor.calls)
		assert.Contains(t, out, "0.0.0.0:8502")
	})

	t.Run("foo", func(t *testing.T) {
		executor := &recordingExecutor{}
		out, code := run(t, executor, "foo")
		assert.Equal(t, 1, code)
		assert.Empty(t, executor.calls)
		assert.Contains(t, out, "Invalid command: foo")
		assert.Contains(t, out, "Usage: idx {api|ui}")
	})

	t.Run("no arguments", func(t *testing.T) {
		executor := &recordingExecutor{}
		out, code := run(t, executor)
		assert.Equal(t, 1, code)
		assert.Empty(t, executor.calls)
		assert.Contains(t, out, "Usage: idx {api|ui}")
	})

	t.Run("flags are selectors too", func(t *testing.T) {
		executor := &recordingExecutor{}
		out, code := run(t, executor, "--help")
		assert.Equal(t, 1, code)
		assert.Empty(t, executor.calls)
		assert.Contains(t, out, "Invalid command: --help")
	})
}

func TestExitCode(t *testing.T) {
	var w bytes.Buffer

	assert.Equal(t, 0, exitCode(nil, &w, "idx"))
	assert.Equal(t, 42, exitCode(&process.ExitError{Code: 42}, &w, "idx"))
	assert.Equal(t, 1, exitCode(&process.ExitError{Code: -1}, &w, "idx"))
	assert.Empty(t, w.String())

	notFound := &exec.Error{Name: "idx-api", Err: exec.ErrNotFound}
	assert.Equal(t, 127, exitCode(notFound, &w, "idx"))
	assert.Contains(t, w.String(), "idx-api")

	w.Reset()
	assert.Equal(t, 1, exitCode(fmt.Errorf("wrapped: %w", errors.New("permission denied")), &w, "idx"))
	assert.Contains(t, w.String(), "permission denied")
}

func TestLauncher_HandOverFailure(t *testing.T) {
	executor := &recordingExecutor{err: &exec.Error{Name: "streamlit", Err: exec.ErrNotFound}}
	out, code := run(t, executor, "ui")
	require.Equal(t, 127, code)
	assert.Contains(t, out, "streamlit")
}
