//go:build unix

package process_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/aretw0/idx/internal/launcher"
	"github.com/aretw0/idx/pkg/adapters/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handOverHelperEnv makes the test binary act as the launcher's child side.
const handOverHelperEnv = "IDX_HANDOVER_HELPER"

// stubServer writes an executable named name into a fresh directory. The
// stub echoes its PID and arguments, then exits with code.
func stubServer(t *testing.T, name string, code int) string {
	t.Helper()
	dir := t.TempDir()
	script := fmt.Sprintf("#!/bin/sh\necho \"pid=$$ args=$*\"\nexit %d\n", code)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
	return dir
}

func TestExec_ReplacesProcessImage(t *testing.T) {
	if os.Getenv(handOverHelperEnv) == "1" {
		err := process.NewRunner(process.WithRegistry(launcher.Registry())).
			Exec(context.Background(), launcher.CommandAPI)
		// Only reached when the hand-over failed.
		fmt.Fprintf(os.Stderr, "exec returned: %v\n", err)
		os.Exit(2)
	}

	dir := stubServer(t, launcher.APIBinary, 7)

	cmd := exec.Command(os.Args[0], "-test.run=^TestExec_ReplacesProcessImage$")
	cmd.Env = append(os.Environ(), handOverHelperEnv+"=1", "PATH="+dir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "stderr: %s", stderr.String())
	assert.Equal(t, 7, exitErr.ExitCode(), "stderr: %s", stderr.String())
	assert.NotContains(t, stderr.String(), "exec returned")

	want := fmt.Sprintf("pid=%d args=--host 0.0.0.0 --port 8001\n", cmd.Process.Pid)
	assert.Contains(t, stdout.String(), want)
}

func TestExec_MissingBinaryReturns(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := process.NewRunner(process.WithRegistry(launcher.Registry())).
		Exec(context.Background(), launcher.CommandAPI)

	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
