package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner hands the current process over to one of a fixed set of commands.
// It follows a Strict Registry pattern (Allow-Listing): only commands registered
// ahead of time can be launched, and callers select them by name.
type Runner struct {
	registry map[string]RegisteredProcess
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	execFn   execFunc
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string
}

// CommandLine renders the process as a single shell-like line (for display only).
func (p RegisteredProcess) CommandLine() string {
	return strings.Join(append([]string{p.Command}, p.Args...), " ")
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry registers every entry of procs.
func WithRegistry(procs map[string]RegisteredProcess) RunnerOption {
	return func(r *Runner) {
		for name, p := range procs {
			r.Register(name, p.Command, p.Args...)
		}
	}
}

// WithStdio overrides the standard streams used when the platform cannot
// replace the process image and falls back to spawn-and-wait.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// withExec swaps the hand-over primitive. Used by tests.
func withExec(fn execFunc) RunnerOption {
	return func(r *Runner) {
		r.execFn = fn
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		execFn:   handOver,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = RegisteredProcess{
		Command: command,
		Args:    append([]string(nil), args...),
	}
}

// Exec hands control over to the registered process.
//
// On platforms that support it the current process image is replaced and Exec
// only returns on failure. Elsewhere the child is spawned and waited for; a
// non-zero child exit is reported as *ExitError carrying the child's code.
// Failures to locate or start the binary are returned as-is.
func (r *Runner) Exec(ctx context.Context, name string) error {
	proc, ok := r.registry[name]
	if !ok {
		return fmt.Errorf("process not registered: %s", name)
	}

	path, err := exec.LookPath(proc.Command)
	if err != nil {
		return err
	}

	argv := append([]string{proc.Command}, proc.Args...)

	return r.execFn(ctx, execRequest{
		path:   path,
		argv:   argv,
		env:    os.Environ(),
		stdin:  r.stdin,
		stdout: r.stdout,
		stderr: r.stderr,
	})
}

// ExitError reports a child process that terminated with a non-zero status
// when the hand-over had to fall back to spawn-and-wait.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("process exited with status %d", e.Code)
}

type execRequest struct {
	path   string
	argv   []string
	env    []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type execFunc func(ctx context.Context, req execRequest) error

// spawnAndWait runs the child to completion, propagating its exit code.
func spawnAndWait(ctx context.Context, req execRequest) error {
	cmd := exec.CommandContext(ctx, req.path, req.argv[1:]...)
	cmd.Env = req.env
	cmd.Stdin = req.stdin
	cmd.Stdout = req.stdout
	cmd.Stderr = req.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return err
}
