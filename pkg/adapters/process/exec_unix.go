//go:build unix

package process

import (
	"context"
	"syscall"
)

// handOver replaces the current process image. It only returns on failure.
func handOver(_ context.Context, req execRequest) error {
	return syscall.Exec(req.path, req.argv, req.env)
}
