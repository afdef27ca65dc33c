//go:build !unix

package process

import "context"

// handOver falls back to spawn-and-wait where exec(2) is not available.
func handOver(ctx context.Context, req execRequest) error {
	return spawnAndWait(ctx, req)
}
