package ports

import "context"

// ClaimStore records which incidents the IDX agent has claimed.
// Claims have set semantics: claiming the same incident twice is a no-op.
type ClaimStore interface {
	// Claim marks the incident as claimed.
	// Returns domain.ErrEmptyIncidentID if incidentID is empty.
	Claim(ctx context.Context, incidentID string) error

	// List returns all claimed incident IDs in lexical order.
	List(ctx context.Context) ([]string, error)
}
