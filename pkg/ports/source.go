package ports

import (
	"context"
	"encoding/json"

	"github.com/aretw0/idx/pkg/domain"
)

// IncidentSource is the upstream EIDO agent.
type IncidentSource interface {
	// ListIncidents returns every incident known upstream.
	ListIncidents(ctx context.Context) ([]domain.Incident, error)

	// Ingest forwards an EIDO document and returns the upstream reply.
	Ingest(ctx context.Context, doc json.RawMessage) (map[string]any, error)
}
