package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "IDX agent 1.2.3")
	assert.NotContains(t, out, "\x1b[")
}

func TestRoutesMarkdown(t *testing.T) {
	md := RoutesMarkdown("IDX Agent API", []RouteRow{
		{Method: "GET", Path: "/health", Summary: "Liveness probe"},
		{Method: "POST", Path: "/api/v1/incidents/{incident_id}/claim", Summary: "a|b"},
	})

	assert.Contains(t, md, "# IDX Agent API")
	assert.Contains(t, md, "| GET | `/health` | Liveness probe |")
	assert.Contains(t, md, `a\|b`)
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := render(RoutesMarkdown("Routes", []RouteRow{{Method: "GET", Path: "/health", Summary: "Liveness probe"}}))
	require.NoError(t, err)
	assert.Contains(t, out, "/health")
}
