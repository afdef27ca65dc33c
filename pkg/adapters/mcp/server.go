// Package mcp exposes the IDX agent operations as Model Context Protocol tools,
// so assistants can list, claim and correlate incidents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/idx/pkg/domain"
	"github.com/aretw0/idx/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ClaimedResponse lists claimed incidents.
type ClaimedResponse struct {
	IncidentIDs []string `json:"incident_ids" jsonschema_description:"Claimed incident IDs"`
}

// Server wraps the IDX ports and exposes them as an MCP Server.
type Server struct {
	incidents ports.IncidentSource
	claims    ports.ClaimStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(incidents ports.IncidentSource, claims ports.ClaimStore, version string) *Server {
	s := &Server{
		incidents: incidents,
		claims:    claims,
		mcpServer: server.NewMCPServer("idx-mcp", version),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: list_incidents
	s.mcpServer.AddTool(mcp.NewTool("list_incidents",
		mcp.WithDescription("List all incidents known to the EIDO Agent."),
	), s.handleListIncidents)

	// TOOL: claim_incident
	claimTool := mcp.NewTool("claim_incident",
		mcp.WithDescription("Claim an incident for the IDX Agent."),
		mcp.WithString("incident_id", mcp.Required(), mcp.Description("ID of the incident to claim")),
		mcp.WithOutputSchema[domain.ClaimReceipt](),
	)
	s.mcpServer.AddTool(claimTool, mcp.NewStructuredToolHandler(s.handleClaim))

	// TOOL: list_claimed
	claimedTool := mcp.NewTool("list_claimed",
		mcp.WithDescription("List the incidents claimed by the IDX Agent."),
		mcp.WithOutputSchema[ClaimedResponse](),
	)
	s.mcpServer.AddTool(claimedTool, mcp.NewStructuredToolHandler(s.handleListClaimed))

	// TOOL: correlate_incident
	correlateTool := mcp.NewTool("correlate_incident",
		mcp.WithDescription("Correlate a new incident with existing incidents."),
		mcp.WithString("incident_id", mcp.Description("ID of the incoming incident")),
		mcp.WithString("incident", mcp.Description("JSON object of the incoming incident (optional)")),
		mcp.WithOutputSchema[domain.CorrelationResponse](),
	)
	s.mcpServer.AddTool(correlateTool, mcp.NewStructuredToolHandler(s.handleCorrelate))
}

func (s *Server) handleListIncidents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	incidents, err := s.incidents.ListIncidents(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list incidents failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(incidents)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode incidents failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleClaim(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ClaimReceipt, error) {
	incidentID, _ := args["incident_id"].(string)
	if err := s.claims.Claim(ctx, incidentID); err != nil {
		return domain.ClaimReceipt{}, fmt.Errorf("claim failed: %w", err)
	}
	return domain.NewClaimReceipt(incidentID), nil
}

func (s *Server) handleListClaimed(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ClaimedResponse, error) {
	ids, err := s.claims.List(ctx)
	if err != nil {
		return ClaimedResponse{}, fmt.Errorf("list claims failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ClaimedResponse{IncidentIDs: ids}, nil
}

func (s *Server) handleCorrelate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.CorrelationResponse, error) {
	req := domain.CorrelationRequest{}
	req.IncidentID, _ = args["incident_id"].(string)

	if raw, ok := args["incident"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Incident); err != nil {
			return domain.CorrelationResponse{}, fmt.Errorf("invalid incident JSON: %w", err)
		}
	}

	return domain.Correlate(req), nil
}
