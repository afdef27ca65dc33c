package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/idx/pkg/eido"
)

// errorResponse mirrors the {"detail": "..."} body dispatch clients expect.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// upstreamFailure maps an EIDO client error to a status and detail.
type upstreamFailure struct {
	status int
	detail string
	kind   string
}

func classifyListError(err error) upstreamFailure {
	var statusErr *eido.StatusError
	var transportErr *eido.TransportError
	switch {
	case errors.As(err, &statusErr):
		return upstreamFailure{statusErr.StatusCode, "Error from EIDO Agent: " + statusErr.Body, "status"}
	case errors.As(err, &transportErr):
		return upstreamFailure{http.StatusBadGateway, fmt.Sprintf("Error connecting to EIDO Agent: %v", transportErr), "transport"}
	default:
		return upstreamFailure{http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred while fetching incidents: %v", err), "unexpected"}
	}
}

func classifyIngestError(err error) upstreamFailure {
	var statusErr *eido.StatusError
	var transportErr *eido.TransportError
	switch {
	case errors.As(err, &statusErr):
		return upstreamFailure{statusErr.StatusCode, "Error from EIDO Agent: " + statusErr.Body, "status"}
	case errors.As(err, &transportErr):
		return upstreamFailure{http.StatusBadGateway, fmt.Sprintf("Could not connect to EIDO Agent: %v", transportErr), "transport"}
	case errors.Is(err, eido.ErrInvalidResponse):
		return upstreamFailure{http.StatusBadGateway, "Received an invalid response from the EIDO Agent.", "invalid_response"}
	default:
		return upstreamFailure{http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err), "unexpected"}
	}
}
