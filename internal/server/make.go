package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xdg/mcphost/internal/gateway"
)

// timeoutResponse is the 504 body for a build killed at its deadline.
type timeoutResponse struct {
	Error      string `json:"error"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"returncode"`
}

// handleMake processes POST /make {"path": ..., "target": ...}.
func (s *Server) handleMake(w http.ResponseWriter, r *http.Request) {
	if s.Runner == nil {
		writeError(w, http.StatusServiceUnavailable, "make execution not configured")
		return
	}

	var req gateway.Request
	if err := s.decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// The request context ends when the client disconnects, which kills
	// the child.
	result, err := s.Runner.Run(r.Context(), req)
	if err == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}

	switch {
	case errors.Is(err, gateway.ErrInvalidPath):
		writeError(w, http.StatusBadRequest, "Invalid path")

	case errors.Is(err, gateway.ErrTargetNotAllowed):
		writeError(w, http.StatusForbidden, fmt.Sprintf("Target '%s' not allowed", req.Target))

	case errors.Is(err, gateway.ErrConfigUnavailable):
		writeError(w, http.StatusInternalServerError, "Allow-list unavailable")

	case errors.Is(err, gateway.ErrConfigMalformed):
		writeError(w, http.StatusInternalServerError, "Allow-list malformed")

	case errors.Is(err, gateway.ErrTimeout):
		resp := timeoutResponse{
			Error:      fmt.Sprintf("Target '%s' timed out", req.Target),
			ReturnCode: -1,
		}
		if result != nil {
			resp.Stdout = result.Stdout
			resp.Stderr = result.Stderr
			resp.ReturnCode = result.ReturnCode
		}
		writeJSON(w, http.StatusGatewayTimeout, resp)

	case errors.Is(err, gateway.ErrSpawnFailed):
		writeError(w, http.StatusInternalServerError, err.Error())

	default:
		logger.Error("unexpected make error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
