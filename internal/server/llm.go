package server

import "net/http"

// llmRequest is the body of POST /llm.
type llmRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

// llmResponse is the 200 body of POST /llm.
type llmResponse struct {
	Response string `json:"response"`
}

// handleLLM processes POST /llm by forwarding the prompt to the inference
// server. An empty model selects the generator's default.
func (s *Server) handleLLM(w http.ResponseWriter, r *http.Request) {
	if s.Generator == nil {
		writeError(w, http.StatusServiceUnavailable, "llm proxy not configured")
		return
	}

	var req llmRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text, err := s.Generator.Generate(r.Context(), req.Model, req.Prompt)
	if err != nil {
		logger.Warn("llm generate failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, llmResponse{Response: text})
}
