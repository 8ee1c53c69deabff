package server

import (
	"errors"
	"net/http"

	"github.com/xdg/mcphost/internal/config"
	"github.com/xdg/mcphost/internal/pathutil"
	"github.com/xdg/mcphost/internal/search"
)

// searchResponse is the body of GET /search.
type searchResponse struct {
	Files []string `json:"files"`
}

// handleSearch processes GET /search?q=&path=&exts=.
// q defaults to "*", path to ".", exts to the configured extensions.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := "*"
	if params.Has("q") {
		query = params.Get("q")
	}
	root := "."
	if params.Has("path") {
		root = pathutil.ExpandHome(params.Get("path"))
	}

	exts := s.SearchExtensions
	if params.Has("exts") {
		exts = search.SplitExtensions(params.Get("exts"))
	} else if len(exts) == 0 {
		exts = config.DefaultSearchExtensions
	}

	files, err := search.Find(r.Context(), root, query, exts)
	if err != nil {
		if errors.Is(err, search.ErrBadPattern) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Warn("search %q under %s: %v", query, root, err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Files: files})
}
