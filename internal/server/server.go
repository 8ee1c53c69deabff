// Package server is the HTTP facade for mcphost. It routes requests to the
// search, LLM and make components and serializes their results as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/xdg/mcphost/internal/clog"
	"github.com/xdg/mcphost/internal/gateway"
	"github.com/xdg/mcphost/internal/llm"
)

var logger = clog.Component("server")

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8000"

// DefaultMaxBodyBytes caps JSON request bodies.
const DefaultMaxBodyBytes = 1 << 20

// RootMessage is returned by GET /.
const RootMessage = "MCP Server is running"

// Runner executes allow-listed build targets.
// Satisfied by *gateway.Gateway and by test mocks.
type Runner interface {
	Run(ctx context.Context, req gateway.Request) (*gateway.Result, error)
}

// Server serves the mcphost HTTP API.
type Server struct {
	// Addr is the address to listen on (e.g., "127.0.0.1:8000").
	Addr string

	// Runner handles POST /make. If nil, /make responds 503.
	Runner Runner

	// Generator handles POST /llm. If nil, /llm responds 503.
	Generator llm.Generator

	// SearchExtensions is used by GET /search when exts is omitted.
	SearchExtensions []string

	// MaxBodyBytes caps request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
	running  bool
}

// New creates a server. runner and generator may be nil, which disables
// the corresponding endpoint.
func New(addr string, runner Runner, generator llm.Generator) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		Addr:      addr,
		Runner:    runner,
		Generator: generator,
	}
}

// Handler returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("POST /llm", s.handleLLM)
	mux.HandleFunc("POST /make", s.handleMake)
	return logRequests(mux)
}

// Start begins accepting connections.
// Returns an error if the server is already running or fails to start.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 30 * time.Second,
		ErrorLog:          clog.Component("http").StdLogger(clog.LevelWarn),
	}
	s.running = true

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve on %s: %v", listener.Addr(), err)
		}
	}()

	logger.Info("listening on %s", listener.Addr())
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.server.Shutdown(ctx)
}

// ListenAddr returns the actual address the server is listening on.
// This is useful when the server was started with port 0 (random port).
// Returns empty string if the server was never started.
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": RootMessage})
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a size-limited JSON request body into v.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(v)
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs every request at debug level once it completes.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("%s %s from %s -> %d (%s)", r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}
