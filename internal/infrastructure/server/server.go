// Package server exposes the assistant over HTTP.
//
// Endpoints:
//   - POST /functions/v1/ai-assistant - assistant request (alias POST /ai-assistant)
//   - GET  /health                   - liveness and diagnostics
//   - GET  /history                  - recent history entries
//   - DELETE /history                - clear history
//
// OPTIONS requests on any path are answered by the CORS middleware.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/net/netutil"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

// Route paths.
const (
	AssistantPath      = "/functions/v1/ai-assistant"
	AssistantAliasPath = "/ai-assistant"
	HealthPath         = "/health"
	HistoryPath        = "/history"
)

// Error messages returned to clients.
const (
	msgInvalidPrompt      = "Invalid input: prompt must be a string"
	msgInvalidPlatform    = "Invalid input: unknown platform"
	msgInvalidContentType = "Invalid input: unknown contentType"
	msgBodyTooLarge       = "Request body too large"
	msgProviderFailed     = "Content provider unavailable"
	msgInternal           = "Internal server error"
)

const readHeaderTimeout = 10 * time.Second

// Analyzer serves numeric mode requests.
type Analyzer interface {
	Analyze(context.Context, domain.AnalyzeRequest) (domain.AnalyzeResponse, error)
}

// Generator serves content mode requests.
type Generator interface {
	Generate(context.Context, domain.GenerateRequest) (domain.GenerateResponse, error)
}

// Diagnostics produces the report served on /health.
type Diagnostics interface {
	Run(context.Context) (domain.HealthReport, error)
}

// Options configures a Server. Analyzer is required in numeric mode and
// Generator in content mode; History and Diagnostics are optional.
type Options struct {
	Settings    domain.ServerSettings
	Mode        domain.AssistantMode
	Analyzer    Analyzer
	Generator   Generator
	History     ports.HistoryRepository
	Diagnostics Diagnostics
	Logger      ports.Logger
	Version     string
}

// Server is the assistant HTTP server.
type Server struct {
	opts    Options
	handler http.Handler
}

// New validates opts and builds the routed, middleware wrapped handler.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, errors.New("server: logger is required")
	}
	switch opts.Mode {
	case domain.ModeContent:
		if opts.Generator == nil {
			return nil, errors.New("server: content mode requires a generator")
		}
	case domain.ModeNumeric, "":
		opts.Mode = domain.ModeNumeric
		if opts.Analyzer == nil {
			return nil, errors.New("server: numeric mode requires an analyzer")
		}
	default:
		return nil, fmt.Errorf("server: unknown assistant mode %q", opts.Mode)
	}
	if opts.Settings.AllowedOrigin == "" {
		opts.Settings.AllowedOrigin = domain.DefaultAllowedOrigin
	}

	middlewares := []Middleware{
		RecoveryMiddleware(opts.Logger),
		RequestIDMiddleware(),
		LoggingMiddleware(opts.Logger),
		CORSMiddleware(opts.Settings.AllowedOrigin),
		RateLimitMiddleware(opts.Settings.RateLimit.RequestsPerSecond, opts.Settings.RateLimit.Burst),
	}
	if opts.Settings.Auth.Enabled {
		secret := os.Getenv(opts.Settings.Auth.SecretEnv)
		if secret == "" {
			return nil, fmt.Errorf("server: auth enabled but %s is empty", opts.Settings.Auth.SecretEnv)
		}
		middlewares = append(middlewares, JWTMiddleware([]byte(secret), opts.Settings.Auth.Audience, HealthPath))
	}
	middlewares = append(middlewares, BodyLimitMiddleware(opts.Settings.MaxBodyBytes))

	s := &Server{opts: opts}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+AssistantPath, s.handleAssistant)
	mux.HandleFunc("POST "+AssistantAliasPath, s.handleAssistant)
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	mux.HandleFunc("GET "+HistoryPath, s.handleHistory)
	mux.HandleFunc("DELETE "+HistoryPath, s.handleClearHistory)
	s.handler = Chain(middlewares...)(mux)
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on settings.Addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.opts.Settings.Addr
	if addr == "" {
		addr = domain.DefaultServerAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. The listener is capped at settings.MaxConnections.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if limit := s.opts.Settings.MaxConnections; limit > 0 {
		ln = netutil.LimitListener(ln, limit)
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.opts.Logger.Info("server listening", map[string]interface{}{
		"addr": ln.Addr().String(),
		"mode": string(s.opts.Mode),
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.opts.Logger.Info("server stopped", nil)
	return nil
}

// assistantRequest keeps prompt raw so a non-string value can be told apart
// from a missing one.
type assistantRequest struct {
	Prompt       json.RawMessage `json:"prompt"`
	Platform     json.RawMessage `json:"platform"`
	ContentType  json.RawMessage `json:"contentType"`
	Instructions json.RawMessage `json:"instructions"`
}

var errTrailingData = errors.New("unexpected data after top-level JSON value")

// decodeBody decodes exactly one JSON value; anything but whitespace after it
// is an error.
func decodeBody(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errTrailingData
	}
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var body assistantRequest
	if err := decodeBody(r.Body, &body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	prompt, ok := rawString(body.Prompt)
	if !ok || prompt == "" {
		writeError(w, http.StatusBadRequest, msgInvalidPrompt)
		return
	}
	platform, _ := rawString(body.Platform)

	if s.opts.Mode == domain.ModeContent {
		s.serveContent(w, r, prompt, platform, body)
		return
	}

	resp, err := s.opts.Analyzer.Analyze(r.Context(), domain.AnalyzeRequest{Prompt: prompt, Platform: platform})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) serveContent(w http.ResponseWriter, r *http.Request, prompt, rawPlatform string, body assistantRequest) {
	platform, ok := domain.ParsePlatform(rawPlatform)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidPlatform)
		return
	}
	ct, _ := rawString(body.ContentType)
	instructions, _ := rawString(body.Instructions)
	contentType, ok := domain.ParseContentType(ct)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidContentType)
		return
	}

	resp, err := s.opts.Generator.Generate(r.Context(), domain.GenerateRequest{
		Prompt:       prompt,
		Platform:     platform,
		ContentType:  contentType,
		Instructions: instructions,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedRequest):
		writeError(w, http.StatusBadRequest, msgInvalidPrompt)
		return
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, domain.ErrProviderUnavailable):
		s.opts.Logger.Warn("provider unavailable", map[string]interface{}{
			"error":      err.Error(),
			"request_id": RequestIDFromContext(r.Context()),
		})
		writeError(w, http.StatusBadGateway, msgProviderFailed)
		return
	}
	s.opts.Logger.Error("assistant request failed", err, map[string]interface{}{
		"request_id": RequestIDFromContext(r.Context()),
	})
	writeError(w, http.StatusInternalServerError, msgInternal)
}

type healthResponse struct {
	Status  domain.HealthStatus  `json:"status"`
	Mode    domain.AssistantMode `json:"mode"`
	Version string               `json:"version,omitempty"`
	Checks  []domain.HealthCheck `json:"checks,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: domain.HealthOK, Mode: s.opts.Mode, Version: s.opts.Version}
	if s.opts.Diagnostics != nil {
		report, err := s.opts.Diagnostics.Run(r.Context())
		resp.Checks = report.Checks
		resp.Status = report.Status()
		if err != nil {
			resp.Status = domain.HealthError
		}
	}
	status := http.StatusOK
	if resp.Status == domain.HealthError {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

type historyResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		writeJSON(w, http.StatusOK, historyResponse{Entries: []domain.HistoryEntry{}})
		return
	}
	query, err := historyQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := s.opts.History.Records(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Entries: entries})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	query, err := historyQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.opts.History.Clear(r.Context(), query.Kind); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func historyQuery(r *http.Request) (domain.HistoryQuery, error) {
	values := r.URL.Query()
	query := domain.HistoryQuery{
		Kind:   domain.HistoryKind(values.Get("kind")),
		Search: values.Get("q"),
		Limit:  domain.DefaultHistoryLimit,
	}
	switch query.Kind {
	case "", domain.HistoryConversion, domain.HistoryContent:
	default:
		return query, fmt.Errorf("unknown history kind %q", query.Kind)
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return query, fmt.Errorf("invalid limit %q", raw)
		}
		query.Limit = limit
	}
	return query, nil
}

// rawString decodes a JSON string value. Missing, null and non-string values
// report false.
func rawString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
