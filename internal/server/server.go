// Package server exposes the synthesis pipeline over HTTP.
//
// The API is deliberately small: clients POST a TOML profile and receive the
// rendered artifact in the requested format. Geometry is never persisted;
// every request synthesizes from scratch or hits the artifact cache.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/pipeline"
)

// maxProfileBytes bounds the request body; profiles are small text files.
const maxProfileBytes = 1 << 20

// Config holds server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// withDefaults fills zero fields with sensible values.
func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// Server serves profile synthesis requests.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by the given pipeline runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{cfg: cfg.withDefaults(), runner: runner, logger: logger}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/sections", s.handleSynthesize)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSynthesize accepts a TOML profile body and responds with the
// rendered artifact. Render options come from query parameters:
//
//	format       svg (default), json, csv, png, pdf
//	style        simple (default), blueprint
//	standing     draw standing positions instead of seated
//	sightlines   set to "false" to suppress sightline rays
//	px_per_meter drawing scale
//	refresh      bypass the artifact cache
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProfileBytes+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "read request body"))
		return
	}
	if len(body) > maxProfileBytes {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidProfile, "profile exceeds %d bytes", maxProfileBytes))
		return
	}

	opts, perr := s.renderOptions(r, body)
	if perr != nil {
		s.writeError(w, r, perr)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Profile-Hash", result.ProfileHash)
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) renderOptions(r *http.Request, body []byte) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Profile: body,
		Style:   q.Get("style"),
		Logger:  s.logger,
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}
	opts.Formats = []string{format}

	opts.Standing = q.Get("standing") == "true"
	opts.HideSightlines = q.Get("sightlines") == "false"
	opts.Refresh = q.Get("refresh") == "true"

	if raw := q.Get("px_per_meter"); raw != "" {
		ppm, err := strconv.ParseFloat(raw, 64)
		if err != nil || ppm <= 0 {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidConfig, "invalid px_per_meter %q", raw)
		}
		opts.PxPerMeter = ppm
	}
	return opts, nil
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	s.logger.Error("request failed",
		"request_id", RequestIDFrom(r.Context()),
		"code", code,
		"status", status,
		"error", err)
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestIDFrom(r.Context()),
	})
}

// statusFor maps structured error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidProfile,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidUnits:
		return http.StatusBadRequest
	case errors.ErrCodeDegenerateGeometry, errors.ErrCodeSequencing:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatCSV:
		return "text/csv"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
