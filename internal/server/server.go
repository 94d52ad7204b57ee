// Package server exposes the synthesizer over HTTP.
//
// Routes:
//
//   - GET /fart     renders one sound and returns it as audio/wav
//   - GET /presets  lists the preset names as JSON
//   - GET /healthz  liveness check
//   - GET /metrics  Prometheus scrape endpoint, when configured
//
// /fart accepts the query parameters preset, seed, duration, wetness,
// intensity, frequency, bubbliness and suddenness. Explicit parameters
// override the preset's draws. A seed makes the response reproducible.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/internal/observe"
	"github.com/cwbudde/algo-fart/internal/wavfile"
)

const shutdownTimeout = 5 * time.Second

// Server handles render requests.
type Server struct {
	synth     *fart.Synthesizer
	synthOpts []fart.Option
	defaults  fart.Params
	logger    *slog.Logger
	metrics   *observe.Metrics
	scrape    http.Handler
}

// Option configures a [Server].
type Option func(*Server)

// WithSynthOptions sets the options used for the shared synthesizer and for
// per-request seeded synthesizers.
func WithSynthOptions(opts ...fart.Option) Option {
	return func(s *Server) { s.synthOpts = append(s.synthOpts, opts...) }
}

// WithDefaults sets the parameters used when a request names no preset.
func WithDefaults(p fart.Params) Option {
	return func(s *Server) { s.defaults = p }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records request and synthesis metrics on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.scrape = h }
}

// New creates a Server.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		defaults: fart.DefaultParams(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if err := s.defaults.Validate(); err != nil {
		return nil, fmt.Errorf("server: defaults: %w", err)
	}

	synth, err := s.newSynth()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.synth = synth

	return s, nil
}

func (s *Server) newSynth(extra ...fart.Option) (*fart.Synthesizer, error) {
	opts := append([]fart.Option{fart.WithLogger(s.logger)}, s.synthOpts...)
	if s.metrics != nil {
		opts = append(opts, fart.WithMetrics(s.metrics))
	}
	return fart.New(append(opts, extra...)...)
}

// Register adds the routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /fart", s.handleFart)
	mux.HandleFunc("GET /presets", s.handlePresets)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.scrape != nil {
		mux.Handle("GET /metrics", s.scrape)
	}
}

// Handler returns the routes wrapped in the request metrics middleware when
// metrics are configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	if s.metrics == nil {
		return mux
	}
	return observe.Middleware(s.metrics, s.logger)(mux)
}

func (s *Server) handleFart(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sound, err := s.synthesize(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	samples, err := sound.Render()
	if err != nil {
		s.writeError(w, err)
		return
	}

	body, err := wavfile.Bytes(samples, int(math.Round(sound.SampleRate)))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Content-Disposition", `inline; filename="fart.wav"`)
	w.Header().Set("X-Fart-Preset", string(sound.Preset))
	w.Header().Set("X-Fart-Duration", strconv.FormatFloat(sound.Duration(), 'f', -1, 64))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.WarnContext(r.Context(), "write response", "err", err)
	}
}

func (s *Server) synthesize(ctx context.Context, req request) (*fart.Sound, error) {
	synth := s.synth
	if req.seeded {
		var err error
		synth, err = s.newSynth(fart.WithSeed(req.seed))
		if err != nil {
			return nil, err
		}
	}

	if req.preset == "" {
		return synth.Synthesize(ctx, req.apply(s.defaults))
	}
	return synth.SynthesizePreset(ctx, req.preset, req.overrides...)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fart.ErrInvalidParameter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.logger.Error("render failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fart.Presets())
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}

// request is a parsed /fart query.
type request struct {
	preset    fart.PresetKind
	seeded    bool
	seed      int64
	overrides []fart.ParamOption
}

func (r request) apply(p fart.Params) fart.Params {
	for _, opt := range r.overrides {
		opt(&p)
	}
	return p
}

func parseRequest(q url.Values) (request, error) {
	var req request

	if name := q.Get("preset"); name != "" && name != string(fart.Custom) {
		kind, err := fart.ParsePreset(name)
		if err != nil {
			return request{}, err
		}
		req.preset = kind
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return request{}, fmt.Errorf("%w: seed must be an integer: %q", fart.ErrInvalidParameter, raw)
		}
		req.seeded, req.seed = true, seed
	}

	for _, name := range fart.ParamNames() {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return request{}, fmt.Errorf("%w: %s must be a number: %q", fart.ErrInvalidParameter, name, raw)
		}
		opt, err := fart.ParamOptionFor(name, v)
		if err != nil {
			return request{}, err
		}
		req.overrides = append(req.overrides, opt)
	}

	return req, nil
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}
