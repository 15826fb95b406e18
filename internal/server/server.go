// Package server exposes the forecast engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/LucasAust/forecaster/internal/engine"
	"github.com/LucasAust/forecaster/internal/forecast"
	"github.com/LucasAust/forecaster/internal/model"
	"github.com/LucasAust/forecaster/internal/store"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr  string
	Cache *store.Cache // nil disables result caching
}

// Server routes forecast requests to the engine, with optional result caching.
type Server struct {
	cfg    Config
	eng    *engine.Engine
	log    *logrus.Logger
	router *mux.Router
}

// New returns a server wired to the given engine.
func New(cfg Config, eng *engine.Engine, log *logrus.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8580"
	}
	if log == nil {
		log = logrus.New()
	}

	s := &Server{cfg: cfg, eng: eng, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/forecast", s.handleForecast).Methods(http.MethodPost)
	r.Use(s.requestLogger)
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.WithField("addr", s.cfg.Addr).Info("forecast server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("forecast http server: %w", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"elapsed_ms": time.Since(start).Milliseconds(),
		}).Info("request handled")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req model.Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	compute := func(ctx context.Context) (*model.Response, error) {
		return s.eng.Run(ctx, req)
	}

	var (
		resp   *model.Response
		cached bool
		err    error
	)
	if s.cfg.Cache != nil {
		resp, cached, err = s.cfg.Cache.GetOrCompute(r.Context(), req, compute)
	} else {
		resp, err = compute(r.Context())
	}
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	if cached {
		w.Header().Set("X-Cache", "hit")
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// writeRunError maps engine errors to HTTP statuses. Invalid input is the
// caller's fault; anything else is ours.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	var horizonErr *engine.InvalidHorizonError
	var asOfErr *engine.InvalidAsOfError
	var methodErr *forecast.UnknownMethodError
	switch {
	case errors.As(err, &horizonErr), errors.As(err, &asOfErr), errors.As(err, &methodErr):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nothing to write.
	default:
		s.log.WithError(err).Error("forecast failed")
		s.writeError(w, http.StatusInternalServerError, "forecast failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
