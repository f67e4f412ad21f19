// Package server exposes the running simulation over HTTP: a JSON control
// API, the impact chart, a websocket live feed and the embedded dashboard.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/iwvelando/outbreak-forecast/internal/chart"
	"github.com/iwvelando/outbreak-forecast/internal/config"
	"github.com/iwvelando/outbreak-forecast/internal/controller"
	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// Options configures the HTTP handler.
type Options struct {
	MaxMessageSize int64
	Version        string
}

type handler struct {
	logger         *zap.Logger
	ctrl           *controller.Controller
	conf           config.Configuration
	hub            *Hub
	maxMessageSize int64
	version        string
	upgrader       websocket.Upgrader
}

type speedRequest struct {
	Speed *float64 `json:"speed"`
}

type impactResponse struct {
	Samples   []dashboard.ImpactSample `json:"samples"`
	Summary   dashboard.ImpactSummary  `json:"summary"`
	Completed bool                     `json:"completed"`
}

type mapResponse struct {
	Day    int                   `json:"day"`
	Center dashboard.Coordinates `json:"center"`
	Points []dashboard.MapPoint  `json:"points"`
}

// NewHandler constructs the HTTP handler that serves the dashboard and
// simulation API. The live feed hub runs until ctx is done.
func NewHandler(ctx context.Context, logger *zap.Logger, ctrl *controller.Controller, conf *config.Configuration, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = constants.DefaultMaxMessageSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	hub := NewHub(logger, ctrl)
	go hub.Run(ctx)
	ctrl.Subscribe(hub.Publish)

	h := &handler{
		logger:         logger,
		ctrl:           ctrl,
		conf:           *conf,
		hub:            hub,
		maxMessageSize: opts.MaxMessageSize,
		version:        trimmedVersion,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleState)
		r.Post("/play", h.handlePlay)
		r.Post("/pause", h.handlePause)
		r.Post("/reset", h.handleReset)
		r.Post("/step", h.handleStep)
		r.Post("/speed", h.handleSpeed)
		r.Get("/alerts", h.handleAlerts)
		r.Get("/impact", h.handleImpact)
		r.Get("/map", h.handleMap)
		r.Get("/chart.png", h.handleChart)
		r.Get("/ws", h.handleLiveFeed)
		r.Get("/version", h.handleVersion)
		r.Get("/export", h.handleConfigExport)
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

// Serve listens on address until ctx is done, then shuts the server down.
func Serve(ctx context.Context, logger *zap.Logger, address string, h http.Handler) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              address,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard server listening",
			zap.String("op", "server.Serve"),
			zap.String("address", address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("dashboard server shutting down", zap.String("op", "server.Serve"))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down dashboard server: %w", err)
	}
	return nil
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("handled request",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Play(); err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handlePlay")
		return
	}
	h.writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *handler) handlePause(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Pause()
	h.writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Reset()
	h.writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *handler) handleStep(w http.ResponseWriter, r *http.Request) {
	snap, err := h.ctrl.StepOnce()
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handleStep")
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *handler) handleSpeed(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxMessageSize)

	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxMessageSize), "server.handleSpeed")
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode speed request: %v", err), "server.handleSpeed")
		return
	}
	if req.Speed == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing speed", "server.handleSpeed")
		return
	}
	if err := h.ctrl.SetSpeed(*req.Speed); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleSpeed")
		return
	}
	h.writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.ctrl.Snapshot().Alerts)
}

func (h *handler) handleImpact(w http.ResponseWriter, r *http.Request) {
	snap := h.ctrl.Snapshot()
	h.writeJSON(w, http.StatusOK, impactResponse{
		Samples:   snap.Impact,
		Summary:   dashboard.SummarizeImpact(snap.Impact),
		Completed: snap.Completed,
	})
}

func (h *handler) handleMap(w http.ResponseWriter, r *http.Request) {
	state := h.ctrl.State()
	h.writeJSON(w, http.StatusOK, mapResponse{
		Day:    state.Day,
		Center: dashboard.Center,
		Points: dashboard.Overlay(state),
	})
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	metric, err := chart.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleChart")
		return
	}

	var buf bytes.Buffer
	err = chart.Render(h.logger, &buf, h.ctrl.Snapshot().Impact, chart.Options{Metric: metric})
	if errors.Is(err, chart.ErrNotEnoughSamples) {
		h.respondErrorWithOp(w, http.StatusConflict, err.Error(), "server.handleChart")
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleChart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write chart response",
			zap.String("op", "server.handleChart"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleLiveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade live feed connection",
			zap.String("op", "server.handleLiveFeed"),
			zap.Error(err),
		)
		return
	}

	client := NewClient(h.hub, conn, h.maxMessageSize)
	if !client.Register() {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleConfigExport returns the effective configuration, including the
// current speed, as YAML.
func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	conf := h.conf
	conf.Simulation.Speed = h.ctrl.Snapshot().Speed

	yamlBytes, err := yaml.Marshal(conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, controller.ErrRunComplete), errors.Is(err, controller.ErrPlaying):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
