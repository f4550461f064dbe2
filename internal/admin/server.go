// Package admin serves chart pages over HTTP.
package admin

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightplots/internal/config"
	"flightplots/internal/dashboard"
	"flightplots/internal/library"
	"flightplots/internal/logging"
	"flightplots/internal/session"
	"flightplots/internal/sink"
	"flightplots/internal/telemetry"
)

// Server serves the log list, chart pages and toggle endpoints.
type Server struct {
	cfg      *config.Config
	lib      *library.Library
	sessions *session.Store
	events   sink.EventWriter
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	mux      *http.ServeMux
}

// NewServer wires the handlers. events may be nil.
func NewServer(ctx context.Context, cfg *config.Config, lib *library.Library, events sink.EventWriter, gatherer prometheus.Gatherer) *Server {
	if events == nil {
		events = sink.Discard{}
	}
	s := &Server{
		cfg:      cfg,
		lib:      lib,
		sessions: session.NewStore(session.DefaultLimit),
		events:   events,
		gatherer: gatherer,
		logger:   logging.FromContext(ctx).With("component", "admin"),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /plots/{log}", s.handlePlots)
	s.mux.HandleFunc("POST /sessions/{sid}/toggle-param-changes", s.handleToggleParamChanges)
	s.mux.HandleFunc("GET /sessions/{sid}/charts/{file}", s.handleChart)
	s.mux.HandleFunc("GET /sessions/{sid}/nav", s.handleNav)
	if s.gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "logs", s.lib.Dir())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ids, err := s.lib.List()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.WriteIndex(w, ids); err != nil {
		s.logger.Warn("index write failed", "error", err)
	}
}

func (s *Server) handlePlots(w http.ResponseWriter, r *http.Request) {
	ctx := logging.NewContext(r.Context(), s.logger)
	logID := r.PathValue("log")
	entry, err := s.lib.Get(ctx, logID)
	if err != nil {
		s.fail(w, err)
		return
	}
	sess := session.Build(ctx, entry.Log, entry.Aliases, s.cfg, telemetry.SourceServe, s.events)
	s.sessions.Put(sess)

	prefix := "/sessions/" + sess.ID
	images := func(id string) (string, string) {
		return prefix + "/charts/" + id + ".png", ""
	}
	var buf bytes.Buffer
	view := dashboard.NewPageView(logID, sess.Page(), images, prefix+"/toggle-param-changes")
	if err := dashboard.WritePage(&buf, view); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleToggleParamChanges(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("sid"))
	if err != nil {
		s.fail(w, err)
		return
	}
	status, err := sess.ToggleParamChanges()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, status)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("sid"))
	if err != nil {
		s.fail(w, err)
		return
	}
	file := r.PathValue("file")
	id, ok := strings.CutSuffix(file, ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := sess.RenderChart(&buf, id); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("sid"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, sess.Nav())
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrNotFound), errors.Is(err, session.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrNoToggle):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	sonic.ConfigDefault.NewEncoder(w).Encode(v)
}
