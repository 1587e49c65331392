// Package status serves the last published frame snapshot over HTTP.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Garsondee/agentview/internal/game"
)

// Server holds the latest snapshot. Publish is called from the frame loop;
// handlers read from any goroutine.
type Server struct {
	snap atomic.Pointer[game.Snapshot]
	log  *log.Logger
}

// NewServer creates a server with nothing published yet. A nil logger uses
// the standard logger.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{log: logger}
}

// Publish replaces the served snapshot.
func (s *Server) Publish(snap game.Snapshot) {
	s.snap.Store(&snap)
}

// Handler returns the router.
//
//	GET /health
//	GET /status          full snapshot
//	GET /layers          per-layer draw counts
//	GET /markers         marked tiles
//	GET /scenes/{name}   draw counts of one live UI scene
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/status", s.withSnapshot(func(w http.ResponseWriter, _ *http.Request, snap *game.Snapshot) {
		respondJSON(w, http.StatusOK, snap)
	}))
	r.Get("/layers", s.withSnapshot(func(w http.ResponseWriter, _ *http.Request, snap *game.Snapshot) {
		respondJSON(w, http.StatusOK, snap.Layers)
	}))
	r.Get("/markers", s.withSnapshot(func(w http.ResponseWriter, _ *http.Request, snap *game.Snapshot) {
		respondJSON(w, http.StatusOK, snap.Markers)
	}))
	r.Get("/scenes/{name}", s.withSnapshot(s.getScene))
	return r
}

type snapshotHandler func(w http.ResponseWriter, r *http.Request, snap *game.Snapshot)

func (s *Server) withSnapshot(h snapshotHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.snap.Load()
		if snap == nil {
			respondError(w, http.StatusServiceUnavailable, "no frame published yet")
			return
		}
		h(w, r, snap)
	}
}

// SceneStatus is the /scenes/{name} response.
type SceneStatus struct {
	Name   string         `json:"name"`
	Layers map[string]int `json:"layers"`
}

func (s *Server) getScene(w http.ResponseWriter, r *http.Request, snap *game.Snapshot) {
	name := chi.URLParam(r, "name")
	if !slices.Contains(snap.Scenes, name) {
		respondError(w, http.StatusNotFound, "scene not live: "+name)
		return
	}
	out := SceneStatus{Name: name, Layers: make(map[string]int)}
	prefix := "ui(" + name + ","
	for id, n := range snap.Layers {
		if strings.HasPrefix(id, prefix) {
			out.Layers[id] = n
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Printf("shutdown: %v", err)
		}
	})
	defer stop()

	s.log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
