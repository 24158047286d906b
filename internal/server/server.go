// Package server answers on-demand requests for fresh snapshots. Every
// metrics request runs a full collection; there is no cache between
// requests.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/exposition"
	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
)

// Assembler produces one fresh snapshot per call.
type Assembler interface {
	Assemble(ctx context.Context) models.Snapshot
}

type Server struct {
	assembler Assembler
	// streamInterval is read per tick so /ws clients follow config reloads.
	streamInterval func() time.Duration
	httpSrv        *http.Server
}

func New(port int, assembler Assembler, streamInterval func() time.Duration) *Server {
	s := &Server{assembler: assembler, streamInterval: streamInterval}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/metrics", s.handleJSON)
	mux.HandleFunc("GET /ws", s.handleStream)
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s
}

// Start binds the listener synchronously so a taken port fails startup
// instead of silently falling back, then serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.httpSrv.Addr, err)
	}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("metrics server stopped", "err", err)
		}
	}()
	logger.Log.Info("metrics server listening", "addr", s.httpSrv.Addr)
	return nil
}

// Shutdown stops accepting requests; in-flight collections get until the
// context deadline to drain.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.assembler.Assemble(r.Context())
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	fmt.Fprint(w, exposition.Encode(&snap))
}

// handleHealth performs no collection: it must answer immediately even
// while a push cycle is mid-collection.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status": "healthy"}`)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.assembler.Assemble(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		logger.Log.Warn("failed to write snapshot", "err", err)
	}
}
