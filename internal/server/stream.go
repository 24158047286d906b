package server

import (
	"net/http"
	"time"

	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

const streamWriteDeadline = 10 * time.Second

// handleStream upgrades to a websocket and pushes a fresh JSON snapshot at
// the configured cadence until the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Drain the read side so close frames and pings are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		snap := s.assembler.Assemble(r.Context())
		conn.SetWriteDeadline(time.Now().Add(streamWriteDeadline))
		if err := conn.WriteJSON(snap); err != nil {
			logger.Log.Info("snapshot stream closed", "remote", conn.RemoteAddr().String(), "err", err)
			return
		}
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-time.After(s.streamInterval()):
		}
	}
}
