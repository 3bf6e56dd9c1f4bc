package progress

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"immichclient/internal/logging"
	"immichclient/pkg/uploader"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewServer binds addr (e.g. "127.0.0.1:8321", port 0 for an ephemeral
// port) and starts serving the websocket endpoint at /ws.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener: listener,
		conns:    make(map[*websocket.Conn]bool),
	}

	r := mux.NewRouter()
	r.HandleFunc("/ws", s.wsHandler)
	s.httpServer = &http.Server{Handler: r}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.GlobalLogger.Error().Err(err).Msg("progress server stopped")
		}
	}()

	logging.GlobalLogger.Info().Str("addr", s.Addr()).Msg("progress server listening")
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.GlobalLogger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	s.mu.Unlock()
	logging.GlobalLogger.Debug().Str("watcher", conn.RemoteAddr().String()).Msg("progress watcher connected")
}

// Deliver broadcasts one outcome to all connected watchers. It always
// returns nil: losing a watcher must not abort the batch.
func (s *Server) Deliver(outcome uploader.Outcome) error {
	message := outcomeMessage{
		DeviceAssetID: outcome.DeviceAssetID,
		ID:            outcome.RemoteID,
		Status:        string(outcome.Status),
	}
	if outcome.Err != nil {
		message.Error = outcome.Err.Error()
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logging.GlobalLogger.Debug().Str("watcher", conn.RemoteAddr().String()).Msg("dropping dead progress watcher")
			conn.Close()
			delete(s.conns, conn)
		}
	}
	return nil
}

// Close disconnects all watchers and stops the server.
func (s *Server) Close() error {
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
	s.mu.Unlock()
	return s.httpServer.Close()
}
