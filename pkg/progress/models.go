package progress

import (
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// outcomeMessage is the JSON frame pushed to every connected watcher.
type outcomeMessage struct {
	DeviceAssetID string `json:"deviceAssetId"`
	ID            string `json:"id,omitempty"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

// Server broadcasts batch upload outcomes over websocket to any number of
// watchers. It implements engine.Sink; watcher problems never fail the
// batch, a dead watcher is just dropped.
type Server struct {
	listener   net.Listener
	httpServer *http.Server

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}
