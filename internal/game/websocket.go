package game

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSession adapts a websocket connection into the Session interface.
// Each inbound text message is treated as one command line, so browser
// clients skip telnet framing entirely.
type WebSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewWebSession(conn *websocket.Conn) *WebSession {
	return &WebSession{conn: conn}
}

func (s *WebSession) WriteString(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

func (s *WebSession) ReadLine() (string, error) {
	for {
		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(msg), "\r\n"), nil
	}
}

func (s *WebSession) Close() error {
	return s.conn.Close()
}

// WebSocketHandler upgrades HTTP requests and runs the same session
// loop the telnet listener uses, one goroutine per connection.
func WebSocketHandler(world *World, dispatch Dispatcher) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 4 * 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		handleSession(NewWebSession(conn), world, dispatch)
	}
}

// ListenAndServeWeb serves the websocket entry point on addr at /play.
func ListenAndServeWeb(addr string, world *World, dispatch Dispatcher) error {
	mux := http.NewServeMux()
	mux.Handle("/play", WebSocketHandler(world, dispatch))
	return http.ListenAndServe(addr, mux)
}
