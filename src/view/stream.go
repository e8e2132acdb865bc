package view

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"toruslife/src/logger"
	"toruslife/src/simulation"
	"toruslife/src/universe"
)

const (
	writeWait      = 5 * time.Second
	clientSendSize = 16
)

//go:embed stream.html
var streamPage []byte

// frameMessage is the json representation of the frame sent to the stream clients
type frameMessage struct {
	Generation int    `json:"generation"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Live       int    `json:"live"`
	Cells      string `json:"cells"` //row-major, '1' alive, '0' dead
}

func encodeFrame(f simulation.Frame) frameMessage {
	var b strings.Builder
	b.Grow(len(f.Cells))
	for _, c := range f.Cells {
		if c == universe.Alive {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return frameMessage{
		Generation: f.Generation,
		Width:      f.Width,
		Height:     f.Height,
		Live:       f.LiveCells,
		Cells:      b.String(),
	}
}

// streamClient is the active websocket connection
type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Stream is the renderer broadcasting frames to the websocket clients
// the clients which can't keep up are disconnected
type Stream struct {
	logger   *logger.Logger
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*streamClient]bool
	last     []byte
}

func NewStream(log *logger.Logger) *Stream {
	return &Stream{
		logger:   log,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		clients:  make(map[*streamClient]bool),
	}
}

// Handler returns the http handler serving the page on / and the frames websocket on /frames
func (s *Stream) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(streamPage)
	})
	mux.Handle("/frames", s)
	return mux
}

// ServeHTTP upgrades the connection and streams frames to it starting from the last rendered one
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	c := &streamClient{conn: conn, send: make(chan []byte, clientSendSize)}

	s.mu.Lock()
	if s.last != nil {
		c.send <- s.last
	}
	s.clients[c] = true
	s.mu.Unlock()
	s.logger.Infof("stream client connected: %s", r.RemoteAddr)

	go s.writePump(c)

	//incoming messages are ignored, reading detects the closed connection
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.mu.Lock()
	s.unregister(c)
	s.mu.Unlock()
	s.logger.Infof("stream client disconnected: %s", r.RemoteAddr)
}

func (s *Stream) Render(f simulation.Frame) {
	payload, err := json.Marshal(encodeFrame(f))
	if err != nil {
		s.logger.Errorf("failed to serialize frame %d: %v", f.Generation, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = payload
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			s.unregister(c)
		}
	}
}

// Clients returns the number of connected clients
func (s *Stream) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects all clients
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		s.unregister(c)
	}
}

// unregister removes the client, s.mu must be held
func (s *Stream) unregister(c *streamClient) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Stream) writePump(c *streamClient) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Warnf("stream write failed: %v", err)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
