package view

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"toruslife/src/logger"
)

func newTestStream(t *testing.T) (*Stream, *httptest.Server) {
	t.Helper()
	s := NewStream(logger.NewLoggerTo(io.Discard, io.Discard))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		srv.Close()
	})
	return s, srv
}

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/frames"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frameMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var m frameMessage
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return m
}

func TestEncodeFrame(t *testing.T) {
	f := testFrame(3, 2, 0, 4)
	f.Generation = 7
	data, err := json.Marshal(encodeFrame(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"generation":7,"width":3,"height":2,"live":2,"cells":"100010"}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, data)
	}
}

func TestStream_Broadcast(t *testing.T) {
	s, srv := newTestStream(t)

	first := testFrame(4, 4, 5)
	s.Render(first)

	conn := dialStream(t, srv)
	//the last frame is sent on connect
	if m := readFrame(t, conn); m.Generation != 0 || m.Cells != "0000010000000000" {
		t.Fatalf("unexpected first frame %+v", m)
	}
	if s.Clients() != 1 {
		t.Fatalf("expected 1 client, got %d", s.Clients())
	}

	next := testFrame(4, 4, 5, 6)
	next.Generation = 1
	s.Render(next)
	if m := readFrame(t, conn); m.Generation != 1 || m.Live != 2 || m.Cells != "0000011000000000" {
		t.Fatalf("unexpected next frame %+v", m)
	}
}

func TestStream_Page(t *testing.T) {
	_, srv := newTestStream(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "game-of-life-canvas") {
		t.Fatalf("unexpected page %d: %s", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
