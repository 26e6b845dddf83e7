package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/session"

	"github.com/gorilla/websocket"
)

func TestStreamSessionBroadcastsSnapshots(t *testing.T) {
	r, h := newTestRouter(tuesday)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/hank/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snap session.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if snap.SessionID != "hank" || snap.Screen != domain.ScreenMain {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}
	if h.hub.Clients("hank") != 1 {
		t.Fatalf("expected 1 client, got %d", h.hub.Clients("hank"))
	}

	if w := postEvent(t, r, "hank", map[string]string{"type": "open_calendar"}); w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if snap.Screen != domain.ScreenCalendar {
		t.Fatalf("expected CALENDAR broadcast, got %s", snap.Screen)
	}
}

func TestStreamSessionRemovesClientOnClose(t *testing.T) {
	r, h := newTestRouter(tuesday)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/ivy/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	var snap session.Snapshot
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.hub.Clients("ivy") == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("client was not removed after close")
}
