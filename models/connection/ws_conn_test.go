package connection

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	HandshakeTimeout: time.Second * 5,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

func dialTestServer(t *testing.T, handler http.HandlerFunc) *Session {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	wsUrl := "ws" + strings.TrimPrefix(srv.URL, "http") + "/battleship"
	ws, _, err := websocket.DefaultDialer.Dial(wsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}

	session := NewSession(NewWsConn(ws), 0)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestWsConnRoundTrip(t *testing.T) {
	received := make(chan string, 1)

	session := dialTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		defer ws.Close()

		_, payload, err := ws.ReadMessage()
		if err != nil {
			t.Error(err)
			return
		}
		received <- string(payload)

		// One message split over two frames
		_ = ws.WriteMessage(websocket.TextMessage, []byte("matched\r\nna"))
		_ = ws.WriteMessage(websocket.TextMessage, []byte("me Bob\r\n\r\n"))

		// Wait for the client to go away.
		_, _, _ = ws.ReadMessage()
	})

	if err := session.WriteMessage(NewHelloMessage(ProtocolVersion, "Alice", 10, 10), time.Second); err != nil {
		t.Fatal(err)
	}

	expected := "hello\r\nversion 1.0\r\nname Alice\r\nrows 10\r\ncols 10\r\n\r\n"
	select {
	case got := <-received:
		if got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	case <-time.After(time.Second * 2):
		t.Fatal("server did not receive hello")
	}

	m, err := session.ReadMessage(time.Second * 2)
	if err != nil {
		t.Fatal(err)
	}
	opponent, err := ParseMatched(m)
	if err != nil {
		t.Fatal(err)
	}
	if opponent != "Bob" {
		t.Fatalf("expected Bob, got %s", opponent)
	}
}

func TestWsConnServerClose(t *testing.T) {
	session := dialTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		ws.Close()
	})

	_, err := session.ReadMessage(time.Second * 2)
	var connErr ConnErr
	if !errors.As(err, &connErr) || connErr.Code() != ConnErrClosed {
		t.Fatalf("expected closed ConnErr, got %v", err)
	}
}
