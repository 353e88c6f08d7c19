package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/peakfit/fitcli/internal/session"
	"github.com/peakfit/fitcli/internal/stats"
	"github.com/peakfit/fitcli/internal/testutil"
	"github.com/peakfit/fitcli/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newWSServer runs a websocket backend for one test; handler owns the
// upgraded connection.
func newWSServer(t *testing.T, handler func(conn *websocket.Conn, r *http.Request)) string {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		handler(conn, r)
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// inboundRecorder collects everything the transport forwards.
type inboundRecorder struct {
	mu   sync.Mutex
	msgs []types.Message
}

func (r *inboundRecorder) handle(roomId string, msg types.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *inboundRecorder) messages() []types.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]types.Message, len(r.msgs))
	copy(msgs, r.msgs)
	return msgs
}

func newTestTransport(t *testing.T, wsURL, token string, handler InboundHandler) *Transport {
	su := &stats.MockStatsUpdater{}
	su.On("RegisterMetric", mock.Anything)
	su.On("Incr", mock.Anything).Maybe()

	sess := session.NewStore(filepath.Join(t.TempDir(), "tokens.yaml"))
	if token != "" {
		require.NoError(t, sess.Set(token, ""))
	}

	if handler == nil {
		handler = func(string, types.Message) {}
	}

	return NewTransport(wsURL, sess, testutil.TestLogger(t), su, handler)
}

func TestTransport_Connect(t *testing.T) {
	gotPath := make(chan string, 1)
	gotToken := make(chan string, 1)
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		gotPath <- r.URL.Path
		gotToken <- r.URL.Query().Get("token")
		conn.ReadMessage()
	})

	tr := newTestTransport(t, wsURL, "access-token", nil)
	assert.Equal(t, Disconnected, tr.State(), "expected a fresh transport to be disconnected")

	err := tr.Connect(context.Background(), "r1")
	require.NoError(t, err, "expected connect to succeed")
	defer tr.Close()

	assert.Equal(t, Open, tr.State(), "expected transport to be open after connect")

	roomId, ok := tr.RoomId()
	assert.True(t, ok, "expected transport to report its room")
	assert.Equal(t, "r1", roomId, "expected transport to be attached to r1")

	assert.Equal(t, "/ws/chat/r1/", <-gotPath, "expected room id in the connection path")
	assert.Equal(t, "access-token", <-gotToken, "expected the access token as a query credential")
}

func TestTransport_ConnectWithoutToken(t *testing.T) {
	tr := newTestTransport(t, "ws://localhost:0", "", nil)

	err := tr.Connect(context.Background(), "r1")
	assert.Error(t, err, "expected connect to fail without a token")
	assert.Equal(t, Disconnected, tr.State(), "expected transport to stay disconnected")
}

func TestTransport_ConnectFailure(t *testing.T) {
	tr := newTestTransport(t, "ws://127.0.0.1:1", "access-token", nil)

	err := tr.Connect(context.Background(), "r1")
	assert.Error(t, err, "expected connect to an unreachable backend to fail")
	assert.Equal(t, Disconnected, tr.State(), "expected a failed dial to end disconnected")

	_, ok := tr.RoomId()
	assert.False(t, ok, "expected no room after a failed dial")
}

func TestTransport_ConnectWhileAttached(t *testing.T) {
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.ReadMessage()
	})

	tr := newTestTransport(t, wsURL, "access-token", nil)
	require.NoError(t, tr.Connect(context.Background(), "r1"))
	defer tr.Close()

	err := tr.Connect(context.Background(), "r2")
	assert.Error(t, err, "expected a second connect to be rejected while attached")
	assert.Equal(t, Open, tr.State(), "expected the original connection to stay open")
}

func TestTransport_InboundOrder(t *testing.T) {
	frames := []string{
		`{"id":1,"text":"one"}`,
		`{"id":2,"text":"two"}`,
		`{"id":3,"text":"three"}`,
	}
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		conn.ReadMessage()
	})

	rec := &inboundRecorder{}
	tr := newTestTransport(t, wsURL, "access-token", rec.handle)
	require.NoError(t, tr.Connect(context.Background(), "r1"))
	defer tr.Close()

	require.Eventually(t, func() bool {
		return len(rec.messages()) == len(frames)
	}, time.Second, 10*time.Millisecond, "expected every frame to be delivered")

	msgs := rec.messages()
	assert.Equal(t, "one", msgs[0].Text, "expected arrival order to be preserved")
	assert.Equal(t, "two", msgs[1].Text, "expected arrival order to be preserved")
	assert.Equal(t, "three", msgs[2].Text, "expected arrival order to be preserved")
	assert.False(t, msgs[0].SenderIsLocal, "expected inbound messages to be remote")
}

func TestTransport_MalformedFramesDropped(t *testing.T) {
	frames := []string{
		`not json at all`,
		`{"text":""}`,
		`{"text":"kept"}`,
	}
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		conn.ReadMessage()
	})

	rec := &inboundRecorder{}
	tr := newTestTransport(t, wsURL, "access-token", rec.handle)
	require.NoError(t, tr.Connect(context.Background(), "r1"))
	defer tr.Close()

	require.Eventually(t, func() bool {
		return len(rec.messages()) == 1
	}, time.Second, 10*time.Millisecond, "expected only the valid frame to be delivered")

	assert.Equal(t, "kept", rec.messages()[0].Text, "expected the malformed frames to be quarantined")
}

func TestTransport_SendTextNotConnected(t *testing.T) {
	rec := &inboundRecorder{}
	tr := newTestTransport(t, "ws://localhost:0", "access-token", rec.handle)

	err := tr.SendText("lost?")
	assert.ErrorIs(t, err, ErrNotConnected, "expected an explicit failure while disconnected")
	assert.Empty(t, rec.messages(), "expected no state mutation from a failed send")
	assert.Equal(t, Disconnected, tr.State(), "expected transport state to be unchanged")
}

func TestTransport_SendText(t *testing.T) {
	received := make(chan string, 1)
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- string(raw)
		conn.ReadMessage()
	})

	rec := &inboundRecorder{}
	tr := newTestTransport(t, wsURL, "access-token", rec.handle)
	require.NoError(t, tr.Connect(context.Background(), "r1"))
	defer tr.Close()

	require.NoError(t, tr.SendText("hi"), "expected send to succeed while open")

	select {
	case frame := <-received:
		assert.JSONEq(t, `{"text":"hi"}`, frame, "expected exactly one frame carrying the text")
	case <-time.After(time.Second):
		t.Fatal("expected the frame to reach the backend")
	}

	assert.Empty(t, rec.messages(), "expected no local append until the server echoes the message")
}

func TestTransport_Close(t *testing.T) {
	closed := make(chan struct{})
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.ReadMessage()
		close(closed)
	})

	tr := newTestTransport(t, wsURL, "access-token", nil)
	require.NoError(t, tr.Connect(context.Background(), "r1"))

	tr.Close()

	assert.Equal(t, Disconnected, tr.State(), "expected transport to be disconnected after close")
	assert.ErrorIs(t, tr.SendText("hi"), ErrNotConnected, "expected sends to fail after close")

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("expected the backend to observe the close")
	}

	// closing again is a no-op
	tr.Close()
}

func TestTransport_ServerDrop(t *testing.T) {
	wsURL := newWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.Close()
	})

	tr := newTestTransport(t, wsURL, "access-token", nil)
	require.NoError(t, tr.Connect(context.Background(), "r1"))

	// no automatic reconnect: a dropped connection stays down until
	// the room is selected again
	assert.Eventually(t, func() bool {
		return tr.State() == Disconnected
	}, time.Second, 10*time.Millisecond, "expected a server drop to end disconnected")

	assert.ErrorIs(t, tr.SendText("hi"), ErrNotConnected, "expected sends to fail after a drop")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "disconnected", Disconnected.String())
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "open", Open.String())
}
