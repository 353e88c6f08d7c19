package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/peakfit/fitcli/internal/api"
	"github.com/peakfit/fitcli/internal/session"
	"github.com/peakfit/fitcli/internal/stats"
	"github.com/peakfit/fitcli/internal/testutil"
	"github.com/peakfit/fitcli/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, restHandler http.Handler, wsHandler func(conn *websocket.Conn, r *http.Request)) *Manager {
	restSrv := httptest.NewServer(restHandler)
	t.Cleanup(restSrv.Close)

	wsURL := newWSServer(t, wsHandler)

	su := &stats.MockStatsUpdater{}
	su.On("RegisterMetric", mock.Anything)
	su.On("Incr", mock.Anything).Maybe()

	sess := session.NewStore(filepath.Join(t.TempDir(), "tokens.yaml"))
	require.NoError(t, sess.Set("access-token", ""))

	logger := testutil.TestLogger(t)
	apiClient := api.NewClient(restSrv.URL, sess, logger, su)

	return NewManager(apiClient, wsURL, sess, logger, su)
}

func chatBackendMux(history map[string][]types.Message) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /chat/rooms/", func(w http.ResponseWriter, r *http.Request) {
		rooms := make([]types.Room, 0, len(history))
		for id := range history {
			rooms = append(rooms, types.Room{Id: id})
		}
		json.NewEncoder(w).Encode(rooms)
	})
	mux.HandleFunc("GET /chat/history/{roomId}/", func(w http.ResponseWriter, r *http.Request) {
		msgs, ok := history[r.PathValue("roomId")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"room not found"}`))
			return
		}
		json.NewEncoder(w).Encode(msgs)
	})

	return mux
}

func TestManager_SelectRoom(t *testing.T) {
	history := map[string][]types.Message{
		"r1": {
			{Id: 1, Text: "welcome"},
			{Id: 2, Text: "thanks", SenderIsLocal: true},
		},
	}

	sendLive := make(chan string)
	m := newTestManager(t, chatBackendMux(history), func(conn *websocket.Conn, r *http.Request) {
		for text := range sendLive {
			frame, _ := json.Marshal(types.Message{Text: text})
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
	})
	defer close(sendLive)

	require.NoError(t, m.SelectRoom(context.Background(), "r1"), "expected room selection to succeed")
	defer m.Reset()

	assert.Equal(t, Open, m.State(), "expected transport to be open after selection")

	roomId, ok := m.ActiveRoom()
	assert.True(t, ok, "expected an active room after selection")
	assert.Equal(t, "r1", roomId, "expected active room to match selection")

	msgs := m.Messages("r1")
	require.Len(t, msgs, 2, "expected history to be applied before any realtime arrival")
	assert.Equal(t, "welcome", msgs[0].Text, "expected history order to be preserved")

	sendLive <- "live one"
	sendLive <- "live two"

	require.Eventually(t, func() bool {
		return len(m.Messages("r1")) == 4
	}, time.Second, 10*time.Millisecond, "expected realtime arrivals to be appended")

	msgs = m.Messages("r1")
	assert.Equal(t, "live one", msgs[2].Text, "expected realtime arrivals after history")
	assert.Equal(t, "live two", msgs[3].Text, "expected realtime arrival order to be preserved")
}

func TestManager_SelectRoom_Detach(t *testing.T) {
	history := map[string][]types.Message{"r1": {}}

	m := newTestManager(t, chatBackendMux(history), func(conn *websocket.Conn, r *http.Request) {
		conn.ReadMessage()
	})

	require.NoError(t, m.SelectRoom(context.Background(), "r1"))
	require.Equal(t, Open, m.State(), "expected transport to be open after selection")

	require.NoError(t, m.SelectRoom(context.Background(), ""), "expected deselection to succeed")

	assert.Equal(t, Disconnected, m.State(), "expected clearing the pointer to detach the transport")
	_, ok := m.ActiveRoom()
	assert.False(t, ok, "expected no active room after deselection")
}

func TestManager_SelectRoom_SwitchRooms(t *testing.T) {
	history := map[string][]types.Message{
		"r1": {{Id: 1, Text: "in r1"}},
		"r2": {{Id: 2, Text: "in r2"}},
	}

	connectedRooms := make(chan string, 2)
	m := newTestManager(t, chatBackendMux(history), func(conn *websocket.Conn, r *http.Request) {
		connectedRooms <- r.URL.Path
		conn.ReadMessage()
	})

	require.NoError(t, m.SelectRoom(context.Background(), "r1"))
	require.NoError(t, m.SelectRoom(context.Background(), "r2"))
	defer m.Reset()

	assert.Equal(t, "/ws/chat/r1/", <-connectedRooms, "expected first connection to target r1")
	assert.Equal(t, "/ws/chat/r2/", <-connectedRooms, "expected second connection to target r2")

	roomId, _ := m.ActiveRoom()
	assert.Equal(t, "r2", roomId, "expected the pointer to follow the selection")
	assert.Len(t, m.Messages("r1"), 1, "expected r1's list to be untouched by switching away")
	assert.Len(t, m.Messages("r2"), 1, "expected r2's history to be loaded")
}

func TestManager_SelectRoom_HistoryFailure(t *testing.T) {
	m := newTestManager(t, chatBackendMux(nil), func(conn *websocket.Conn, r *http.Request) {
		t.Error("expected no connection attempt when the history fetch fails")
	})

	err := m.SelectRoom(context.Background(), "missing")
	assert.Error(t, err, "expected the history failure to be surfaced")
	assert.Equal(t, Disconnected, m.State(), "expected the transport to stay down")
}

func TestManager_SendTextEcho(t *testing.T) {
	history := map[string][]types.Message{"r1": {}}

	echoed := make(chan struct{})
	m := newTestManager(t, chatBackendMux(history), func(conn *websocket.Conn, r *http.Request) {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame outboundFrame
		require.NoError(t, json.Unmarshal(raw, &frame), "expected a JSON outbound frame")
		assert.Equal(t, "hi", frame.Text, "expected the frame to carry the sent text")

		echo, _ := json.Marshal(types.Message{Text: frame.Text, SenderIsLocal: true})
		conn.WriteMessage(websocket.TextMessage, echo)
		close(echoed)
		conn.ReadMessage()
	})

	require.NoError(t, m.SelectRoom(context.Background(), "r1"))
	defer m.Reset()

	require.NoError(t, m.SendText("hi"), "expected send to succeed while open")

	<-echoed
	require.Eventually(t, func() bool {
		return len(m.Messages("r1")) == 1
	}, time.Second, 10*time.Millisecond, "expected the echoed message to be appended")

	msg := m.Messages("r1")[0]
	assert.Equal(t, "hi", msg.Text, "expected the echoed text")
	assert.True(t, msg.SenderIsLocal, "expected the echo to be marked as the local user's message")
}

func TestManager_LoadRooms(t *testing.T) {
	history := map[string][]types.Message{"r1": {}}

	m := newTestManager(t, chatBackendMux(history), func(conn *websocket.Conn, r *http.Request) {
		conn.ReadMessage()
	})

	rooms, err := m.LoadRooms(context.Background())
	require.NoError(t, err, "expected room listing to succeed")
	require.Len(t, rooms, 1, "expected one room")
	assert.Equal(t, rooms, m.Rooms(), "expected the room list to be stored")
}

func TestManager_Reset(t *testing.T) {
	history := map[string][]types.Message{
		"r1": {{Id: 1, Text: "hello"}},
	}

	m := newTestManager(t, chatBackendMux(history), func(conn *websocket.Conn, r *http.Request) {
		conn.ReadMessage()
	})

	_, err := m.LoadRooms(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.SelectRoom(context.Background(), "r1"))

	m.Reset()

	assert.Equal(t, Disconnected, m.State(), "expected the transport to be closed by reset")
	assert.Empty(t, m.Rooms(), "expected no rooms after reset")
	assert.Empty(t, m.Messages("r1"), "expected no messages after reset")
	_, ok := m.ActiveRoom()
	assert.False(t, ok, "expected no active room after reset")
}
