package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/peakfit/fitcli/internal/session"
	"github.com/peakfit/fitcli/internal/stats"
	"github.com/peakfit/fitcli/internal/types"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// ErrNotConnected is returned by SendText when the transport is not
// open. The message is never silently dropped.
var ErrNotConnected = errors.New("transport is not connected")

type State int

const (
	Disconnected State = iota
	Connecting
	Open
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	default:
		return "disconnected"
	}
}

type outboundFrame struct {
	Text string `json:"text"`
}

// InboundHandler receives each validated inbound message along with
// the room the connection was opened for.
type InboundHandler func(roomId string, msg types.Message)

// wsConn is one live connection generation. Teardown must be
// idempotent: the read loop, the write loop and Close can all race to
// it.
type wsConn struct {
	conn *websocket.Conn
	send chan []byte
	stop chan struct{}
	once sync.Once
}

func (w *wsConn) close() {
	w.once.Do(func() {
		close(w.stop)
		w.conn.Close()
	})
}

// Transport maintains at most one websocket connection, tied to the
// currently selected room. There is no automatic reconnect: a dropped
// connection stays disconnected until the room is selected again.
type Transport struct {
	wsBaseURL string
	session   *session.Store
	log       *log.Logger
	stats     stats.StatsProvider
	handler   InboundHandler

	mu      sync.Mutex
	state   State
	roomId  string
	current *wsConn
}

func NewTransport(wsBaseURL string, sess *session.Store, logger *log.Logger, sp stats.StatsProvider, handler InboundHandler) *Transport {
	sp.RegisterMetric("NumConnects")
	sp.RegisterMetric("NumMessagesSent")
	sp.RegisterMetric("NumMessagesReceived")
	sp.RegisterMetric("NumMalformedFrames")

	return &Transport{
		wsBaseURL: strings.TrimRight(wsBaseURL, "/"),
		session:   sess,
		log:       logger,
		stats:     sp,
		handler:   handler,
	}
}

func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// RoomId returns the room the transport is attached to, if any.
func (t *Transport) RoomId() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roomId, t.roomId != ""
}

// dialURL encodes the room and the access token into the connection
// target; this endpoint has no header-based auth.
func (t *Transport) dialURL(roomId, token string) string {
	q := url.Values{}
	q.Set("token", token)
	return fmt.Sprintf("%s/ws/chat/%s/?%s", t.wsBaseURL, roomId, q.Encode())
}

// Connect dials the room's endpoint and starts the read and write
// loops. It is an error to connect while already attached; callers
// close first.
func (t *Transport) Connect(ctx context.Context, roomId string) error {
	token, ok := t.session.Get()
	if !ok {
		return fmt.Errorf("no access token")
	}

	t.mu.Lock()
	if t.state != Disconnected {
		attached := t.roomId
		t.mu.Unlock()
		return fmt.Errorf("transport already attached to room %q", attached)
	}
	t.state = Connecting
	t.roomId = roomId
	t.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.dialURL(roomId, token), nil)

	t.mu.Lock()
	if err != nil {
		t.state = Disconnected
		t.roomId = ""
		t.mu.Unlock()
		return fmt.Errorf("dial room %q: %w", roomId, err)
	}

	if t.state != Connecting {
		// Close raced the dial; the landed connection is unwanted.
		t.mu.Unlock()
		conn.Close()
		return fmt.Errorf("connect to room %q aborted", roomId)
	}

	w := &wsConn{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		stop: make(chan struct{}),
	}
	t.current = w
	t.state = Open
	t.mu.Unlock()

	t.stats.Incr("NumConnects")

	go t.readLoop(w, roomId)
	go t.writeLoop(w)

	return nil
}

// Close tears down the current connection without draining unsent
// data. Closing is also the only way to abandon an in-flight dial.
func (t *Transport) Close() {
	t.mu.Lock()
	w := t.current
	t.current = nil
	t.state = Disconnected
	t.roomId = ""
	t.mu.Unlock()

	if w != nil {
		w.close()
	}
}

// SendText transmits one frame carrying body. While not open it
// mutates nothing and reports ErrNotConnected.
func (t *Transport) SendText(body string) error {
	t.mu.Lock()
	w := t.current
	open := t.state == Open
	t.mu.Unlock()

	if !open || w == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(outboundFrame{Text: body})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	select {
	case w.send <- data:
	case <-w.stop:
		return ErrNotConnected
	default:
		return fmt.Errorf("send buffer full")
	}

	t.stats.Incr("NumMessagesSent")
	return nil
}

// dropConn transitions to Disconnected if w is still the live
// connection. A stale generation (already replaced by a reconnect)
// only cleans itself up.
func (t *Transport) dropConn(w *wsConn) {
	t.mu.Lock()
	if t.current == w {
		t.current = nil
		t.state = Disconnected
		t.roomId = ""
	}
	t.mu.Unlock()

	w.close()
}

func (t *Transport) readLoop(w *wsConn, roomId string) {
	defer t.dropConn(w)

	w.conn.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				t.log.Printf("ws: read: %v", err)
			}
			return
		}

		var msg types.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.log.Println("dropping malformed frame:", err)
			t.stats.Incr("NumMalformedFrames")
			continue
		}
		if msg.Text == "" {
			t.log.Println("dropping frame with empty text")
			t.stats.Incr("NumMalformedFrames")
			continue
		}

		t.stats.Incr("NumMessagesReceived")
		t.handler(roomId, msg)
	}
}

func (t *Transport) writeLoop(w *wsConn) {
	defer w.conn.Close()

	for {
		select {
		case data := <-w.send:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
					websocket.CloseNormalClosure) {
					t.log.Printf("ws: write: %v", err)
				}
				return
			}
		case <-w.stop:
			return
		}
	}
}
