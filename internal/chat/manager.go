package chat

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/peakfit/fitcli/internal/api"
	"github.com/peakfit/fitcli/internal/session"
	"github.com/peakfit/fitcli/internal/stats"
	"github.com/peakfit/fitcli/internal/types"
)

// Manager ties room selection to the history fetch and the transport
// attach. History is applied before the transport connects, so a
// room's list is always the fetched backlog followed by realtime
// arrivals in order.
type Manager struct {
	api       *api.Client
	conv      *Conversation
	transport *Transport
	log       *log.Logger

	notifyMu sync.RWMutex
	notify   InboundHandler
}

func NewManager(apiClient *api.Client, wsBaseURL string, sess *session.Store, logger *log.Logger, sp stats.StatsProvider) *Manager {
	conv := NewConversation()

	m := &Manager{
		api:  apiClient,
		conv: conv,
		log:  logger,
	}
	m.transport = NewTransport(wsBaseURL, sess, logger, sp, m.handleInbound)

	return m
}

// Notify registers a listener for inbound messages, called after the
// message has been appended to the conversation state.
func (m *Manager) Notify(fn InboundHandler) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	m.notify = fn
}

func (m *Manager) handleInbound(roomId string, msg types.Message) {
	m.conv.AppendMessage(roomId, msg)

	m.notifyMu.RLock()
	notify := m.notify
	m.notifyMu.RUnlock()

	if notify != nil {
		notify(roomId, msg)
	}
}

// LoadRooms refreshes the room list from the backend.
func (m *Manager) LoadRooms(ctx context.Context) ([]types.Room, error) {
	rooms, err := m.api.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	m.conv.SetRooms(rooms)
	return rooms, nil
}

// SelectRoom detaches from the current room, moves the active
// pointer, loads the room's backlog and attaches the transport. An
// empty room id just detaches. On a failed history fetch the pointer
// still moves but the transport stays down; re-selecting retries
// both.
func (m *Manager) SelectRoom(ctx context.Context, roomId string) error {
	m.transport.Close()
	m.conv.SetActiveRoom(roomId)

	if roomId == "" {
		return nil
	}

	history, err := m.api.History(ctx, roomId)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}
	m.conv.SetHistory(roomId, history)

	if err := m.transport.Connect(ctx, roomId); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	return nil
}

// SendText transmits one message to the active room. Nothing is
// appended locally; the message shows up when the server echoes it
// back on the inbound path.
func (m *Manager) SendText(body string) error {
	return m.transport.SendText(body)
}

func (m *Manager) State() State {
	return m.transport.State()
}

func (m *Manager) ActiveRoom() (string, bool) {
	return m.conv.ActiveRoom()
}

func (m *Manager) Rooms() []types.Room {
	return m.conv.Rooms()
}

func (m *Manager) Messages(roomId string) []types.Message {
	return m.conv.Messages(roomId)
}

// Reset detaches the transport and clears all conversation state;
// part of the logout path.
func (m *Manager) Reset() {
	m.transport.Close()
	m.conv.Reset()
}
