package chat

import (
	"sync"

	"github.com/peakfit/fitcli/internal/types"
)

// Conversation holds the known rooms, the active room pointer and the
// per-room message lists. It is the single mutation point for both
// the transport's inbound path and REST history fetches. Message
// lists are append-only; only Reset empties them.
type Conversation struct {
	mu             sync.RWMutex
	rooms          []types.Room
	activeRoomId   string
	messagesByRoom map[string][]types.Message
}

func NewConversation() *Conversation {
	return &Conversation{
		messagesByRoom: make(map[string][]types.Message),
	}
}

// SetActiveRoom replaces the pointer; it does not clear or reload any
// messages. An empty id means no room is selected.
func (c *Conversation) SetActiveRoom(roomId string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeRoomId = roomId
}

// ActiveRoom returns the current pointer. ok is false when no room is
// selected.
func (c *Conversation) ActiveRoom() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.activeRoomId, c.activeRoomId != ""
}

// AppendMessage adds msg to the end of the room's list, creating the
// list if absent. Inbound realtime messages land here, one at a time,
// in arrival order.
func (c *Conversation) AppendMessage(roomId string, msg types.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messagesByRoom[roomId] = append(c.messagesByRoom[roomId], msg)
}

// SetHistory replaces the room's list wholesale with a fetched batch.
func (c *Conversation) SetHistory(roomId string, messages []types.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]types.Message, len(messages))
	copy(list, messages)
	c.messagesByRoom[roomId] = list
}

// Messages returns a copy of the room's list in insertion order.
func (c *Conversation) Messages(roomId string) []types.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]types.Message, len(c.messagesByRoom[roomId]))
	copy(list, c.messagesByRoom[roomId])
	return list
}

// SetRooms replaces the known room list.
func (c *Conversation) SetRooms(rooms []types.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]types.Room, len(rooms))
	copy(list, rooms)
	c.rooms = list
}

// Rooms returns a copy of the known room list.
func (c *Conversation) Rooms() []types.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]types.Room, len(c.rooms))
	copy(list, c.rooms)
	return list
}

// Reset clears rooms, the active pointer and every message list;
// invoked on logout.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms = nil
	c.activeRoomId = ""
	c.messagesByRoom = make(map[string][]types.Message)
}
