package api

import (
	"context"
	"fmt"

	"github.com/peakfit/fitcli/internal/types"
)

// Rooms lists the chat rooms the user belongs to. Rooms exist only
// server-side; the client discovers them here and never creates one.
func (c *Client) Rooms(ctx context.Context) ([]types.Room, error) {
	var rooms []types.Room
	err := c.get(ctx, "chat/rooms/", nil, &rooms)
	return rooms, err
}

// History returns the ordered message backlog of one room.
func (c *Client) History(ctx context.Context, roomId string) ([]types.Message, error) {
	var messages []types.Message
	err := c.get(ctx, fmt.Sprintf("chat/history/%s/", roomId), nil, &messages)
	return messages, err
}
