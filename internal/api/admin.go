package api

import (
	"context"
	"fmt"

	"github.com/peakfit/fitcli/internal/types"
)

func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	var users []types.User
	err := c.get(ctx, "admin/users/", nil, &users)
	return users, err
}

// SetUserStatus activates or deactivates a user account.
func (c *Client) SetUserStatus(ctx context.Context, userId int, active bool) error {
	body := map[string]bool{"is_active": active}
	return c.post(ctx, fmt.Sprintf("admin/users/%d/status/", userId), body, nil)
}

func (c *Client) Trainers(ctx context.Context) ([]types.Trainer, error) {
	var trainers []types.Trainer
	err := c.get(ctx, "admin/trainers/", nil, &trainers)
	return trainers, err
}

func (c *Client) TrainerDetail(ctx context.Context, userId int) (types.Trainer, error) {
	var trainer types.Trainer
	err := c.get(ctx, fmt.Sprintf("admin/trainers/%d/", userId), nil, &trainer)
	return trainer, err
}

// ApproveTrainer marks a trainer application as approved, which makes
// the trainer bookable.
func (c *Client) ApproveTrainer(ctx context.Context, userId int) (types.Trainer, error) {
	var trainer types.Trainer
	err := c.post(ctx, fmt.Sprintf("admin/trainers/%d/approve/", userId), nil, &trainer)
	return trainer, err
}
