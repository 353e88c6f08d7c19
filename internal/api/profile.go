package api

import (
	"context"

	"github.com/peakfit/fitcli/internal/types"
)

func (c *Client) FetchProfile(ctx context.Context) (types.Profile, error) {
	var profile types.Profile
	err := c.get(ctx, "user/profile/", nil, &profile)
	return profile, err
}

// UpdateProfile sends a partial update; zero-valued fields are left
// untouched by the backend.
func (c *Client) UpdateProfile(ctx context.Context, patch types.Profile) (types.Profile, error) {
	var profile types.Profile
	err := c.patch(ctx, "user/profile/", patch, &profile)
	return profile, err
}

func (c *Client) ProfileChoices(ctx context.Context) (types.ProfileChoices, error) {
	var choices types.ProfileChoices
	err := c.get(ctx, "user/choices/", nil, &choices)
	return choices, err
}

func (c *Client) TrainerInfo(ctx context.Context) (types.TrainerProfile, error) {
	var profile types.TrainerProfile
	err := c.get(ctx, "trainer/info/", nil, &profile)
	return profile, err
}

func (c *Client) EditTrainerInfo(ctx context.Context, patch types.TrainerProfile) (types.TrainerProfile, error) {
	var profile types.TrainerProfile
	err := c.patch(ctx, "trainer/info/edit/", patch, &profile)
	return profile, err
}
