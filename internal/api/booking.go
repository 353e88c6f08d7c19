package api

import (
	"context"
	"fmt"

	"github.com/peakfit/fitcli/internal/types"
)

// ApprovedTrainers lists trainers available for booking.
func (c *Client) ApprovedTrainers(ctx context.Context) ([]types.Trainer, error) {
	var trainers []types.Trainer
	err := c.get(ctx, "user/trainers/approved/", nil, &trainers)
	return trainers, err
}

// BookTrainer requests a booking with the given trainer. The booking
// starts pending; a chat room appears only once the trainer approves.
func (c *Client) BookTrainer(ctx context.Context, trainerUserId int) (types.Booking, error) {
	var booking types.Booking
	err := c.post(ctx, fmt.Sprintf("user/trainers/%d/book/", trainerUserId), nil, &booking)
	return booking, err
}

func (c *Client) MyTrainers(ctx context.Context) ([]types.Trainer, error) {
	var trainers []types.Trainer
	err := c.get(ctx, "user/my-trainers/", nil, &trainers)
	return trainers, err
}

func (c *Client) RemoveTrainer(ctx context.Context) error {
	return c.delete(ctx, "user/trainers/remove/", nil)
}

// PendingClients lists booking requests awaiting this trainer's
// decision.
func (c *Client) PendingClients(ctx context.Context) ([]types.Booking, error) {
	var bookings []types.Booking
	err := c.get(ctx, "trainer/pending-clients/", nil, &bookings)
	return bookings, err
}

func (c *Client) ApprovedUsers(ctx context.Context) ([]types.Booking, error) {
	var bookings []types.Booking
	err := c.get(ctx, "trainer/approved-users/", nil, &bookings)
	return bookings, err
}

// DecideBooking approves or rejects a pending booking request.
func (c *Client) DecideBooking(ctx context.Context, bookingId int, approve bool) (types.Booking, error) {
	var booking types.Booking
	body := map[string]bool{"approve": approve}
	err := c.post(ctx, fmt.Sprintf("trainer/bookings/%d/decide/", bookingId), body, &booking)
	return booking, err
}
