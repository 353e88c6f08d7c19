package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/peakfit/fitcli/internal/types"
)

// trainersCmd is the client-side booking workflow.
func trainersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trainers",
		Short: "Browse and book trainers",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List approved trainers available for booking",
			RunE: func(cmd *cobra.Command, _ []string) error {
				trainers, err := app.api.ApprovedTrainers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(trainers)
			},
		},
		&cobra.Command{
			Use:   "book <trainer-user-id>",
			Short: "Request a booking with a trainer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				trainerId, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("trainer id must be a number: %w", err)
				}

				booking, err := app.api.BookTrainer(cmd.Context(), trainerId)
				if err != nil {
					return err
				}

				fmt.Printf("booking requested, status: %s\n", booking.Status)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mine",
			Short: "List trainers you have booked",
			RunE: func(cmd *cobra.Command, _ []string) error {
				trainers, err := app.api.MyTrainers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(trainers)
			},
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Remove the current trainer",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.api.RemoveTrainer(cmd.Context()); err != nil {
					return err
				}

				fmt.Println("trainer removed")
				return nil
			},
		},
	)

	return cmd
}

// trainerCmd is the trainer-side view: own profile and client
// booking decisions.
func trainerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trainer",
		Short: "Trainer-side profile and client management",
	}

	cmd.AddCommand(
		trainerInfoCmd(),
		trainerEditCmd(),
		&cobra.Command{
			Use:   "pending",
			Short: "List booking requests awaiting a decision",
			RunE: func(cmd *cobra.Command, _ []string) error {
				bookings, err := app.api.PendingClients(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(bookings)
			},
		},
		&cobra.Command{
			Use:   "clients",
			Short: "List approved clients",
			RunE: func(cmd *cobra.Command, _ []string) error {
				bookings, err := app.api.ApprovedUsers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(bookings)
			},
		},
		trainerDecideCmd(),
	)

	return cmd
}

func trainerInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the trainer profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.api.TrainerInfo(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}
}

func trainerEditCmd() *cobra.Command {
	var patch types.TrainerProfile

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update the trainer profile; unset flags are left unchanged",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.api.EditTrainerInfo(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}

	cmd.Flags().StringVar(&patch.Bio, "bio", "", "trainer bio")
	cmd.Flags().StringSliceVar(&patch.Specialties, "specialties", nil, "training specialties")
	cmd.Flags().IntVar(&patch.ExperienceYrs, "experience-years", 0, "years of experience")
	cmd.Flags().StringSliceVar(&patch.Certifications, "certifications", nil, "certifications")

	return cmd
}

func trainerDecideCmd() *cobra.Command {
	var reject bool

	cmd := &cobra.Command{
		Use:   "decide <booking-id>",
		Short: "Approve (default) or reject a pending booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookingId, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("booking id must be a number: %w", err)
			}

			booking, err := app.api.DecideBooking(cmd.Context(), bookingId, !reject)
			if err != nil {
				return err
			}

			fmt.Printf("booking %d is now %s\n", booking.Id, booking.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reject, "reject", false, "reject instead of approve")

	return cmd
}
