package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative user and trainer management",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "users",
			Short: "List all users",
			RunE: func(cmd *cobra.Command, _ []string) error {
				users, err := app.api.Users(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(users)
			},
		},
		adminUserStatusCmd(),
		&cobra.Command{
			Use:   "trainers",
			Short: "List all trainers including unapproved applications",
			RunE: func(cmd *cobra.Command, _ []string) error {
				trainers, err := app.api.Trainers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(trainers)
			},
		},
		&cobra.Command{
			Use:   "trainer <user-id>",
			Short: "Show a trainer application in detail",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userId, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("user id must be a number: %w", err)
				}

				trainer, err := app.api.TrainerDetail(cmd.Context(), userId)
				if err != nil {
					return err
				}
				return printJSON(trainer)
			},
		},
		&cobra.Command{
			Use:   "approve <user-id>",
			Short: "Approve a trainer application",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userId, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("user id must be a number: %w", err)
				}

				trainer, err := app.api.ApproveTrainer(cmd.Context(), userId)
				if err != nil {
					return err
				}

				fmt.Printf("trainer %s approved\n", trainer.User.Username)
				return nil
			},
		},
	)

	return cmd
}

func adminUserStatusCmd() *cobra.Command {
	var deactivate bool

	cmd := &cobra.Command{
		Use:   "user-status <user-id>",
		Short: "Activate (default) or deactivate a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userId, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("user id must be a number: %w", err)
			}

			if err := app.api.SetUserStatus(cmd.Context(), userId, !deactivate); err != nil {
				return err
			}

			fmt.Println("user status updated")
			return nil
		},
	}

	cmd.Flags().BoolVar(&deactivate, "deactivate", false, "deactivate instead of activate")

	return cmd
}
