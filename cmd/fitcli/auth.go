package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peakfit/fitcli/internal/api"
)

func loginCmd() *cobra.Command {
	var (
		email       string
		password    string
		googleToken string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if googleToken != "" {
				if app.cfg.GoogleClientID == "" {
					return fmt.Errorf("google sign-in is not configured; set --google-client-id")
				}

				user, err := app.api.GoogleLogin(cmd.Context(), googleToken)
				if err != nil {
					return err
				}

				fmt.Printf("signed in as %s\n", user.Username)
				return nil
			}

			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			user, err := app.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Printf("signed in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&googleToken, "google-id-token", "", "sign in with a google id token instead")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.chat.Reset()

			if err := app.api.Logout(cmd.Context()); err != nil {
				// tokens are already cleared locally, surface the
				// backend failure anyway
				return err
			}

			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := app.sess.Get(); !ok {
				return fmt.Errorf("not signed in")
			}

			if app.sess.Expired() {
				fmt.Println("warning: access token looks expired")
			}

			user, err := app.api.AccountInfo(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(user)
		},
	}
}

func registerCmd() *cobra.Command {
	var (
		req     api.RegisterRequest
		trainer bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			register := app.api.Register
			if trainer {
				register = app.api.RegisterTrainer
			}

			user, err := register(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("registered %s, you can now log in\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.OTP, "otp", "", "one-time code from the verification email")
	cmd.Flags().BoolVar(&trainer, "trainer", false, "register as a trainer")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	cmd.AddCommand(&cobra.Command{
		Use:   "request-otp <email>",
		Short: "Send a verification code to an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.api.RequestOTP(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("verification code sent to %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func resetPasswordCmd() *cobra.Command {
	var (
		email       string
		otp         string
		newPassword string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a forgotten password",
		Long:  "Run once with --email to receive a code, then again with --otp and --new-password to confirm.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if otp == "" {
				if err := app.api.RequestPasswordResetOTP(cmd.Context(), email); err != nil {
					return err
				}

				fmt.Printf("reset code sent to %s\n", email)
				return nil
			}

			if newPassword == "" {
				return fmt.Errorf("--new-password is required with --otp")
			}

			if err := app.api.ConfirmPasswordReset(cmd.Context(), email, otp, newPassword); err != nil {
				return err
			}

			fmt.Println("password updated, you can now log in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&otp, "otp", "", "reset code from the email")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "replacement password")
	cmd.MarkFlagRequired("email")

	return cmd
}

func accountCmd() *cobra.Command {
	var (
		username string
		email    string
	)

	edit := &cobra.Command{
		Use:   "edit",
		Short: "Update the account's username or email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.api.AccountInfo(cmd.Context())
			if err != nil {
				return err
			}

			if username != "" {
				user.Username = username
			}
			if email != "" {
				user.EmailAddress = email
			}

			updated, err := app.api.EditAccount(cmd.Context(), user)
			if err != nil {
				return err
			}

			return printJSON(updated)
		},
	}

	edit.Flags().StringVar(&username, "username", "", "new display name")
	edit.Flags().StringVar(&email, "email", "", "new email address")

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the authenticated account",
	}
	cmd.AddCommand(edit)

	return cmd
}
