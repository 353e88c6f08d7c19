package main

import (
	"github.com/spf13/cobra"

	"github.com/peakfit/fitcli/internal/types"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the fitness profile",
	}

	cmd.AddCommand(profileShowCmd(), profileEditCmd(), profileChoicesCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.api.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(profile)
		},
	}
}

func profileEditCmd() *cobra.Command {
	var patch types.Profile

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update profile fields; unset flags are left unchanged",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.api.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}

			return printJSON(profile)
		},
	}

	cmd.Flags().StringVar(&patch.DOB, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&patch.Gender, "gender", "", "gender")
	cmd.Flags().Float64Var(&patch.HeightCm, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&patch.WeightKg, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&patch.TargetWeightKg, "target-weight", 0, "target weight in kg")
	cmd.Flags().StringVar(&patch.Goal, "goal", "", "fitness goal")
	cmd.Flags().StringVar(&patch.ActivityLevel, "activity", "", "activity level")
	cmd.Flags().StringVar(&patch.ExerciseExperience, "experience", "", "exercise experience")

	return cmd
}

func profileChoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choices",
		Short: "List the accepted values for each profile field",
		RunE: func(cmd *cobra.Command, _ []string) error {
			choices, err := app.api.ProfileChoices(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(choices)
		},
	}
}
