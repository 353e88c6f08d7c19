package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func dietCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diet",
		Short: "Diet plan tracking",
	}

	cmd.AddCommand(
		dietPlanCmd(),
		dietGenerateCmd(),
		dietFollowCmd(),
		dietSkipCmd(),
		dietLogCmd(),
		dietWeightCmd(),
		dietReportCmd(),
	)
	return cmd
}

func dietPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the active diet plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := app.api.CurrentDietPlan(cmd.Context())
			if err != nil {
				return err
			}

			if !plan.HasPlan {
				fmt.Println("no active diet plan; run 'fitcli diet generate'")
				return nil
			}

			return printJSON(plan)
		},
	}
}

func dietGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh diet plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := app.api.GenerateDietPlan(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(plan)
		},
	}
}

func dietFollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <meal-id>",
		Short: "Mark a planned meal as eaten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mealId, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("meal id must be a number: %w", err)
			}

			if err := app.api.FollowMeal(cmd.Context(), mealId); err != nil {
				return err
			}

			fmt.Println("meal logged")
			return nil
		},
	}
}

func dietSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <meal-id>",
		Short: "Mark a planned meal as skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mealId, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("meal id must be a number: %w", err)
			}

			if err := app.api.SkipMeal(cmd.Context(), mealId); err != nil {
				return err
			}

			fmt.Println("meal skipped")
			return nil
		},
	}
}

func dietLogCmd() *cobra.Command {
	var (
		extra    bool
		calories float64
	)

	cmd := &cobra.Command{
		Use:   "log <description>",
		Short: "Log a meal outside the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if extra {
				err = app.api.LogExtraMeal(cmd.Context(), args[0], calories)
			} else {
				err = app.api.LogCustomMeal(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			fmt.Println("meal logged")
			return nil
		},
	}

	cmd.Flags().BoolVar(&extra, "extra", false, "log as an extra meal with explicit calories")
	cmd.Flags().Float64Var(&calories, "calories", 0, "calories for an extra meal")

	return cmd
}

func dietWeightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weight <kg>",
		Short: "Record the current weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("weight must be a number: %w", err)
			}

			if err := app.api.UpdateWeight(cmd.Context(), kg); err != nil {
				return err
			}

			fmt.Println("weight updated")
			return nil
		},
	}
}

func dietReportCmd() *cobra.Command {
	var (
		date    string
		weekly  bool
		monthly bool
		year    int
		month   int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show diet analytics (daily by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case weekly:
				report, err := app.api.WeeklyAnalytics(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(report)
			case monthly:
				report, err := app.api.MonthlyAnalytics(cmd.Context(), year, month)
				if err != nil {
					return err
				}
				return printJSON(report)
			default:
				report, err := app.api.DailyAnalytics(cmd.Context(), date)
				if err != nil {
					return err
				}
				return printJSON(report)
			}
		},
	}

	now := time.Now()
	cmd.Flags().StringVar(&date, "date", "", "day to report on (YYYY-MM-DD), default today")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "show the weekly report")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "show a monthly report")
	cmd.Flags().IntVar(&year, "year", now.Year(), "year for the monthly report")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month for the monthly report")

	return cmd
}
