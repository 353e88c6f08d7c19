package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/peakfit/fitcli/internal/types"
)

type MealLogRequest struct {
	MealId      int     `json:"meal_id,omitempty"`
	Description string  `json:"description,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
}

// CurrentDietPlan fetches the active plan without regenerating it.
// Having no active plan is a valid empty result, not an error.
func (c *Client) CurrentDietPlan(ctx context.Context) (types.DietPlan, error) {
	var plan types.DietPlan
	err := c.get(ctx, "user/diet-plan/", nil, &plan)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return types.DietPlan{HasPlan: false}, nil
		}
		return types.DietPlan{}, err
	}

	plan.HasPlan = true
	return plan, nil
}

// GenerateDietPlan asks the backend to build a fresh plan; an
// explicit user action, never triggered implicitly.
func (c *Client) GenerateDietPlan(ctx context.Context) (types.DietPlan, error) {
	var plan types.DietPlan
	err := c.post(ctx, "user/diet/generate/", nil, &plan)
	if err == nil {
		plan.HasPlan = true
	}
	return plan, err
}

func (c *Client) FollowMeal(ctx context.Context, mealId int) error {
	return c.post(ctx, "user/diet/follow-meal/", MealLogRequest{MealId: mealId}, nil)
}

func (c *Client) SkipMeal(ctx context.Context, mealId int) error {
	return c.post(ctx, "user/diet/skip-meal/", MealLogRequest{MealId: mealId}, nil)
}

// LogCustomMeal records a free-form meal; the backend estimates its
// nutrition from the description.
func (c *Client) LogCustomMeal(ctx context.Context, description string) error {
	return c.post(ctx, "user/diet/log-custom-meal/", MealLogRequest{Description: description}, nil)
}

func (c *Client) LogExtraMeal(ctx context.Context, description string, calories float64) error {
	return c.post(ctx, "user/diet/extra-meal/", MealLogRequest{Description: description, Calories: calories}, nil)
}

func (c *Client) UpdateWeight(ctx context.Context, weightKg float64) error {
	return c.post(ctx, "user/diet/update-weight/", map[string]float64{"weight_kg": weightKg}, nil)
}

// DailyAnalytics returns the report for date (YYYY-MM-DD); an empty
// date means today.
func (c *Client) DailyAnalytics(ctx context.Context, date string) (types.DailyReport, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}

	var report types.DailyReport
	err := c.get(ctx, "user/diet/analytics/daily/", query, &report)
	return report, err
}

func (c *Client) WeeklyAnalytics(ctx context.Context) (types.WeeklyReport, error) {
	var report types.WeeklyReport
	err := c.get(ctx, "user/diet/analytics/weekly/", nil, &report)
	return report, err
}

func (c *Client) MonthlyAnalytics(ctx context.Context, year, month int) (types.MonthlyReport, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	var report types.MonthlyReport
	err := c.get(ctx, "user/diet/analytics/monthly/", query, &report)
	return report, err
}
