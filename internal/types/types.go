package types

import (
	"time"
)

type User struct {
	Id           int       `json:"id"`
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address,omitempty"`
	Role         string    `json:"role,omitempty"`
	IsActive     bool      `json:"is_active,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type Profile struct {
	DOB                string  `json:"dob,omitempty"`
	Gender             string  `json:"gender,omitempty"`
	HeightCm           float64 `json:"height_cm,omitempty"`
	WeightKg           float64 `json:"weight_kg,omitempty"`
	TargetWeightKg     float64 `json:"target_weight_kg,omitempty"`
	Goal               string  `json:"goal,omitempty"`
	ActivityLevel      string  `json:"activity_level,omitempty"`
	ExerciseExperience string  `json:"exercise_experience,omitempty"`
	ProfileCompleted   bool    `json:"profile_completed,omitempty"`
}

// ProfileChoices lists the backend's accepted values for each
// enumerated profile field, keyed by field name.
type ProfileChoices map[string][]string

type TrainerProfile struct {
	UserId         int      `json:"user_id,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	ExperienceYrs  int      `json:"experience_years,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Approved       bool     `json:"approved,omitempty"`
}

type Trainer struct {
	User    User           `json:"user"`
	Profile TrainerProfile `json:"profile"`
}

type Meal struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	Slot     string  `json:"slot,omitempty"`
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein_g,omitempty"`
	Carbs    float64 `json:"carbs_g,omitempty"`
	Fat      float64 `json:"fat_g,omitempty"`
}

type DietPlan struct {
	Id        int       `json:"id,omitempty"`
	HasPlan   bool      `json:"has_plan"`
	Meals     []Meal    `json:"meals,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type DailyReport struct {
	Date           string  `json:"date"`
	CaloriesTarget float64 `json:"calories_target,omitempty"`
	CaloriesEaten  float64 `json:"calories_eaten,omitempty"`
	MealsFollowed  int     `json:"meals_followed,omitempty"`
	MealsSkipped   int     `json:"meals_skipped,omitempty"`
}

type WeeklyReport struct {
	Days []DailyReport `json:"days,omitempty"`
}

type MonthlyReport struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DailyReport `json:"days,omitempty"`
}

type Booking struct {
	Id        int       `json:"id"`
	Client    User      `json:"client"`
	Trainer   User      `json:"trainer"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type Room struct {
	Id              string `json:"id"`
	CounterpartId   int    `json:"counterpart_id,omitempty"`
	CounterpartName string `json:"counterpart_name,omitempty"`
	BookingId       int    `json:"booking_id,omitempty"`
}

type Message struct {
	Id            int       `json:"id,omitempty"`
	SenderIsLocal bool      `json:"sender_is_local,omitempty"`
	Text          string    `json:"text"`
	Read          bool      `json:"read,omitempty"`
	Timestamp     time.Time `json:"timestamp,omitempty"`
}
