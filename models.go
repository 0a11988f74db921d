package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. PasswordHash is hidden from JSON responses.
// Body-profile columns are nullable — recommendations stay unavailable
// until the profile is complete.
type user struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    *time.Time `json:"created_at" db:"created_at"`

	Gender        *string  `json:"gender" db:"gender"`
	HeightCM      *float64 `json:"height_cm" db:"height_cm"`
	WeightKG      *float64 `json:"weight_kg" db:"weight_kg"`
	Age           *int     `json:"age" db:"age"`
	ActivityLevel *string  `json:"activity_level" db:"activity_level"`
	Goal          *string  `json:"goal" db:"goal"`
}

// dietLog maps to diet_logs. One row per food entry; meal_type is always
// one of breakfast/lunch/dinner/snack and numeric fields are non-negative.
type dietLog struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	Date       DateOnly   `json:"date" db:"date"`
	MealType   string     `json:"meal_type" db:"meal_type"`
	FoodName   string     `json:"food_name" db:"food_name"`
	Calories   float64    `json:"calories" db:"calories"`
	Protein    float64    `json:"protein" db:"protein"`
	Carbs      float64    `json:"carbs" db:"carbs"`
	Fat        float64    `json:"fat" db:"fat"`
	Vegetables float64    `json:"vegetables" db:"vegetables"`
	CreatedAt  *time.Time `json:"created_at" db:"created_at"`
}

// exerciseLog maps to exercise_logs. Duration is minutes.
type exerciseLog struct {
	ID             int        `json:"id" db:"id"`
	UserID         int        `json:"user_id" db:"user_id"`
	Date           DateOnly   `json:"date" db:"date"`
	ExerciseType   string     `json:"exercise_type" db:"exercise_type"`
	Duration       float64    `json:"duration" db:"duration"`
	CaloriesBurned float64    `json:"calories_burned" db:"calories_burned"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}

// dailyReport maps to daily_reports. ReportContent is a JSONB column
// holding the AI report text plus the day's totals at generation time.
type dailyReport struct {
	ID            int            `json:"id" db:"id"`
	UserID        int            `json:"user_id" db:"user_id"`
	Date          DateOnly       `json:"date" db:"date"`
	ReportContent *reportContent `json:"report_content" db:"report_content"`
	CreatedAt     *time.Time     `json:"created_at" db:"created_at"`
}

// reportContent is the JSONB payload stored on daily_reports rows.
type reportContent struct {
	Text          string  `json:"text"`
	CaloriesIn    float64 `json:"calories_in"`
	CaloriesOut   float64 `json:"calories_out"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fat           float64 `json:"fat"`
	ExerciseCount int     `json:"exercise_count"`
}

// conversation maps to conversations.
type conversation struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// message maps to messages. Role is "user" or "assistant".
type message struct {
	ID             int        `json:"id" db:"id"`
	ConversationID int        `json:"conversation_id" db:"conversation_id"`
	Role           string     `json:"role" db:"role"`
	Content        string     `json:"content" db:"content"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}
