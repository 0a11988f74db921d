package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// recordDietRequest is the body for POST /api/diet/record.
type recordDietRequest struct {
	Date       string  `json:"date"`
	MealType   string  `json:"meal_type"`
	FoodName   string  `json:"food_name"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Vegetables float64 `json:"vegetables"`
}

// recordDiet creates a diet log entry manually. Defaults date to today;
// numeric fields are clamped to ≥0 like reconciled entries.
// POST /api/diet/record.
func (h *Handler) recordDiet(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body recordDietRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.FoodName == "" {
		apiError(c, http.StatusBadRequest, "food_name is required")
		return
	}
	if !validMealTypes[body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}

	date := time.Now()
	if body.Date != "" {
		t, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = t
	}

	entry := &dietLog{
		Date:       DateOnly{date},
		MealType:   body.MealType,
		FoodName:   body.FoodName,
		Calories:   clampNonNegative(body.Calories),
		Protein:    clampNonNegative(body.Protein),
		Carbs:      clampNonNegative(body.Carbs),
		Fat:        clampNonNegative(body.Fat),
		Vegetables: clampNonNegative(body.Vegetables),
	}
	if err := h.saveDietLog(c, userID, entry); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create diet log")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "飲食記錄已保存"})
}

// getDietLogs returns the user's diet entries for a date (default today).
// GET /api/diet?date=YYYY-MM-DD.
func (h *Handler) getDietLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// Validate date format before querying — an invalid value silently
	// returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entries, err := queryMany[dietLog](h.db, c,
		`SELECT * FROM diet_logs WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch diet logs")
		return
	}
	// Ensure entries is an empty array (not null) in JSON
	if entries == nil {
		entries = []dietLog{}
	}

	c.JSON(http.StatusOK, entries)
}
