package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// mealTypeFix describes one corrected row in the fix-meal-types response.
type mealTypeFix struct {
	FoodName  string `json:"food_name"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// fixMealTypes re-runs the meal-type classifier over today's diet entries
// for the current user and persists any corrections. This is the admin
// correction pass — the only path allowed to overwrite meal_type on an
// existing entry.
// POST /api/admin/fix-meal-types.
func (h *Handler) fixMealTypes(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := time.Now()
	today := now.Format("2006-01-02")

	logs, err := queryMany[dietLog](h.db, c,
		"SELECT * FROM diet_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": today})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch diet logs")
		return
	}

	fixed := []mealTypeFix{}
	for _, entry := range logs {
		corrected := correctMealType(entry.FoodName, entry.MealType, "", now)
		if corrected == entry.MealType {
			continue
		}
		if _, err := h.db.Exec(c,
			"UPDATE diet_logs SET meal_type = @mealType WHERE id = @id",
			pgx.NamedArgs{"mealType": corrected, "id": entry.ID}); err != nil {
			apiError(c, http.StatusInternalServerError, "failed to update diet log")
			return
		}
		fixed = append(fixed, mealTypeFix{FoodName: entry.FoodName, Original: entry.MealType, Corrected: corrected})
	}

	if len(fixed) > 0 {
		h.cache.invalidate(c, statsCacheKey(userID, today))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("已修正 %d 筆飲食記錄的餐點類型", len(fixed)),
		"fixed_count": len(fixed),
		"details":     fixed,
	})
}
