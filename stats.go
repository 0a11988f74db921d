package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// statsCacheKey builds the redis key for a user's cached daily stats.
func statsCacheKey(userID int, date string) string {
	return fmt.Sprintf("stats:%d:%s", userID, date)
}

// getTodayStats returns today's aggregate totals. Cached for 60 seconds;
// writes to diet/exercise logs invalidate the entry.
// GET /api/stats/today.
func (h *Handler) getTodayStats(c *gin.Context) {
	userID := c.GetInt("user_id")
	today := time.Now().Format("2006-01-02")

	var agg dailyAggregate
	if !h.cache.getJSON(c, statsCacheKey(userID, today), &agg) {
		var ok bool
		agg, ok = h.aggregateForDate(c, userID, today)
		if !ok {
			return
		}
		h.cache.setJSON(c, statsCacheKey(userID, today), agg, time.Minute)
	}

	c.JSON(http.StatusOK, gin.H{
		"calories_in":    agg.CaloriesIn,
		"calories_out":   agg.CaloriesOut,
		"protein":        agg.Protein,
		"carbs":          agg.Carbs,
		"fat":            agg.Fat,
		"exercise_count": agg.ExerciseCount,
	})
}

// aggregateForDate loads a user's diet and exercise rows for a date and
// folds them into a dailyAggregate. Writes the HTTP error itself; the bool
// reports success.
func (h *Handler) aggregateForDate(c *gin.Context, userID int, date string) (dailyAggregate, bool) {
	diet, err := queryMany[dietLog](h.db, c,
		`SELECT * FROM diet_logs WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch diet logs")
		return dailyAggregate{}, false
	}

	exercise, err := queryMany[exerciseLog](h.db, c,
		`SELECT * FROM exercise_logs WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch exercise logs")
		return dailyAggregate{}, false
	}

	return aggregateDay(diet, exercise), true
}
