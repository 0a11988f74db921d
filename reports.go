package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// reportFallbackText is stored when report generation fails — the row still
// records the day's totals.
const reportFallbackText = "無法生成 AI 報告"

// reportListItem is one entry of GET /api/reports.
type reportListItem struct {
	Date          string  `json:"date"`
	CaloriesIn    float64 `json:"calories_in"`
	CaloriesOut   float64 `json:"calories_out"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fat           float64 `json:"fat"`
	ExerciseCount int     `json:"exercise_count"`
	ReportContent string  `json:"report_content"`
	HasAIReport   bool    `json:"has_ai_report"`
}

// parseDateParam reads the date query param, defaulting to today; an
// unparseable value also falls back to today rather than erroring.
func parseDateParam(c *gin.Context) string {
	s := c.Query("date")
	if s == "" {
		return time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return time.Now().Format("2006-01-02")
	}
	return s
}

// getReports returns the day's statistics and any stored AI report text.
// No auto-generation happens here.
// GET /api/reports?date=YYYY-MM-DD.
func (h *Handler) getReports(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := parseDateParam(c)

	agg, ok := h.aggregateForDate(c, userID, date)
	if !ok {
		return
	}

	reportText := ""
	report, err := queryOne[dailyReport](h.db, c,
		"SELECT * FROM daily_reports WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date})
	if err == nil && report.ReportContent != nil {
		reportText = report.ReportContent.Text
	}

	c.JSON(http.StatusOK, []reportListItem{{
		Date:          date,
		CaloriesIn:    agg.CaloriesIn,
		CaloriesOut:   agg.CaloriesOut,
		Protein:       agg.Protein,
		Carbs:         agg.Carbs,
		Fat:           agg.Fat,
		ExerciseCount: agg.ExerciseCount,
		ReportContent: reportText,
		HasAIReport:   reportText != "",
	}})
}

// generateReport builds the day's aggregate, asks the LLM for a report, and
// upserts the daily_reports row. Concurrent generation for the same
// user/date is deduplicated with a best-effort redis lock; without redis a
// duplicate ends as a last-write-wins upsert.
// POST /api/reports/generate?date=YYYY-MM-DD.
func (h *Handler) generateReport(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := parseDateParam(c)

	lockKey := fmt.Sprintf("report:lock:%d:%s", userID, date)
	if !h.cache.acquireLock(c, lockKey, time.Minute) {
		apiError(c, http.StatusConflict, "report generation already in progress")
		return
	}
	defer h.cache.releaseLock(c, lockKey)

	agg, ok := h.aggregateForDate(c, userID, date)
	if !ok {
		return
	}

	reportText, err := h.agent.generateText(c.Request.Context(), buildReportPrompt(date, agg))
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Str("date", date).Msg("report generation failed")
		reportText = reportFallbackText
	}

	if err := upsertDailyReport(c, h, userID, date, reportText, agg); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "報告生成成功",
		"report_content": reportText,
	})
}

// upsertDailyReport writes the report row, replacing any existing one for
// the user/date.
func upsertDailyReport(c *gin.Context, h *Handler, userID int, date, text string, agg dailyAggregate) error {
	content, err := json.Marshal(reportContent{
		Text:          text,
		CaloriesIn:    agg.CaloriesIn,
		CaloriesOut:   agg.CaloriesOut,
		Protein:       agg.Protein,
		Carbs:         agg.Carbs,
		Fat:           agg.Fat,
		ExerciseCount: agg.ExerciseCount,
	})
	if err != nil {
		return err
	}

	_, err = h.db.Exec(c,
		`INSERT INTO daily_reports (user_id, date, report_content)
		 VALUES (@userID, @date, @content::jsonb)
		 ON CONFLICT (user_id, date) DO UPDATE SET report_content = EXCLUDED.report_content`,
		pgx.NamedArgs{"userID": userID, "date": date, "content": string(content)})
	return err
}
