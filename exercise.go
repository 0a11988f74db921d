package main

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

/* ─── MET table ──────────────────────────────────────────────────────── */

// exerciseMETValues maps known exercise types to MET values per intensity.
// MET values are per hour; calories = MET × weight(kg) × time(hours).
var exerciseMETValues = map[string]map[string]float64{
	"羽毛球":  {"low": 4.5, "moderate": 5.5, "high": 7.0},
	"壁球":   {"low": 7.0, "moderate": 10.0, "high": 12.0},
	"網球":   {"low": 5.0, "moderate": 7.0, "high": 9.0},
	"籃球":   {"low": 6.0, "moderate": 8.0, "high": 10.0},
	"跑步":   {"low": 6.0, "moderate": 9.0, "high": 12.0},
	"游泳":   {"low": 5.0, "moderate": 7.5, "high": 10.0},
	"騎自行車": {"low": 4.0, "moderate": 6.0, "high": 8.0},
	"健走":   {"low": 3.5, "moderate": 4.5, "high": 5.5},
}

// defaultMETValues is used for exercise types not in the table.
var defaultMETValues = map[string]float64{
	"low":      4.0,
	"moderate": 6.0,
	"high":     8.0,
}

// exerciseTypeOrder keeps GET /api/exercise/types deterministic.
var exerciseTypeOrder = []string{"羽毛球", "壁球", "網球", "籃球", "跑步", "游泳", "騎自行車", "健走"}

// calculateCaloriesBurned estimates calories for an exercise session:
// MET × weight(kg) × duration(hours), rounded to 2 decimals. Unknown
// exercise types fall back to intensity-based default METs.
func calculateCaloriesBurned(exerciseType string, durationMinutes float64, intensity string, weightKG float64) float64 {
	var met float64
	if table, found := exerciseMETValues[exerciseType]; found {
		met = table[intensity]
	} else {
		met = defaultMETValues[intensity]
	}
	if met == 0 {
		met = 6.0
	}
	calories := met * weightKG * (durationMinutes / 60.0)
	return math.Round(calories*100) / 100
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// recordExerciseRequest is the body for POST /api/exercise/record.
type recordExerciseRequest struct {
	ExerciseType   string  `json:"exercise_type"`
	Duration       float64 `json:"duration"`
	Intensity      string  `json:"intensity"`
	CustomType     string  `json:"custom_type"`
	ConversationID *int    `json:"conversation_id"`
}

var validIntensities = map[string]string{
	"low":      "低強度",
	"moderate": "中強度",
	"high":     "高強度",
}

// recordExercise records an exercise session, deriving calories burned from
// the MET table and the user's weight. Optionally appends a record of the
// exchange to a conversation.
// POST /api/exercise/record.
func (h *Handler) recordExercise(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body recordExerciseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	exerciseType := body.ExerciseType
	if body.CustomType != "" {
		exerciseType = body.CustomType
	}
	if exerciseType == "" {
		apiError(c, http.StatusBadRequest, "exercise_type is required")
		return
	}
	if body.Duration <= 0 {
		apiError(c, http.StatusBadRequest, "運動時間必須大於0")
		return
	}
	if body.Duration > 600 {
		apiError(c, http.StatusBadRequest, "運動時間不能超過600分鐘")
		return
	}
	intensityText, ok := validIntensities[body.Intensity]
	if !ok {
		apiError(c, http.StatusBadRequest, "強度必須是 low, moderate, 或 high")
		return
	}

	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID", pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	if u.WeightKG == nil {
		apiError(c, http.StatusBadRequest, "請先在設定頁面設定體重，才能計算卡路里消耗")
		return
	}

	caloriesBurned := calculateCaloriesBurned(exerciseType, body.Duration, body.Intensity, *u.WeightKG)

	entry := &exerciseLog{
		Date:           DateOnly{time.Now()},
		ExerciseType:   exerciseType,
		Duration:       body.Duration,
		CaloriesBurned: caloriesBurned,
	}
	if err := h.saveExerciseLog(c, userID, entry); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save exercise log")
		return
	}

	conversationID := h.appendExerciseMessages(c, userID, body.ConversationID, exerciseType, body.Duration, intensityText, caloriesBurned)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "運動記錄已保存！",
		"exercise_type":   exerciseType,
		"duration":        body.Duration,
		"calories_burned": caloriesBurned,
		"conversation_id": conversationID,
	})
}

// appendExerciseMessages writes the user/assistant message pair describing
// the recorded exercise into the given conversation, creating one when the
// id is stale. Returns the conversation id used, or nil when none was
// requested.
func (h *Handler) appendExerciseMessages(c *gin.Context, userID int, convID *int, exerciseType string, duration float64, intensityText string, caloriesBurned float64) *int {
	if convID == nil {
		return nil
	}

	conv, err := queryOne[conversation](h.db, c,
		"SELECT * FROM conversations WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": *convID, "userID": userID})
	if err != nil {
		conv, err = queryOne[conversation](h.db, c,
			"INSERT INTO conversations (user_id) VALUES (@userID) RETURNING *",
			pgx.NamedArgs{"userID": userID})
		if err != nil {
			return nil
		}
	}

	userContent := formatExerciseUserMessage(exerciseType, duration, intensityText)
	assistantContent := formatExerciseAssistantMessage(exerciseType, duration, intensityText, caloriesBurned)

	h.db.Exec(c,
		"INSERT INTO messages (conversation_id, role, content) VALUES (@convID, 'user', @content)",
		pgx.NamedArgs{"convID": conv.ID, "content": userContent})
	h.db.Exec(c,
		"INSERT INTO messages (conversation_id, role, content) VALUES (@convID, 'assistant', @content)",
		pgx.NamedArgs{"convID": conv.ID, "content": assistantContent})

	return &conv.ID
}

func formatExerciseUserMessage(exerciseType string, duration float64, intensityText string) string {
	return fmt.Sprintf("記錄運動：%s，%g 分鐘，%s", exerciseType, duration, intensityText)
}

func formatExerciseAssistantMessage(exerciseType string, duration float64, intensityText string, caloriesBurned float64) string {
	return fmt.Sprintf("✅ 運動記錄已保存！\n\n**運動項目**：%s\n**時長**：%g 分鐘\n**強度**：%s\n**消耗卡路里**：%g kcal",
		exerciseType, duration, intensityText, caloriesBurned)
}

// getExerciseTypes lists the known exercise types.
// GET /api/exercise/types.
func (h *Handler) getExerciseTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"exercise_types": exerciseTypeOrder,
		"default":        "壁球",
	})
}
