package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// chatRequest is the request body for POST /api/chat and /api/chat/stream.
type chatRequest struct {
	Message        string `json:"message"`
	ConversationID *int   `json:"conversation_id"`
}

// chatResponse is the response for POST /api/chat.
type chatResponse struct {
	Response       string `json:"response"`
	ConversationID int    `json:"conversation_id"`
}

// conversationListItem is one row of GET /api/chat/conversations.
type conversationListItem struct {
	ID      int        `json:"id"`
	Date    *time.Time `json:"date"`
	Preview string     `json:"preview"`
}

// conversationDetail is the response for GET /api/chat/conversations/:id.
type conversationDetail struct {
	ID       int        `json:"id"`
	Date     *time.Time `json:"date"`
	Messages []message  `json:"messages"`
}

/* ─── Pipeline ───────────────────────────────────────────────────────── */

// runChatPipeline executes the shared chat flow: resolve the conversation,
// persist the user message, generate the assistant reply, extract and
// reconcile diet/exercise data, persist everything. Returns the reply text
// and conversation id, or a non-nil error only for request-level problems
// (missing conversation, DB failure) — LLM failures degrade inside.
func (h *Handler) runChatPipeline(c *gin.Context, req chatRequest) (string, int, bool) {
	userID := c.GetInt("user_id")

	var conv conversation
	var err error
	if req.ConversationID != nil {
		conv, err = queryOne[conversation](h.db, c,
			"SELECT * FROM conversations WHERE id = @id AND user_id = @userID",
			pgx.NamedArgs{"id": *req.ConversationID, "userID": userID})
		if err != nil {
			apiError(c, http.StatusNotFound, "conversation not found")
			return "", 0, false
		}
	} else {
		conv, err = queryOne[conversation](h.db, c,
			"INSERT INTO conversations (user_id) VALUES (@userID) RETURNING *",
			pgx.NamedArgs{"userID": userID})
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to create conversation")
			return "", 0, false
		}
	}

	// History is loaded before the new user message is inserted, so it plays
	// the role of prior context.
	history, err := queryMany[message](h.db, c,
		"SELECT * FROM messages WHERE conversation_id = @convID ORDER BY created_at",
		pgx.NamedArgs{"convID": conv.ID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load conversation history")
		return "", 0, false
	}

	if _, err := h.db.Exec(c,
		"INSERT INTO messages (conversation_id, role, content) VALUES (@convID, 'user', @content)",
		pgx.NamedArgs{"convID": conv.ID, "content": req.Message}); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save message")
		return "", 0, false
	}

	now := time.Now()
	reply := h.agent.chatReply(c.Request.Context(), history, req.Message)
	extraction := h.agent.extract(c.Request.Context(), req.Message)
	diet, exercise := reconcileExtraction(extraction, req.Message, now)

	if diet != nil {
		if err := h.saveDietLog(c, userID, diet); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("failed to save extracted diet log")
		}
	}
	if exercise != nil {
		if err := h.saveExerciseLog(c, userID, exercise); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("failed to save extracted exercise log")
		}
	}

	if _, err := h.db.Exec(c,
		"INSERT INTO messages (conversation_id, role, content) VALUES (@convID, 'assistant', @content)",
		pgx.NamedArgs{"convID": conv.ID, "content": reply}); err != nil {
		log.Error().Err(err).Msg("failed to save assistant message")
	}

	return reply, conv.ID, true
}

// saveDietLog persists a reconciled diet entry and invalidates the user's
// today-stats cache.
func (h *Handler) saveDietLog(c *gin.Context, userID int, entry *dietLog) error {
	_, err := h.db.Exec(c,
		`INSERT INTO diet_logs (user_id, date, meal_type, food_name, calories, protein, carbs, fat, vegetables)
		 VALUES (@userID, @date, @mealType, @foodName, @calories, @protein, @carbs, @fat, @vegetables)`,
		pgx.NamedArgs{
			"userID": userID, "date": entry.Date.Format("2006-01-02"),
			"mealType": entry.MealType, "foodName": entry.FoodName,
			"calories": entry.Calories, "protein": entry.Protein,
			"carbs": entry.Carbs, "fat": entry.Fat, "vegetables": entry.Vegetables,
		})
	if err == nil {
		h.cache.invalidate(c, statsCacheKey(userID, entry.Date.Format("2006-01-02")))
	}
	return err
}

// saveExerciseLog persists a reconciled exercise entry and invalidates the
// user's today-stats cache.
func (h *Handler) saveExerciseLog(c *gin.Context, userID int, entry *exerciseLog) error {
	_, err := h.db.Exec(c,
		`INSERT INTO exercise_logs (user_id, date, exercise_type, duration, calories_burned)
		 VALUES (@userID, @date, @exerciseType, @duration, @caloriesBurned)`,
		pgx.NamedArgs{
			"userID": userID, "date": entry.Date.Format("2006-01-02"),
			"exerciseType": entry.ExerciseType, "duration": entry.Duration,
			"caloriesBurned": entry.CaloriesBurned,
		})
	if err == nil {
		h.cache.invalidate(c, statsCacheKey(userID, entry.Date.Format("2006-01-02")))
	}
	return err
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// chat processes one user message through the assistant pipeline.
// POST /api/chat.
func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, convID, ok := h.runChatPipeline(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chatResponse{Response: reply, ConversationID: convID})
}

// chatStream runs the same pipeline but streams the reply as SSE chunks.
// All persistence happens before the first byte is written.
// POST /api/chat/stream.
func (h *Handler) chatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, convID, ok := h.runChatPipeline(c, req)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("", gin.H{"conversation_id": convID})
	// Chunk on runes so multi-byte characters are never split.
	runes := []rune(reply)
	const chunkSize = 10
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		c.SSEvent("", gin.H{"content": string(runes[i:end])})
	}
	c.SSEvent("", "[DONE]")
	c.Writer.Flush()
}

// getConversations lists the user's 50 most recent conversations with a
// first-message preview.
// GET /api/chat/conversations.
func (h *Handler) getConversations(c *gin.Context) {
	userID := c.GetInt("user_id")

	convs, err := queryMany[conversation](h.db, c,
		`SELECT * FROM conversations WHERE user_id = @userID
		 ORDER BY created_at DESC LIMIT 50`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch conversations")
		return
	}

	result := make([]conversationListItem, 0, len(convs))
	for _, conv := range convs {
		first, err := queryOne[message](h.db, c,
			`SELECT * FROM messages WHERE conversation_id = @convID
			 ORDER BY created_at LIMIT 1`,
			pgx.NamedArgs{"convID": conv.ID})
		preview := ""
		if err == nil {
			preview = first.Content
			if runes := []rune(preview); len(runes) > 50 {
				preview = string(runes[:50]) + "..."
			}
		}
		result = append(result, conversationListItem{ID: conv.ID, Date: conv.CreatedAt, Preview: preview})
	}

	c.JSON(http.StatusOK, result)
}

// getConversation returns one conversation with all its messages.
// GET /api/chat/conversations/:id.
func (h *Handler) getConversation(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	conv, err := queryOne[conversation](h.db, c,
		"SELECT * FROM conversations WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "conversation not found")
		return
	}

	msgs, err := queryMany[message](h.db, c,
		"SELECT * FROM messages WHERE conversation_id = @convID ORDER BY created_at",
		pgx.NamedArgs{"convID": conv.ID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch messages")
		return
	}
	if msgs == nil {
		msgs = []message{}
	}

	c.JSON(http.StatusOK, conversationDetail{ID: conv.ID, Date: conv.CreatedAt, Messages: msgs})
}
