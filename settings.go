package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// settingsUpdateRequest is the body for PUT /api/settings. All fields are
// pointers; only non-nil fields get written.
type settingsUpdateRequest struct {
	Gender        *string  `json:"gender"`
	HeightCM      *float64 `json:"height_cm"`
	WeightKG      *float64 `json:"weight_kg"`
	Age           *int     `json:"age"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
}

// settingsResponse is the body profile plus computed nutrition numbers.
// BMR/TDEE/Recommendation stay nil until the profile is complete enough —
// the client renders partial settings without error.
type settingsResponse struct {
	Gender         *string       `json:"gender"`
	HeightCM       *float64      `json:"height_cm"`
	WeightKG       *float64      `json:"weight_kg"`
	Age            *int          `json:"age"`
	ActivityLevel  *string       `json:"activity_level"`
	Goal           *string       `json:"goal"`
	BMR            *float64      `json:"bmr"`
	TDEE           *float64      `json:"tdee"`
	Recommendation *macroTargets `json:"recommendation,omitempty"`
}

// buildSettingsResponse computes BMR (needs gender/weight/height/age), then
// TDEE (additionally needs activity level), then the macro recommendation
// (additionally needs goal). Each stage is skipped when its inputs are
// missing — an incomplete profile yields absent values, not errors.
func buildSettingsResponse(u user) settingsResponse {
	resp := settingsResponse{
		Gender:        u.Gender,
		HeightCM:      u.HeightCM,
		WeightKG:      u.WeightKG,
		Age:           u.Age,
		ActivityLevel: u.ActivityLevel,
		Goal:          u.Goal,
	}

	if u.Gender == nil || u.WeightKG == nil || u.HeightCM == nil || u.Age == nil {
		return resp
	}
	bmr := calculateBMR(*u.Gender, *u.WeightKG, *u.HeightCM, *u.Age)
	rounded := round2(bmr)
	resp.BMR = &rounded

	if u.ActivityLevel == nil {
		return resp
	}
	tdee := calculateTDEE(bmr, *u.ActivityLevel)
	roundedTDEE := round2(tdee)
	resp.TDEE = &roundedTDEE

	goal := goalMaintain
	if u.Goal != nil {
		goal = *u.Goal
	}
	rec := recommendMacros(*u.WeightKG, tdee, goal, *u.ActivityLevel)
	resp.Recommendation = &rec
	return resp
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// getSettings returns the user's body profile with computed BMR, TDEE, and
// macro recommendation.
// GET /api/settings.
func (h *Handler) getSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, buildSettingsResponse(u))
}

// updateSettings updates only the provided profile fields. Non-positive
// height/weight/age and unknown enum values are rejected here, before any
// formula sees them.
// PUT /api/settings.
func (h *Handler) updateSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body settingsUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Gender != nil && !validGenders[*body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be male or female")
		return
	}
	if body.HeightCM != nil && *body.HeightCM <= 0 {
		apiError(c, http.StatusBadRequest, "height must be positive")
		return
	}
	if body.WeightKG != nil && *body.WeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "weight must be positive")
		return
	}
	if body.Age != nil && *body.Age <= 0 {
		apiError(c, http.StatusBadRequest, "age must be positive")
		return
	}
	if body.ActivityLevel != nil {
		if _, ok := activityMultipliers[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, very_active")
			return
		}
	}
	if body.Goal != nil && !validGoals[*body.Goal] {
		apiError(c, http.StatusBadRequest, "goal must be maintain or gain_muscle")
		return
	}

	// Build SET clause dynamically; only update fields the client sent.
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightKG != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.WeightKG
	}
	if body.Age != nil {
		setClauses = append(setClauses, "age = @age")
		args["age"] = *body.Age
	}
	if body.ActivityLevel != nil {
		setClauses = append(setClauses, "activity_level = @activityLevel")
		args["activityLevel"] = *body.ActivityLevel
	}
	if body.Goal != nil {
		setClauses = append(setClauses, "goal = @goal")
		args["goal"] = *body.Goal
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @userID RETURNING *"

	u, err := queryOne[user](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	c.JSON(http.StatusOK, buildSettingsResponse(u))
}
