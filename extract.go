package main

import (
	"encoding/json"
	"regexp"
	"time"
)

/* ─── Raw extraction ─────────────────────────────────────────────────── */

// rawExtraction is the LLM's candidate extraction for one user message.
// Ephemeral — it is reconciled into dietLog/exerciseLog rows, never stored.
type rawExtraction struct {
	Diet     rawDiet     `json:"diet"`
	Exercise rawExercise `json:"exercise"`
}

type rawDiet struct {
	HasDiet  bool    `json:"has_diet"`
	MealType string  `json:"meal_type"`
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type rawExercise struct {
	HasExercise    bool    `json:"has_exercise"`
	ExerciseType   string  `json:"exercise_type"`
	Duration       float64 `json:"duration"`
	CaloriesBurned float64 `json:"calories_burned"`
}

// jsonBlobRE finds the outermost {...} blob in an LLM reply, tolerating
// prose or markdown fences around it.
var jsonBlobRE = regexp.MustCompile(`(?s)\{.*\}`)

// parseExtraction pulls the JSON blob out of a raw LLM reply and decodes it.
// Off-schema output (missing blob, wrong types) degrades to an empty
// extraction with both has-flags false — the user never sees a parse error.
func parseExtraction(reply string) rawExtraction {
	blob := jsonBlobRE.FindString(reply)
	if blob == "" {
		return rawExtraction{}
	}
	var raw rawExtraction
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return rawExtraction{}
	}
	return raw
}

/* ─── Reconciliation ─────────────────────────────────────────────────── */

// reconcileExtraction turns a raw extraction into persistable entries.
// The diet meal type is corrected by the classifier over food name plus the
// original message; numeric fields are clamped to ≥0 in case the model
// hallucinated negatives. Exercise needs no correction. Returned entries
// carry Date and the numeric fields; UserID is the caller's to fill.
func reconcileExtraction(raw rawExtraction, originalMessage string, now time.Time) (*dietLog, *exerciseLog) {
	var diet *dietLog
	var exercise *exerciseLog

	if raw.Diet.HasDiet {
		fallback := raw.Diet.MealType
		if !validMealTypes[fallback] {
			fallback = mealSnack
		}
		diet = &dietLog{
			Date:     DateOnly{now},
			MealType: correctMealType(raw.Diet.FoodName, fallback, originalMessage, now),
			FoodName: raw.Diet.FoodName,
			Calories: clampNonNegative(raw.Diet.Calories),
			Protein:  clampNonNegative(raw.Diet.Protein),
			Carbs:    clampNonNegative(raw.Diet.Carbs),
			Fat:      clampNonNegative(raw.Diet.Fat),
		}
	}

	if raw.Exercise.HasExercise {
		exercise = &exerciseLog{
			Date:           DateOnly{now},
			ExerciseType:   raw.Exercise.ExerciseType,
			Duration:       clampNonNegative(raw.Exercise.Duration),
			CaloriesBurned: clampNonNegative(raw.Exercise.CaloriesBurned),
		}
	}

	return diet, exercise
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
