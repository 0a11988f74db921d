package main

import "math"

/* ─── Activity levels and goals ──────────────────────────────────────── */

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation in updateSettings.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"very_active": 1.725,
}

const (
	goalMaintain   = "maintain"
	goalGainMuscle = "gain_muscle"
)

var validGoals = map[string]bool{
	goalMaintain:   true,
	goalGainMuscle: true,
}

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
}

/* ─── Formulas ───────────────────────────────────────────────────────── */

// calculateBMR computes basal metabolic rate via Mifflin-St Jeor:
// 10*weight(kg) + 6.25*height(cm) - 5*age, +5 for male or -161 for female.
// Inputs are assumed validated (positive) by the caller.
func calculateBMR(gender string, weightKG, heightCM float64, ageYears int) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(ageYears)
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// calculateTDEE scales BMR by the activity multiplier. An unknown activity
// level falls back to the sedentary factor 1.2.
func calculateTDEE(bmr float64, activityLevel string) float64 {
	factor, ok := activityMultipliers[activityLevel]
	if !ok {
		factor = 1.2
	}
	return bmr * factor
}

// macroTargets holds the daily macro recommendation, all grams, rounded to
// one decimal place.
type macroTargets struct {
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	VegetablesG float64 `json:"vegetables_g"`
}

// recommendMacros derives daily macro targets from weight, TDEE, goal, and
// activity level. Goal shifts the protein/carbs split toward muscle-gain
// macros; activity raises carbs only when no gain_muscle goal overrides.
// Fat has a floor of 0.8 g/kg, vegetables a floor of 400 g.
func recommendMacros(weightKG, tdee float64, goal, activityLevel string) macroTargets {
	proteinPerKG := 1.1
	if goal == goalGainMuscle {
		proteinPerKG = 1.9
	}

	var carbs float64
	if goal == goalGainMuscle || activityLevel == "moderate" || activityLevel == "very_active" {
		if activityLevel == "very_active" {
			carbs = weightKG * 8.0
		} else {
			carbs = weightKG * 6.0
		}
	} else {
		carbs = (tdee * 0.525) / 4
	}

	fat := math.Max(tdee*0.275/9, weightKG*0.8)
	vegetables := math.Max(400.0, (tdee/2000.0)*400.0)

	return macroTargets{
		ProteinG:    round1(weightKG * proteinPerKG),
		CarbsG:      round1(carbs),
		FatG:        round1(fat),
		VegetablesG: round1(vegetables),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
