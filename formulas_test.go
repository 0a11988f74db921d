package main

import (
	"math"
	"testing"
)

/* ─── BMR tests ──────────────────────────────────────────────────────── */

// TestCalculateBMR_Male verifies the male Mifflin-St Jeor constant (+5).
// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75.
func TestCalculateBMR_Male(t *testing.T) {
	got := calculateBMR("male", 70, 175, 30)
	if got != 1648.75 {
		t.Errorf("calculateBMR(male, 70, 175, 30) = %v, want 1648.75", got)
	}
}

// TestCalculateBMR_Female verifies the female constant (-161); same inputs
// as the male case shift the result by exactly 166.
func TestCalculateBMR_Female(t *testing.T) {
	got := calculateBMR("female", 70, 175, 30)
	if got != 1482.75 {
		t.Errorf("calculateBMR(female, 70, 175, 30) = %v, want 1482.75", got)
	}
}

/* ─── TDEE tests ─────────────────────────────────────────────────────── */

// TestCalculateTDEE_Multipliers verifies each activity multiplier, plus the
// sedentary fallback for unknown levels.
func TestCalculateTDEE_Multipliers(t *testing.T) {
	cases := []struct {
		level string
		want  float64
	}{
		{"sedentary", 1200},
		{"light", 1375},
		{"moderate", 1550},
		{"very_active", 1725},
		{"couch_potato", 1200}, // unknown level falls back to 1.2
	}
	for _, tc := range cases {
		if got := calculateTDEE(1000, tc.level); got != tc.want {
			t.Errorf("calculateTDEE(1000, %q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

/* ─── Macro recommendation tests ─────────────────────────────────────── */

// TestRecommendMacros_MaintainSedentary verifies every macro for the
// maintain/sedentary profile at 70kg and TDEE 2008.5:
// protein 70*1.1=77.0, carbs 2008.5*0.525/4=263.6,
// fat max(2008.5*0.275/9, 70*0.8)=max(61.37, 56.0)=61.4,
// vegetables max(400, 2008.5/2000*400)=401.7.
func TestRecommendMacros_MaintainSedentary(t *testing.T) {
	got := recommendMacros(70, 2008.5, "maintain", "sedentary")

	if got.ProteinG != 77.0 {
		t.Errorf("protein_g = %v, want 77.0", got.ProteinG)
	}
	if got.CarbsG != 263.6 {
		t.Errorf("carbs_g = %v, want 263.6", got.CarbsG)
	}
	if got.FatG != 61.4 {
		t.Errorf("fat_g = %v, want 61.4", got.FatG)
	}
	if got.VegetablesG != 401.7 {
		t.Errorf("vegetables_g = %v, want 401.7", got.VegetablesG)
	}
}

// TestRecommendMacros_GainMuscleVeryActive verifies the muscle-gain protein
// rate and the very_active carb rate: protein 80*1.9=152.0, carbs 80*8=640.0.
func TestRecommendMacros_GainMuscleVeryActive(t *testing.T) {
	got := recommendMacros(80, 3000, "gain_muscle", "very_active")

	if got.ProteinG != 152.0 {
		t.Errorf("protein_g = %v, want 152.0", got.ProteinG)
	}
	if got.CarbsG != 640.0 {
		t.Errorf("carbs_g = %v, want 640.0", got.CarbsG)
	}
	// fat: max(3000*0.275/9, 80*0.8) = max(91.67, 64.0) = 91.7
	if got.FatG != 91.7 {
		t.Errorf("fat_g = %v, want 91.7", got.FatG)
	}
	// vegetables: max(400, 3000/2000*400) = 600
	if got.VegetablesG != 600.0 {
		t.Errorf("vegetables_g = %v, want 600.0", got.VegetablesG)
	}
}

// TestRecommendMacros_GainMuscleModerate verifies that gain_muscle without
// very_active uses the 6 g/kg carb rate.
func TestRecommendMacros_GainMuscleModerate(t *testing.T) {
	got := recommendMacros(70, 2500, "gain_muscle", "moderate")
	if got.CarbsG != 420.0 {
		t.Errorf("carbs_g = %v, want 420.0", got.CarbsG)
	}
}

// TestRecommendMacros_Floors verifies the fat and vegetable floors with a
// low TDEE: fat floors at 0.8 g/kg and vegetables at 400 g.
func TestRecommendMacros_Floors(t *testing.T) {
	got := recommendMacros(90, 1500, "maintain", "sedentary")

	// fat: max(1500*0.275/9=45.83, 90*0.8=72.0) = 72.0
	if got.FatG != 72.0 {
		t.Errorf("fat_g = %v, want floor 72.0", got.FatG)
	}
	// vegetables: max(400, 1500/2000*400=300) = 400
	if got.VegetablesG != 400.0 {
		t.Errorf("vegetables_g = %v, want floor 400.0", got.VegetablesG)
	}
}

/* ─── Rounding helpers ───────────────────────────────────────────────── */

func TestRoundHelpers(t *testing.T) {
	if got := round1(61.37); got != 61.4 {
		t.Errorf("round1(61.37) = %v, want 61.4", got)
	}
	if got := round2(math.Pi); got != 3.14 {
		t.Errorf("round2(pi) = %v, want 3.14", got)
	}
}
