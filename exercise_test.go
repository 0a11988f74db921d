package main

import "testing"

// TestCalculateCaloriesBurned_KnownTypes verifies the MET formula
// (MET × weight × hours) for types in the table.
func TestCalculateCaloriesBurned_KnownTypes(t *testing.T) {
	cases := []struct {
		name         string
		exerciseType string
		duration     float64
		intensity    string
		weightKG     float64
		want         float64
	}{
		{"squash moderate hour", "壁球", 60, "moderate", 70, 700},    // 10 * 70 * 1
		{"running high half hour", "跑步", 30, "high", 80, 480},      // 12 * 80 * 0.5
		{"walking low", "健走", 90, "low", 60, 315},                  // 3.5 * 60 * 1.5
		{"badminton moderate", "羽毛球", 45, "moderate", 65, 268.13}, // 5.5 * 65 * 0.75
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateCaloriesBurned(tc.exerciseType, tc.duration, tc.intensity, tc.weightKG)
			if got != tc.want {
				t.Errorf("calculateCaloriesBurned(%s, %v, %s, %v) = %v, want %v",
					tc.exerciseType, tc.duration, tc.intensity, tc.weightKG, got, tc.want)
			}
		})
	}
}

// TestCalculateCaloriesBurned_UnknownType verifies an unlisted exercise type
// falls back to the default MET values.
func TestCalculateCaloriesBurned_UnknownType(t *testing.T) {
	got := calculateCaloriesBurned("瑜伽", 60, "moderate", 70)
	if got != 420 { // default moderate MET 6 * 70 * 1
		t.Errorf("unknown type = %v, want 420", got)
	}
}

// TestCalculateCaloriesBurned_UnknownIntensity verifies an unrecognised
// intensity falls back to a MET of 6.
func TestCalculateCaloriesBurned_UnknownIntensity(t *testing.T) {
	got := calculateCaloriesBurned("壁球", 60, "extreme", 70)
	if got != 420 {
		t.Errorf("unknown intensity = %v, want 420", got)
	}
}

// TestCalculateCaloriesBurned_ZeroDuration verifies zero minutes burns zero.
func TestCalculateCaloriesBurned_ZeroDuration(t *testing.T) {
	if got := calculateCaloriesBurned("跑步", 0, "high", 80); got != 0 {
		t.Errorf("zero duration = %v, want 0", got)
	}
}
