package main

import "testing"

// TestParseImageAnalysis_LabelPreferred verifies nutrition-label numbers win
// over visual estimates when the model reports a label.
func TestParseImageAnalysis_LabelPreferred(t *testing.T) {
	reply := `{
		"has_nutrition_label": true,
		"food_name": "洋芋片",
		"serving_size": "一包",
		"calories": 300,
		"protein": 3,
		"carbs": 30,
		"fat": 18,
		"nutrition_label_data": {
			"serving_size": "每份 30g",
			"calories": 160,
			"protein": 2,
			"carbs": 15,
			"fat": 10
		},
		"estimated": false
	}`
	got := parseImageAnalysis(reply)

	if !got.HasNutritionLabel || got.Estimated {
		t.Errorf("flags = label:%v estimated:%v, want label:true estimated:false",
			got.HasNutritionLabel, got.Estimated)
	}
	if got.Calories != 160 || got.Fat != 10 {
		t.Errorf("expected label numbers, got %+v", got)
	}
	if got.ServingSize != "每份 30g" {
		t.Errorf("serving_size = %q, want label serving size", got.ServingSize)
	}
}

// TestParseImageAnalysis_Estimate verifies the visual-estimate path when no
// label was detected.
func TestParseImageAnalysis_Estimate(t *testing.T) {
	reply := `{"has_nutrition_label": false, "food_name": "雞腿飯", "serving_size": "一份", "calories": 650, "protein": 35, "carbs": 70, "fat": 20, "estimated": true}`
	got := parseImageAnalysis(reply)

	if got.FoodName != "雞腿飯" || got.Calories != 650 {
		t.Errorf("unexpected analysis: %+v", got)
	}
	if !got.Estimated || got.HasNutritionLabel {
		t.Errorf("flags = label:%v estimated:%v, want label:false estimated:true",
			got.HasNutritionLabel, got.Estimated)
	}
}

// TestParseImageAnalysis_Malformed verifies off-schema replies fall back to
// an unknown-food estimate instead of failing.
func TestParseImageAnalysis_Malformed(t *testing.T) {
	got := parseImageAnalysis("這不是有效的 JSON")

	if got.FoodName != "未知食物" {
		t.Errorf("food_name = %q, want 未知食物", got.FoodName)
	}
	if !got.Estimated {
		t.Error("expected estimated=true fallback")
	}
}

// TestParseImageAnalysis_NegativesClamped verifies negative numbers from the
// model are clamped to zero.
func TestParseImageAnalysis_NegativesClamped(t *testing.T) {
	reply := `{"has_nutrition_label": false, "food_name": "沙拉", "calories": -100, "protein": -2, "carbs": 5, "fat": 0, "estimated": true}`
	got := parseImageAnalysis(reply)

	if got.Calories != 0 || got.Protein != 0 {
		t.Errorf("expected clamped numbers, got %+v", got)
	}
	if got.Carbs != 5 {
		t.Errorf("carbs = %v, want 5 untouched", got.Carbs)
	}
}
