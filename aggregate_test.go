package main

import (
	"reflect"
	"strings"
	"testing"
)

func dietEntry(mealType, foodName string, calories, protein, carbs, fat float64) dietLog {
	return dietLog{MealType: mealType, FoodName: foodName, Calories: calories, Protein: protein, Carbs: carbs, Fat: fat}
}

/* ─── aggregateDay tests ─────────────────────────────────────────────── */

// TestAggregateDay_Empty verifies empty inputs produce all-zero sums and no
// meal buckets.
func TestAggregateDay_Empty(t *testing.T) {
	agg := aggregateDay(nil, nil)

	if agg.CaloriesIn != 0 || agg.CaloriesOut != 0 || agg.Protein != 0 ||
		agg.Carbs != 0 || agg.Fat != 0 || agg.ExerciseCount != 0 || agg.TotalDuration != 0 {
		t.Errorf("expected all-zero aggregate, got %+v", agg)
	}
	if len(agg.Meals) != 0 {
		t.Errorf("expected no meal buckets, got %d", len(agg.Meals))
	}
}

// TestAggregateDay_Totals verifies the macro sums across entries and the
// exercise totals.
func TestAggregateDay_Totals(t *testing.T) {
	diet := []dietLog{
		dietEntry("breakfast", "吐司", 300, 10, 40, 8),
		dietEntry("lunch", "雞腿飯", 650, 35, 70, 20),
		dietEntry("lunch", "紅茶", 80, 0, 20, 0),
	}
	exercise := []exerciseLog{
		{ExerciseType: "跑步", Duration: 30, CaloriesBurned: 300},
		{ExerciseType: "壁球", Duration: 45, CaloriesBurned: 520},
	}

	agg := aggregateDay(diet, exercise)

	if agg.CaloriesIn != 1030 {
		t.Errorf("calories_in = %v, want 1030", agg.CaloriesIn)
	}
	if agg.Protein != 45 || agg.Carbs != 130 || agg.Fat != 28 {
		t.Errorf("macros = %v/%v/%v, want 45/130/28", agg.Protein, agg.Carbs, agg.Fat)
	}
	if agg.CaloriesOut != 820 {
		t.Errorf("calories_out = %v, want 820", agg.CaloriesOut)
	}
	if agg.ExerciseCount != 2 || agg.TotalDuration != 75 {
		t.Errorf("exercise count/duration = %d/%v, want 2/75", agg.ExerciseCount, agg.TotalDuration)
	}
}

// TestAggregateDay_BucketOrderAndOmission verifies buckets appear in fixed
// breakfast/lunch/dinner/snack order with empty meal types omitted.
func TestAggregateDay_BucketOrderAndOmission(t *testing.T) {
	diet := []dietLog{
		dietEntry("snack", "餅乾", 150, 2, 20, 7),
		dietEntry("breakfast", "吐司", 300, 10, 40, 8),
		dietEntry("snack", "水果", 60, 1, 15, 0),
	}

	agg := aggregateDay(diet, nil)

	var order []string
	for _, b := range agg.Meals {
		order = append(order, b.MealType)
	}
	if !reflect.DeepEqual(order, []string{"breakfast", "snack"}) {
		t.Fatalf("bucket order = %v, want [breakfast snack]", order)
	}

	snack := agg.Meals[1]
	if snack.Calories != 210 {
		t.Errorf("snack bucket calories = %v, want 210", snack.Calories)
	}
	if len(snack.Items) != 2 {
		t.Errorf("snack bucket items = %d, want 2", len(snack.Items))
	}
}

// TestAggregateDay_Idempotent verifies the same inputs always produce the
// same aggregate.
func TestAggregateDay_Idempotent(t *testing.T) {
	diet := []dietLog{
		dietEntry("lunch", "便當", 700, 30, 80, 25),
		dietEntry("dinner", "牛肉麵", 600, 28, 65, 18),
	}
	exercise := []exerciseLog{{ExerciseType: "健走", Duration: 60, CaloriesBurned: 250}}

	first := aggregateDay(diet, exercise)
	second := aggregateDay(diet, exercise)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregate not deterministic:\n%+v\n%+v", first, second)
	}
}

/* ─── Report prompt tests ────────────────────────────────────────────── */

// TestBuildReportPrompt verifies the date and totals appear in the prompt
// with whole-number formatting.
func TestBuildReportPrompt(t *testing.T) {
	agg := dailyAggregate{
		CaloriesIn:    1030.4,
		CaloriesOut:   820,
		Protein:       45.2,
		Carbs:         130,
		Fat:           28,
		ExerciseCount: 2,
	}
	prompt := buildReportPrompt("2026-08-30", agg)

	for _, want := range []string{
		"2026-08-30",
		"總攝入卡路里：1030 kcal",
		"蛋白質：45 g",
		"總消耗卡路里：820 kcal",
		"運動次數：2 次",
		"繁體中文",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
