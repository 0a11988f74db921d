package main

import (
	"strings"
	"time"
)

/* ─── Meal types ─────────────────────────────────────────────────────── */

const (
	mealBreakfast = "breakfast"
	mealLunch     = "lunch"
	mealDinner    = "dinner"
	mealSnack     = "snack"
)

// validMealTypes is the set of allowed meal_type values. Reject unknown
// values with 400 rather than letting the DB return a cryptic 500.
var validMealTypes = map[string]bool{
	mealBreakfast: true,
	mealLunch:     true,
	mealDinner:    true,
	mealSnack:     true,
}

/* ─── Keyword rule table ─────────────────────────────────────────────── */

// Keyword sets for meal-type detection. Latin terms are lowercase; matching
// lowercases the input once, which leaves CJK terms untouched.
var (
	breakfastKeywords = []string{"早餐", "早上", "早飯", "morning", "breakfast", "早點", "晨間"}

	// Lunch terms include meal-container words (便當/飯盒/套餐) and
	// high-recall brand/dish terms that in practice mean a lunch set.
	lunchKeywords = []string{
		"午餐", "中午", "午飯", "lunch",
		"便當", "飯盒", "套餐", "午間", "午膳",
		"麥當勞", "雙主菜", "主菜", "排骨", "炸魚",
		"大麥克", "麥克鷄塊", "可樂", "steamed", "dumplings",
	}

	dinnerKeywords = []string{"晚餐", "晚上", "晚飯", "dinner", "晚間", "夜間", "晚膳"}

	snackKeywords = []string{"點心", "零食", "snack", "小食", "小點"}

	// Container/dish terms that skew lunch or dinner when the model tags an
	// entry "snack" but no explicit meal keyword is present.
	ambiguousLunchKeywords = []string{
		"便當", "飯盒", "套餐", "主菜", "排骨", "炸魚",
		"麥當勞", "雙主菜", "大麥克", "麥克鷄塊", "可樂",
		"steamed", "dumplings", "餃", "小籠包",
	}

	// Brand terms that force time-of-day inference even when the fallback is
	// not snack. Checked last, after the explicit sets fail.
	lunchBrandKeywords = []string{"便當", "套餐", "麥當勞"}
)

// mealRule is one entry of the ordered classification table. Rules are
// evaluated top to bottom; the first match wins. A rule with result == ""
// infers lunch vs dinner from the current hour. snackOnly rules apply only
// when the fallback meal type is snack.
type mealRule struct {
	keywords  []string
	result    string
	snackOnly bool
}

var mealRules = []mealRule{
	{keywords: breakfastKeywords, result: mealBreakfast},
	{keywords: lunchKeywords, result: mealLunch},
	{keywords: dinnerKeywords, result: mealDinner},
	{keywords: snackKeywords, result: mealSnack},
	{keywords: ambiguousLunchKeywords, snackOnly: true},
	{keywords: lunchBrandKeywords},
}

/* ─── Classifier ─────────────────────────────────────────────────────── */

// classifyMealType detects the meal type of a food description. It scans the
// ordered rule table and returns the first matching rule's meal type; rules
// without a fixed result pick lunch or dinner from the hour of now. When no
// rule matches, the fallback is returned unchanged. Never fails.
func classifyMealType(text, fallback string, now time.Time) string {
	lowered := strings.ToLower(text)
	for _, rule := range mealRules {
		if rule.snackOnly && fallback != mealSnack {
			continue
		}
		if !containsAny(lowered, rule.keywords) {
			continue
		}
		if rule.result != "" {
			return rule.result
		}
		return mealTypeForHour(now.Hour())
	}
	return fallback
}

// correctMealType corrects an extracted meal type using both the food name
// and the original user message. Used after LLM extraction and by the admin
// fix pass (with an empty message).
func correctMealType(foodName, mealType, userMessage string, now time.Time) string {
	return classifyMealType(foodName+" "+userMessage, mealType, now)
}

// mealTypeForHour maps an hour to lunch (11:00–14:59) or dinner
// (17:00–21:59). Outside both windows it defaults to lunch — container
// foods like boxed meals skew lunch.
func mealTypeForHour(hour int) string {
	switch {
	case hour >= 11 && hour < 15:
		return mealLunch
	case hour >= 17 && hour < 22:
		return mealDinner
	default:
		return mealLunch
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
