package main

import "fmt"

/* ─── Daily aggregate ────────────────────────────────────────────────── */

// mealBucketItem is one food entry inside a meal bucket.
type mealBucketItem struct {
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
}

// mealBucket groups a day's diet entries of one meal type.
type mealBucket struct {
	MealType string           `json:"meal_type"`
	Calories float64          `json:"calories"`
	Items    []mealBucketItem `json:"items"`
}

// dailyAggregate is derived on demand from diet/exercise rows for a date.
// Never stored as primary data.
type dailyAggregate struct {
	CaloriesIn    float64      `json:"calories_in"`
	CaloriesOut   float64      `json:"calories_out"`
	Protein       float64      `json:"protein"`
	Carbs         float64      `json:"carbs"`
	Fat           float64      `json:"fat"`
	ExerciseCount int          `json:"exercise_count"`
	TotalDuration float64      `json:"total_duration"`
	Meals         []mealBucket `json:"meals"`
}

// mealBucketOrder fixes the breakdown ordering in responses.
var mealBucketOrder = []string{mealBreakfast, mealLunch, mealDinner, mealSnack}

// aggregateDay folds a day's diet and exercise entries into a
// dailyAggregate. Meal buckets with no entries are omitted. Empty inputs
// yield all-zero sums and no buckets. Pure — calling it twice on the same
// slices yields identical output.
func aggregateDay(diet []dietLog, exercise []exerciseLog) dailyAggregate {
	agg := dailyAggregate{}

	buckets := make(map[string]*mealBucket, len(mealBucketOrder))
	for _, entry := range diet {
		agg.CaloriesIn += entry.Calories
		agg.Protein += entry.Protein
		agg.Carbs += entry.Carbs
		agg.Fat += entry.Fat

		b, ok := buckets[entry.MealType]
		if !ok {
			b = &mealBucket{MealType: entry.MealType}
			buckets[entry.MealType] = b
		}
		b.Calories += entry.Calories
		b.Items = append(b.Items, mealBucketItem{FoodName: entry.FoodName, Calories: entry.Calories})
	}

	for _, entry := range exercise {
		agg.CaloriesOut += entry.CaloriesBurned
		agg.TotalDuration += entry.Duration
		agg.ExerciseCount++
	}

	for _, mt := range mealBucketOrder {
		if b, ok := buckets[mt]; ok {
			agg.Meals = append(agg.Meals, *b)
		}
	}
	return agg
}

/* ─── Report prompt ──────────────────────────────────────────────────── */

// buildReportPrompt shapes the day's numbers into the prompt handed to the
// report-text generator. The aggregator itself never calls the LLM.
func buildReportPrompt(date string, agg dailyAggregate) string {
	return fmt.Sprintf(`根據以下數據生成一份健康報告：

日期：%s

飲食記錄：
- 總攝入卡路里：%.0f kcal
- 蛋白質：%.0f g
- 碳水化合物：%.0f g
- 脂肪：%.0f g

運動記錄：
- 總消耗卡路里：%.0f kcal
- 運動次數：%d 次

請生成一份簡潔、專業的健康報告，包含：
1. 今日總結
2. 營養分析
3. 運動總結
4. 健康建議

請用繁體中文回答。`,
		date, agg.CaloriesIn, agg.Protein, agg.Carbs, agg.Fat,
		agg.CaloriesOut, agg.ExerciseCount)
}
