package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

/* ─── Food image analysis ────────────────────────────────────────────── */

const imageAnalysisPrompt = `請分析這張圖片。如果這是食物圖片：

1. 首先檢查圖片中是否包含營養成分表（Nutrition Facts / 營養成分表）
2. 如果包含營養成分表，請提取每份份量、卡路里、蛋白質、碳水化合物、脂肪
3. 如果沒有營養成分表，請根據圖片中的食物推估食物名稱、份量、卡路里、蛋白質、碳水化合物、脂肪

請以JSON格式返回，格式如下：
{
    "has_nutrition_label": true/false,
    "food_name": "食物名稱",
    "serving_size": "份量描述",
    "calories": 數字,
    "protein": 數字,
    "carbs": 數字,
    "fat": 數字,
    "nutrition_label_data": {
        "serving_size": "如果有營養成分表",
        "calories": 數字,
        "protein": 數字,
        "carbs": 數字,
        "fat": 數字
    },
    "estimated": true/false
}

只返回JSON，不要其他文字。`

// imageAnalysis is the normalized result of a food-photo analysis. When a
// nutrition label was present in the photo, numbers come from the label
// rather than visual estimation.
type imageAnalysis struct {
	FoodName          string  `json:"food_name"`
	ServingSize       string  `json:"serving_size"`
	Calories          float64 `json:"calories"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fat               float64 `json:"fat"`
	HasNutritionLabel bool    `json:"has_nutrition_label"`
	Estimated         bool    `json:"estimated"`
}

// rawImageResult mirrors the JSON the vision model is asked to produce.
type rawImageResult struct {
	HasNutritionLabel bool           `json:"has_nutrition_label"`
	FoodName          string         `json:"food_name"`
	ServingSize       string         `json:"serving_size"`
	Calories          float64        `json:"calories"`
	Protein           float64        `json:"protein"`
	Carbs             float64        `json:"carbs"`
	Fat               float64        `json:"fat"`
	NutritionLabel    *rawImageLabel `json:"nutrition_label_data"`
	Estimated         bool           `json:"estimated"`
}

type rawImageLabel struct {
	ServingSize string  `json:"serving_size"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

// analyzeFoodImage sends the photo to the vision model as a base64 data URL
// and normalizes the reply. Transport errors are returned; off-schema
// output falls back to an unknown-food estimate rather than failing.
func (a *agent) analyzeFoodImage(ctx context.Context, imageData []byte, mimeType string) (imageAnalysis, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	reply, err := a.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: imageAnalysisPrompt},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto},
				},
			},
		},
	})
	if err != nil {
		return imageAnalysis{}, err
	}
	return parseImageAnalysis(reply), nil
}

// parseImageAnalysis decodes the vision reply, preferring nutrition-label
// numbers over visual estimates when a label was detected.
func parseImageAnalysis(reply string) imageAnalysis {
	blob := jsonBlobRE.FindString(reply)
	var raw rawImageResult
	if blob == "" || json.Unmarshal([]byte(blob), &raw) != nil {
		return imageAnalysis{FoodName: "未知食物", ServingSize: "未知", Estimated: true}
	}

	foodName := raw.FoodName
	if foodName == "" {
		foodName = "未知食物"
	}

	if raw.HasNutritionLabel && raw.NutritionLabel != nil {
		label := raw.NutritionLabel
		servingSize := label.ServingSize
		if servingSize == "" {
			servingSize = raw.ServingSize
		}
		return imageAnalysis{
			FoodName:          foodName,
			ServingSize:       servingSize,
			Calories:          clampNonNegative(label.Calories),
			Protein:           clampNonNegative(label.Protein),
			Carbs:             clampNonNegative(label.Carbs),
			Fat:               clampNonNegative(label.Fat),
			HasNutritionLabel: true,
			Estimated:         false,
		}
	}
	return imageAnalysis{
		FoodName:    foodName,
		ServingSize: raw.ServingSize,
		Calories:    clampNonNegative(raw.Calories),
		Protein:     clampNonNegative(raw.Protein),
		Carbs:       clampNonNegative(raw.Carbs),
		Fat:         clampNonNegative(raw.Fat),
		Estimated:   true,
	}
}
