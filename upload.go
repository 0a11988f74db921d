package main

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxImageSize caps uploaded food photos at 10 MB.
const maxImageSize = 10 << 20

// uploadImage accepts a food photo, runs vision analysis, and saves the
// result as a diet log entry under the given meal type.
// POST /api/upload/image (multipart: file, meal_type).
func (h *Handler) uploadImage(c *gin.Context) {
	userID := c.GetInt("user_id")

	mealType := c.DefaultPostForm("meal_type", mealSnack)
	if !validMealTypes[mealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apiError(c, http.StatusBadRequest, "file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		apiError(c, http.StatusBadRequest, "文件必須是圖片格式")
		return
	}
	if fileHeader.Size > maxImageSize {
		apiError(c, http.StatusBadRequest, "image too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to read image")
		return
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to read image")
		return
	}

	analysis, err := h.agent.analyzeFoodImage(c.Request.Context(), imageData, contentType)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "圖片分析失敗",
			"error":   err.Error(),
		})
		return
	}

	entry := &dietLog{
		Date:     DateOnly{time.Now()},
		MealType: mealType,
		FoodName: analysis.FoodName,
		Calories: analysis.Calories,
		Protein:  analysis.Protein,
		Carbs:    analysis.Carbs,
		Fat:      analysis.Fat,
	}
	if err := h.saveDietLog(c, userID, entry); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save diet log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "圖片分析完成並已保存",
		"data": gin.H{
			"food_name":           analysis.FoodName,
			"serving_size":        analysis.ServingSize,
			"calories":            analysis.Calories,
			"protein":             analysis.Protein,
			"carbs":               analysis.Carbs,
			"fat":                 analysis.Fat,
			"has_nutrition_label": analysis.HasNutritionLabel,
			"estimated":           analysis.Estimated,
			"meal_type":           mealType,
		},
	})
}
