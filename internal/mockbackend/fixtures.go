package mockbackend

import (
	"fmt"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

const (
	chatFallbackReply = "💬 I can help with meal planning, calorie estimates, and workouts. Connect a real backend for full AI features."
	analysisNote      = "⚠️ Mock estimate only. Connect a real backend for AI analysis."
)

// DefaultMealPlan is the canned seven day plan served by the mock backend.
func DefaultMealPlan() coach.MealPlan {
	days := make([]coach.DayPlan, 0, 7)
	for d := 1; d <= 7; d++ {
		days = append(days, coach.DayPlan{
			Day:            fmt.Sprintf("Day %d", d),
			CaloriesTarget: 2000,
			Macros:         coach.Macros{ProteinG: 125, CarbsG: 225, FatG: 66},
			Meals: coach.Meals{
				Breakfast: "Oats with milk/soy + fruit",
				Lunch:     "Rice/Chapati + Protein + Salad",
				Snack:     "Yogurt/Buttermilk + Nuts",
				Dinner:    "Light protein + Vegetables + Small carbs",
			},
		})
	}
	return coach.MealPlan{
		Days: days,
		ShoppingList: []string{
			"Rice / Wheat flour (chapati)",
			"Vegetables (seasonal)",
			"Fruits (bananas, apples)",
			"Legumes (lentils, chickpeas)",
			"Dairy / milk / yogurt",
			"Eggs / Chicken / Fish or Paneer",
			"Nuts (almonds, peanuts)",
			"Cooking oil (olive/groundnut)",
		},
		DailyCalories: 2000,
	}
}

func mockAnalysis(width, height int) map[string]any {
	return map[string]any{
		"width":  width,
		"height": height,
		"items_detected": []map[string]any{
			{"name": "rice", "estimated_grams": 150},
			{"name": "chicken", "estimated_grams": 100},
			{"name": "vegetables", "estimated_grams": 80},
		},
		"nutrition_estimate": map[string]any{
			"calories":  550,
			"protein_g": 35,
			"carbs_g":   65,
			"fat_g":     12,
		},
		"note": analysisNote,
	}
}
