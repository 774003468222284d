package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-healthcoach/internal/domain/analyzer"
	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
	"github.com/yanqian/ai-healthcoach/internal/domain/conversation"
	"github.com/yanqian/ai-healthcoach/internal/domain/dashboard"
	"github.com/yanqian/ai-healthcoach/internal/domain/mealplan"
	"github.com/yanqian/ai-healthcoach/internal/domain/profile"
)

func TestDashboardShowsProfileSummary(t *testing.T) {
	snap := dashboard.Snapshot{
		Status:     dashboard.StatusLoaded,
		HasProfile: true,
		Profile:    coach.Profile{Name: "Ana", Age: 30, Goals: "lose weight", DietaryPref: "vegetarian", ActivityLevel: "active"},
	}

	lines := DashboardLines(snap)
	require.Equal(t, "Ana — 30 yrs — lose weight", lines[0])
	require.Equal(t, "Diet: vegetarian • Activity: active", lines[1])
}

func TestDashboardWithoutProfile(t *testing.T) {
	lines := DashboardLines(dashboard.Snapshot{Status: dashboard.StatusLoaded})
	require.Equal(t, noProfileLine, lines[0])

	lines = DashboardLines(dashboard.Snapshot{Status: dashboard.StatusLoadFailed, Err: errors.New("refused")})
	require.Equal(t, "Could not load profile: refused", lines[0])
}

func TestMealPlanDayLines(t *testing.T) {
	snap := mealplan.Snapshot{
		Status: mealplan.StatusLoaded,
		Plan: coach.MealPlan{
			ShoppingList: []string{"Oats"},
			Days: []coach.DayPlan{{
				Day:            "Mon",
				CaloriesTarget: 1800,
				Macros:         coach.Macros{ProteinG: 100, CarbsG: 200, FatG: 60},
				Meals:          coach.Meals{Breakfast: "Oats"},
			}},
		},
	}

	lines := MealPlanLines(snap)
	require.Contains(t, lines, "Mon — 1800 kcal")
	require.Contains(t, lines, "Macros: P 100g • C 200g • F 60g")
	require.Contains(t, lines, "  • Oats")
	require.Equal(t, "1-Day Meal Plan", lines[0])
}

func TestMealPlanLoadingAndFailure(t *testing.T) {
	require.Equal(t, []string{"Loading meal plan..."}, MealPlanLines(mealplan.Snapshot{Status: mealplan.StatusLoading}))

	lines := MealPlanLines(mealplan.Snapshot{Status: mealplan.StatusLoadFailed, Err: errors.New("status=500")})
	require.Equal(t, "Could not load meal plan: status=500", lines[0])
}

func TestMacroLineKeepsFractions(t *testing.T) {
	require.Equal(t, "P 93.5g • C 200g • F 60g", MacroLine(coach.Macros{ProteinG: 93.5, CarbsG: 200, FatG: 60}))
}

func TestProfileLinesMarkCursorAndIssues(t *testing.T) {
	snap := profile.Snapshot{Status: profile.StatusLoaded, Draft: coach.DefaultProfile(), Dirty: true}

	lines := ProfileLines(snap, 1, profile.Validate(snap.Draft))
	require.Contains(t, lines[0], "! name is empty")
	require.Contains(t, lines[1], "> Age:")
	require.Contains(t, lines[2], "[female/male/other]")
	require.Equal(t, "Unsaved changes.", lines[len(lines)-1])
}

func TestAnalyzerLines(t *testing.T) {
	lines := AnalyzerLines(analyzer.Snapshot{Status: analyzer.StatusIdle, Warning: analyzer.NoFileWarning}, "")
	require.Equal(t, []string{"No image selected.", "Choose an image first"}, lines)

	lines = AnalyzerLines(analyzer.Snapshot{Status: analyzer.StatusIdle}, "{\n  \"food\": \"rice\"\n}")
	require.Equal(t, []string{"No image selected.", "", "Result:", "{", `  "food": "rice"`, "}"}, lines)
}

func TestTranscriptLines(t *testing.T) {
	snap := conversation.Snapshot{
		Entries: []conversation.Entry{
			{Speaker: conversation.SpeakerUser, Text: "hi"},
			{Speaker: conversation.SpeakerAssistant, Text: "hello"},
		},
		Pending: 1,
	}

	lines := TranscriptLines(snap)
	require.Equal(t, []string{"[--:--] You: hi", "[--:--] Coach: hello", "(1 awaiting reply)"}, lines)
}
