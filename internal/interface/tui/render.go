package tui

import (
	"fmt"
	"strings"

	"github.com/yanqian/ai-healthcoach/internal/domain/analyzer"
	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
	"github.com/yanqian/ai-healthcoach/internal/domain/conversation"
	"github.com/yanqian/ai-healthcoach/internal/domain/dashboard"
	"github.com/yanqian/ai-healthcoach/internal/domain/mealplan"
	"github.com/yanqian/ai-healthcoach/internal/domain/profile"
	"github.com/yanqian/ai-healthcoach/pkg/util"
)

const (
	noProfileLine = "No profile yet. Please add your health profile."
	dashboardHint = "Use the tabs to generate meal plans, analyze food images, or chat with the AI nutritionist."
)

// ProfileHeadline renders the name, age and goals line of the dashboard.
func ProfileHeadline(p coach.Profile) string {
	return fmt.Sprintf("%s — %d yrs — %s", p.Name, p.Age, p.Goals)
}

// ProfileHabits renders the diet and activity line of the dashboard.
func ProfileHabits(p coach.Profile) string {
	return fmt.Sprintf("Diet: %s • Activity: %s", p.DietaryPref, p.ActivityLevel)
}

// DayHeading renders the day name with its calorie target.
func DayHeading(d coach.DayPlan) string {
	return fmt.Sprintf("%s — %s kcal", d.Day, coach.FormatNumber(d.CaloriesTarget))
}

// MacroLine renders the macro targets of a day.
func MacroLine(m coach.Macros) string {
	return fmt.Sprintf("P %sg • C %sg • F %sg", coach.FormatNumber(m.ProteinG), coach.FormatNumber(m.CarbsG), coach.FormatNumber(m.FatG))
}

// DashboardLines renders the dashboard body.
func DashboardLines(snap dashboard.Snapshot) []string {
	var lines []string
	switch snap.Status {
	case dashboard.StatusUninitialized, dashboard.StatusLoading:
		lines = append(lines, "Loading profile...")
	case dashboard.StatusLoadFailed:
		lines = append(lines, errorLine("Could not load profile", snap.Err))
	default:
		if snap.HasProfile {
			lines = append(lines, ProfileHeadline(snap.Profile), ProfileHabits(snap.Profile))
		} else {
			lines = append(lines, noProfileLine)
		}
	}
	return append(lines, "", dashboardHint)
}

// ProfileLines renders the form with a cursor on the selected field.
func ProfileLines(snap profile.Snapshot, cursor int, issues []profile.Issue) []string {
	switch snap.Status {
	case profile.StatusUninitialized, profile.StatusLoading:
		return []string{"Loading profile..."}
	}

	flagged := make(map[string]string, len(issues))
	for _, issue := range issues {
		if _, ok := flagged[issue.Field]; !ok {
			flagged[issue.Field] = issue.Message
		}
	}

	lines := make([]string, 0, len(profile.Fields)+4)
	for i, field := range profile.Fields {
		value, _ := profile.Value(snap.Draft, field.Key)
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-38s %s", marker, field.Label+":", value)
		if field.Kind == profile.KindChoice {
			line += fmt.Sprintf("  [%s]", strings.Join(field.Options, "/"))
		}
		if msg, ok := flagged[field.Key]; ok {
			line += "  ! " + msg
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	switch snap.Status {
	case profile.StatusSaving:
		lines = append(lines, "Saving...")
	case profile.StatusSaveFailed:
		lines = append(lines, errorLine("Save failed", snap.Err))
	case profile.StatusLoadFailed:
		lines = append(lines, errorLine("Could not load profile", snap.Err))
	default:
		if snap.Notice != "" {
			lines = append(lines, snap.Notice)
		} else if snap.Dirty {
			lines = append(lines, "Unsaved changes.")
		}
	}
	return lines
}

// MealPlanLines renders the plan, or its loading or failure state.
func MealPlanLines(snap mealplan.Snapshot) []string {
	switch snap.Status {
	case mealplan.StatusUninitialized, mealplan.StatusLoading:
		return []string{"Loading meal plan..."}
	case mealplan.StatusLoadFailed:
		return []string{errorLine("Could not load meal plan", snap.Err), "Switch away and back to retry."}
	}

	plan := snap.Plan
	lines := []string{fmt.Sprintf("%d-Day Meal Plan", len(plan.Days)), "", "Shopping list:"}
	for _, item := range plan.ShoppingList {
		lines = append(lines, "  • "+item)
	}
	for _, day := range plan.Days {
		lines = append(lines,
			"",
			DayHeading(day),
			"Macros: "+MacroLine(day.Macros),
			"  Breakfast: "+day.Meals.Breakfast,
			"  Lunch: "+day.Meals.Lunch,
			"  Snack: "+day.Meals.Snack,
			"  Dinner: "+day.Meals.Dinner,
		)
	}
	return lines
}

// AnalyzerLines renders the pending file, status and last result.
func AnalyzerLines(snap analyzer.Snapshot, resultJSON string) []string {
	var lines []string
	switch snap.Status {
	case analyzer.StatusSubmitting:
		lines = append(lines, "Analyzing "+snap.FileName+"...")
	case analyzer.StatusFileSelected:
		lines = append(lines, "Selected: "+snap.FileName)
	default:
		lines = append(lines, "No image selected.")
	}
	if snap.Warning != "" {
		lines = append(lines, snap.Warning)
	}
	if snap.Err != nil {
		lines = append(lines, errorLine("Analysis failed", snap.Err))
	}
	if resultJSON != "" {
		lines = append(lines, "", "Result:")
		lines = append(lines, strings.Split(resultJSON, "\n")...)
	}
	return lines
}

// TranscriptLines renders the conversation in send order.
func TranscriptLines(snap conversation.Snapshot) []string {
	lines := make([]string, 0, len(snap.Entries)+1)
	for _, entry := range snap.Entries {
		who := "You"
		if entry.Speaker == conversation.SpeakerAssistant {
			who = "Coach"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", util.Clock(entry.At), who, entry.Text))
	}
	if snap.Pending > 0 {
		lines = append(lines, fmt.Sprintf("(%d awaiting reply)", snap.Pending))
	}
	return lines
}

func errorLine(prefix string, err error) string {
	if err == nil {
		return prefix + "."
	}
	return prefix + ": " + err.Error()
}
