package profile

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

// ErrUnknownField is returned for form keys that are not profile fields.
var ErrUnknownField = errors.New("unknown profile field")

// FieldKind tells the form how a field is edited.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindChoice
)

// Field describes one input of the profile form.
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Options []string
}

// Fields lists the form inputs in display order. Keys match the wire names.
var Fields = []Field{
	{Key: "name", Label: "Name", Kind: KindText},
	{Key: "age", Label: "Age", Kind: KindNumber},
	{Key: "gender", Label: "Gender", Kind: KindChoice, Options: coach.Genders},
	{Key: "height_cm", Label: "Height (cm)", Kind: KindNumber},
	{Key: "weight_kg", Label: "Weight (kg)", Kind: KindNumber},
	{Key: "activity_level", Label: "Activity level", Kind: KindChoice, Options: coach.ActivityLevels},
	{Key: "dietary_pref", Label: "Dietary preference", Kind: KindChoice, Options: coach.DietaryPrefs},
	{Key: "allergies", Label: "Allergies (comma separated)", Kind: KindText},
	{Key: "budget", Label: "Budget (low/medium/high)", Kind: KindText},
	{Key: "region", Label: "Region / cultural food habits", Kind: KindText},
	{Key: "goals", Label: "Goals (e.g., lose weight, gain muscle)", Kind: KindText},
}

// Value renders a profile field as form text.
func Value(p coach.Profile, key string) (string, error) {
	switch key {
	case "name":
		return p.Name, nil
	case "age":
		return fmt.Sprintf("%d", p.Age), nil
	case "gender":
		return p.Gender, nil
	case "height_cm":
		return coach.FormatNumber(p.HeightCM), nil
	case "weight_kg":
		return coach.FormatNumber(p.WeightKG), nil
	case "activity_level":
		return p.ActivityLevel, nil
	case "dietary_pref":
		return p.DietaryPref, nil
	case "allergies":
		return p.Allergies, nil
	case "budget":
		return p.Budget, nil
	case "region":
		return p.Region, nil
	case "goals":
		return p.Goals, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
}

// apply marshals form text into the typed profile. On error p is left unchanged.
func apply(p *coach.Profile, key, value string) error {
	switch key {
	case "name":
		p.Name = value
	case "age":
		n, err := coach.ParseNumber(value)
		if err != nil {
			return fmt.Errorf("age: %w", err)
		}
		p.Age = int(math.Round(n))
	case "gender":
		p.Gender = value
	case "height_cm":
		n, err := coach.ParseNumber(value)
		if err != nil {
			return fmt.Errorf("height_cm: %w", err)
		}
		p.HeightCM = n
	case "weight_kg":
		n, err := coach.ParseNumber(value)
		if err != nil {
			return fmt.Errorf("weight_kg: %w", err)
		}
		p.WeightKG = n
	case "activity_level":
		p.ActivityLevel = value
	case "dietary_pref":
		p.DietaryPref = value
	case "allergies":
		p.Allergies = value
	case "budget":
		p.Budget = value
	case "region":
		p.Region = value
	case "goals":
		p.Goals = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return nil
}

// Issue is an advisory validation finding. Issues never block a save.
type Issue struct {
	Field   string
	Message string
}

// Validate reports advisory issues; the backend stays the authority.
func Validate(p coach.Profile) []Issue {
	var issues []Issue
	if strings.TrimSpace(p.Name) == "" {
		issues = append(issues, Issue{Field: "name", Message: "name is empty; the dashboard will show no profile"})
	}
	if p.Age < 0 {
		issues = append(issues, Issue{Field: "age", Message: "age must be 0 or greater"})
	}
	if p.HeightCM <= 0 {
		issues = append(issues, Issue{Field: "height_cm", Message: "height_cm should be greater than 0"})
	}
	if p.WeightKG <= 0 {
		issues = append(issues, Issue{Field: "weight_kg", Message: "weight_kg should be greater than 0"})
	}
	issues = appendChoiceIssue(issues, "gender", p.Gender, coach.Genders)
	issues = appendChoiceIssue(issues, "activity_level", p.ActivityLevel, coach.ActivityLevels)
	issues = appendChoiceIssue(issues, "dietary_pref", p.DietaryPref, coach.DietaryPrefs)
	if b := strings.ToLower(strings.TrimSpace(p.Budget)); b != "" && !slices.Contains(coach.Budgets, b) {
		issues = append(issues, Issue{Field: "budget", Message: "budget is usually low, medium or high"})
	}
	return issues
}

func appendChoiceIssue(issues []Issue, field, value string, allowed []string) []Issue {
	if slices.Contains(allowed, value) {
		return issues
	}
	return append(issues, Issue{Field: field, Message: fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", "))})
}
