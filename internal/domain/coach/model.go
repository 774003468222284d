package coach

import (
	"encoding/json"
	"strings"
)

// Enumerated profile values accepted by the backend.
var (
	Genders        = []string{"female", "male", "other"}
	ActivityLevels = []string{"sedentary", "light", "moderate", "active"}
	DietaryPrefs   = []string{"mixed", "vegetarian", "non-veg"}
	Budgets        = []string{"low", "medium", "high"}
)

// Profile is the single health profile of the session user.
type Profile struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	DietaryPref   string  `json:"dietary_pref"`
	Allergies     string  `json:"allergies"`
	Budget        string  `json:"budget"`
	Region        string  `json:"region"`
	Goals         string  `json:"goals"`
}

// DefaultProfile returns the values a fresh profile form starts with.
func DefaultProfile() Profile {
	return Profile{
		Age:           20,
		Gender:        "female",
		HeightCM:      165,
		WeightKG:      60,
		ActivityLevel: "moderate",
		DietaryPref:   "mixed",
		Budget:        "medium",
	}
}

// Present reports whether the backend holds a profile. An absent or empty name
// means "no profile yet", whatever the other fields contain.
func (p Profile) Present() bool {
	return p.Name != ""
}

// AllergyList splits the comma separated allergies field.
func (p Profile) AllergyList() []string {
	out := make([]string, 0)
	for _, item := range strings.Split(p.Allergies, ",") {
		if clean := strings.TrimSpace(item); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// SaveResult is the backend confirmation for a profile write.
type SaveResult struct {
	Status  string
	Message string
	// Profile is set when the backend echoes the stored profile back.
	Profile *Profile
}

// MealPlan is a generated multi-day plan. It is never mutated client side.
type MealPlan struct {
	ShoppingList      []string  `json:"shopping_list"`
	Days              []DayPlan `json:"days"`
	DailyCalories     float64   `json:"daily_calories,omitempty"`
	DietaryPreference string    `json:"dietary_preference,omitempty"`
}

// DayPlan holds the targets and meals for one day.
type DayPlan struct {
	Day            string  `json:"day"`
	CaloriesTarget float64 `json:"calories_target"`
	Macros         Macros  `json:"macros"`
	Meals          Meals   `json:"meals"`
}

// Macros are daily macro nutrient targets in grams.
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Meals names the four meals of a day.
type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snack     string `json:"snack"`
	Dinner    string `json:"dinner"`
}

// AnalysisResult is the open-schema response of the image analyzer.
type AnalysisResult map[string]any

// ImageFile is a selected image ready for upload.
type ImageFile struct {
	Name string
	Data []byte
}

// ChatReply is the assistant response to one chat message.
type ChatReply struct {
	Reply string
	// HasReply is false when the response carried no usable reply field.
	HasReply bool
	Raw      json.RawMessage
}

// Text returns the reply, or the compact raw response when the reply is missing.
func (r ChatReply) Text() string {
	if r.HasReply {
		return r.Reply
	}
	if len(r.Raw) == 0 {
		return "{}"
	}
	return string(r.Raw)
}

// ReplyError is a failed chat exchange whose response still carried a reply meant for
// the user, such as the backend's "AI service unavailable" notice.
type ReplyError struct {
	Reply string
	Err   error
}

func (e *ReplyError) Error() string {
	return e.Err.Error()
}

func (e *ReplyError) Unwrap() error {
	return e.Err
}

// HealthStatus reports backend readiness.
type HealthStatus struct {
	Status       string `json:"status"`
	AIConfigured bool   `json:"ai_configured"`
	Database     string `json:"database"`
}
