package coach

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnmarshalJSON accepts numbers encoded as JSON strings, which is how raw form
// input reaches the backend and comes back unchanged.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	var raw struct {
		plain
		Age      json.RawMessage `json:"age"`
		HeightCM json.RawMessage `json:"height_cm"`
		WeightKG json.RawMessage `json:"weight_kg"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	age, err := coerceNumber(raw.Age)
	if err != nil {
		return fmt.Errorf("age: %w", err)
	}
	height, err := coerceNumber(raw.HeightCM)
	if err != nil {
		return fmt.Errorf("height_cm: %w", err)
	}
	weight, err := coerceNumber(raw.WeightKG)
	if err != nil {
		return fmt.Errorf("weight_kg: %w", err)
	}

	*p = Profile(raw.plain)
	p.Age = int(math.Round(age))
	p.HeightCM = height
	p.WeightKG = weight
	return nil
}

func coerceNumber(raw json.RawMessage) (float64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		return ParseNumber(text)
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, err
	}
	return value, nil
}

// ParseNumber parses a form number; blank input is zero.
func ParseNumber(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return value, nil
}

// FormatNumber renders a number without trailing zeros: 1800, 62.5.
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
