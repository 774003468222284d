package coach

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileDecodeCoercesStringNumbers(t *testing.T) {
	raw := `{"id":1,"name":"Ana","age":"30","gender":"female","height_cm":"170.5","weight_kg":62,"activity_level":"active","dietary_pref":"vegetarian","allergies":"nuts, soy","budget":"low","region":null,"goals":"lose weight"}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Equal(t, "Ana", p.Name)
	require.Equal(t, 30, p.Age)
	require.Equal(t, 170.5, p.HeightCM)
	require.Equal(t, 62.0, p.WeightKG)
	require.Equal(t, "", p.Region)
	require.Equal(t, []string{"nuts", "soy"}, p.AllergyList())
	require.True(t, p.Present())
}

func TestProfileDecodeBlankAndNullNumbers(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"","age":"","height_cm":null}`), &p))
	require.Equal(t, 0, p.Age)
	require.Equal(t, 0.0, p.HeightCM)
	require.False(t, p.Present())
}

func TestProfileDecodeRejectsGarbageNumbers(t *testing.T) {
	var p Profile
	err := json.Unmarshal([]byte(`{"age":"thirty"}`), &p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "age")
}

func TestEmptyProfileIsNotPresentButDefaultsAreDistinct(t *testing.T) {
	var absent Profile
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.False(t, absent.Present())

	defaults := DefaultProfile()
	require.False(t, defaults.Present())
	require.NotEqual(t, absent, defaults)
}

func TestChatReplyText(t *testing.T) {
	require.Equal(t, "Drink water", ChatReply{Reply: "Drink water", HasReply: true}.Text())
	require.Equal(t, `{"error":"No message provided"}`, ChatReply{Raw: json.RawMessage(`{"error":"No message provided"}`)}.Text())
	require.Equal(t, "{}", ChatReply{}.Text())
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "1800", FormatNumber(1800))
	require.Equal(t, "62.5", FormatNumber(62.5))
}
