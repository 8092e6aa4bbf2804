package assessment_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflow/internal/assessment"
	"github.com/vytor/wordflow/internal/models"
)

func TestStateTextRoundTrip(t *testing.T) {
	for s := assessment.SelectingPath; s <= assessment.Level4; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back assessment.State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
}

func TestStateJSON(t *testing.T) {
	b, err := json.Marshal(map[string]assessment.State{"state": assessment.Flow4Pronounce})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"flow4.pronounce"}`, string(b))

	var out struct {
		State assessment.State `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"state":"flow1.spelling"}`), &out))
	assert.Equal(t, assessment.Flow1Spelling, out.State)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"flow9.dance"}`), &out))
}

func TestParseStateInvalid(t *testing.T) {
	_, err := assessment.ParseState("level5")
	assert.ErrorIs(t, err, assessment.ErrInvalidState)

	_, err = assessment.State(42).MarshalText()
	assert.ErrorIs(t, err, assessment.ErrInvalidState)
	assert.Equal(t, "State(42)", assessment.State(42).String())
}

func TestStateLevel(t *testing.T) {
	level, ok := assessment.Level4.Level()
	assert.True(t, ok)
	assert.Equal(t, models.Level(4), level)

	_, ok = assessment.Flow3Listen.Level()
	assert.False(t, ok)

	assert.Equal(t, assessment.Flow3, assessment.Flow3TranslateToNative.Flow())
	assert.Equal(t, assessment.FlowNone, assessment.Level0.Flow())
}
