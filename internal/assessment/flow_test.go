package assessment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wordflow/internal/assessment"
	"github.com/vytor/wordflow/internal/models"
)

func levels(ls ...int) []models.Level {
	out := make([]models.Level, len(ls))
	for i, l := range ls {
		out[i] = models.Level(l)
	}
	return out
}

func TestSelectFlow(t *testing.T) {
	tests := []struct {
		name     string
		history  []models.Level
		expected assessment.Flow
	}{
		{"empty history", nil, assessment.Flow1},
		{"single level 3", levels(3), assessment.Flow2},
		{"last level 3", levels(0, 3), assessment.Flow3},
		{"last three at least 2", levels(0, 2, 2, 4), assessment.Flow3},
		{"single level 1", levels(1), assessment.Flow4},
		{"starts at 0 then two good", levels(0, 2, 4), assessment.Flow4},
		{"starts at 0 then two good, length 2 fails", levels(0, 2), assessment.Flow5},
		{"single level 0", levels(0), assessment.Flow5},
		{"single level 4", levels(4), assessment.Flow5},
		{"single level 2", levels(2), assessment.Flow5},
		{"mixed", levels(1, 0, 2), assessment.Flow5},
		{"last three with a 1", levels(2, 1, 2), assessment.Flow5},
		{"level 3 beats flow4 rule", levels(0, 2, 3), assessment.Flow3},
		{"first entry not 0", levels(1, 2, 4), assessment.Flow5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, assessment.SelectFlow(tt.history))
		})
	}
}

func TestSelectFlow_TotalAndDeterministic(t *testing.T) {
	var walk func(prefix []models.Level, depth int)
	walk = func(prefix []models.Level, depth int) {
		f := assessment.SelectFlow(prefix)
		assert.GreaterOrEqual(t, int(f), int(assessment.Flow1))
		assert.LessOrEqual(t, int(f), int(assessment.Flow5))
		assert.Equal(t, f, assessment.SelectFlow(append([]models.Level(nil), prefix...)))
		if depth == 0 {
			return
		}
		for l := models.MinLevel; l <= models.MaxLevel; l++ {
			walk(append(append([]models.Level(nil), prefix...), l), depth-1)
		}
	}
	walk(nil, 4)
}

func TestFlowString(t *testing.T) {
	assert.Equal(t, "flow3", assessment.Flow3.String())
	assert.Equal(t, "none", assessment.FlowNone.String())
}
