package assessment

import (
	"fmt"

	"github.com/vytor/wordflow/internal/models"
)

// Flow identifies one of the five question sequences.
type Flow int

const (
	FlowNone Flow = iota
	Flow1
	Flow2
	Flow3
	Flow4
	Flow5
)

func (f Flow) String() string {
	if f >= Flow1 && f <= Flow5 {
		return fmt.Sprintf("flow%d", int(f))
	}
	return "none"
}

// Entry is the first question state of the flow.
func (f Flow) Entry() State {
	switch f {
	case Flow1:
		return Flow1Listen
	case Flow2:
		return Flow2TranslateToNative
	case Flow3:
		return Flow3Listen
	case Flow4:
		return Flow4TranslateFromNative
	default:
		return Flow5TranslateToNative
	}
}

// SelectFlow picks the question sequence for a word from its past test levels,
// oldest first. The first matching rule wins and Flow5 catches everything else.
func SelectFlow(history []models.Level) Flow {
	n := len(history)
	switch {
	case n == 0:
		return Flow1
	case n == 1 && history[0] == 3:
		return Flow2
	case history[n-1] == 3 || (n >= 3 && allAtLeast(history[n-3:], 2)):
		return Flow3
	case n == 1 && history[0] == 1:
		return Flow4
	case n >= 2 && history[0] == 0 && allAtLeast(history[n-2:], 2):
		return Flow4
	default:
		return Flow5
	}
}

func allAtLeast(levels []models.Level, min models.Level) bool {
	for _, l := range levels {
		if l < min {
			return false
		}
	}
	return true
}
