package assessment

import (
	"fmt"

	"github.com/vytor/wordflow/internal/models"
)

// Transition returns the state reached from s after one answer. spelling enables the
// optional spelling question after a correct Flow1 listening answer. It is a pure
// function; terminal states yield ErrFlowFinished.
func Transition(s State, correct, spelling bool) (State, error) {
	switch s {
	case Flow1Listen:
		switch {
		case !correct:
			return Flow1TranslateToNative, nil
		case spelling:
			return Flow1Spelling, nil
		default:
			return Level3, nil
		}
	case Flow1Spelling:
		return branch(correct, Level4, Level3), nil
	case Flow1TranslateToNative:
		return branch(correct, Level1, Level0), nil
	case Flow2TranslateToNative:
		return branch(correct, Level3, Level0), nil
	case Flow3Listen:
		return branch(correct, Level3, Flow3TranslateToNative), nil
	case Flow3TranslateToNative:
		return branch(correct, Level2, Level0), nil
	case Flow4TranslateFromNative:
		return branch(correct, Flow4Pronounce, Level0), nil
	case Flow4Pronounce:
		return branch(correct, Level2, Level1), nil
	case Flow5TranslateToNative:
		return branch(correct, Flow5Pronounce, Level0), nil
	case Flow5Pronounce:
		return branch(correct, Level2, Level1), nil
	case Level0, Level1, Level2, Level3, Level4:
		return s, fmt.Errorf("%w: %s", ErrFlowFinished, s)
	default:
		return s, fmt.Errorf("%w: %s", ErrInvalidState, s)
	}
}

func branch(correct bool, right, wrong State) State {
	if correct {
		return right
	}
	return wrong
}

// Engine walks one word through its assessment. It performs no I/O and is not safe
// for concurrent use; independent engines need no coordination.
type Engine struct {
	flow     Flow
	state    State
	spelling bool
	answers  int
}

// New selects the flow for the word's history and positions the engine on its first
// question.
func New(history []models.Level, spelling bool) *Engine {
	e := &Engine{state: SelectingPath, spelling: spelling}
	e.flow = SelectFlow(history)
	e.state = e.flow.Entry()
	return e
}

// Resume rebuilds an engine from a state previously reported by State. The spelling
// question only exists when spelling is enabled.
func Resume(s State, spelling bool) (*Engine, error) {
	if !s.valid() || s == SelectingPath {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, s)
	}
	if s == Flow1Spelling && !spelling {
		return nil, fmt.Errorf("%w: %s with spelling disabled", ErrInvalidState, s)
	}
	return &Engine{flow: s.Flow(), state: s, spelling: spelling}, nil
}

// ResumeFor is Resume for a word with the given history. A question state must belong
// to the flow SelectFlow picks for that history. Terminal states are accepted so that
// Submit can report ErrFlowFinished.
func ResumeFor(history []models.Level, s State, spelling bool) (*Engine, error) {
	e, err := Resume(s, spelling)
	if err != nil {
		return nil, err
	}
	if s.Terminal() {
		return e, nil
	}
	if want := SelectFlow(history); e.flow != want {
		return nil, fmt.Errorf("%w: %s is not part of %s", ErrFlowMismatch, s, want)
	}
	return e, nil
}

func (e *Engine) Flow() Flow   { return e.flow }
func (e *Engine) State() State { return e.state }

// Answers is the number of answers this engine has accepted.
func (e *Engine) Answers() int { return e.answers }

// CurrentStep is the question to present next, StepNone once terminal.
func (e *Engine) CurrentStep() Step { return e.state.Step() }

func (e *Engine) IsTerminal() bool { return e.state.Terminal() }

// Submit advances the engine by exactly one answer.
func (e *Engine) Submit(correct bool) error {
	next, err := Transition(e.state, correct, e.spelling)
	if err != nil {
		return err
	}
	e.state = next
	e.answers++
	return nil
}

// Result is the final proficiency level. It fails until the engine is terminal.
func (e *Engine) Result() (models.Level, error) {
	level, ok := e.state.Level()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrFlowNotFinished, e.state)
	}
	return level, nil
}
