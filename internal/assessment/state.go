package assessment

import (
	"encoding"
	"fmt"

	"github.com/vytor/wordflow/internal/models"
)

// Step is the kind of question to present. Rendering it is up to the caller.
type Step string

const (
	StepNone                Step = ""
	StepListen              Step = "listen"
	StepSpelling            Step = "spelling"
	StepTranslateToNative   Step = "translate_to_native"
	StepTranslateFromNative Step = "translate_from_native"
	StepPronounce           Step = "pronounce"
)

// State is a node of the assessment state machine. The set is closed: the initial
// SelectingPath state, one state per flow/question pair, and the five terminal levels.
type State int

const (
	SelectingPath State = iota
	Flow1Listen
	Flow1Spelling
	Flow1TranslateToNative
	Flow2TranslateToNative
	Flow3Listen
	Flow3TranslateToNative
	Flow4TranslateFromNative
	Flow4Pronounce
	Flow5TranslateToNative
	Flow5Pronounce
	Level0
	Level1
	Level2
	Level3
	Level4
)

type stateInfo struct {
	name string
	flow Flow
	step Step
}

var states = [...]stateInfo{
	SelectingPath:            {"selecting_path", FlowNone, StepNone},
	Flow1Listen:              {"flow1.listen", Flow1, StepListen},
	Flow1Spelling:            {"flow1.spelling", Flow1, StepSpelling},
	Flow1TranslateToNative:   {"flow1.translate_to_native", Flow1, StepTranslateToNative},
	Flow2TranslateToNative:   {"flow2.translate_to_native", Flow2, StepTranslateToNative},
	Flow3Listen:              {"flow3.listen", Flow3, StepListen},
	Flow3TranslateToNative:   {"flow3.translate_to_native", Flow3, StepTranslateToNative},
	Flow4TranslateFromNative: {"flow4.translate_from_native", Flow4, StepTranslateFromNative},
	Flow4Pronounce:           {"flow4.pronounce", Flow4, StepPronounce},
	Flow5TranslateToNative:   {"flow5.translate_to_native", Flow5, StepTranslateToNative},
	Flow5Pronounce:           {"flow5.pronounce", Flow5, StepPronounce},
	Level0:                   {"level0", FlowNone, StepNone},
	Level1:                   {"level1", FlowNone, StepNone},
	Level2:                   {"level2", FlowNone, StepNone},
	Level3:                   {"level3", FlowNone, StepNone},
	Level4:                   {"level4", FlowNone, StepNone},
}

var stateByName = func() map[string]State {
	m := make(map[string]State, len(states))
	for i, info := range states {
		m[info.name] = State(i)
	}
	return m
}()

var (
	_ fmt.Stringer             = State(0)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

func (s State) valid() bool {
	return s >= SelectingPath && s <= Level4
}

func (s State) String() string {
	if s.valid() {
		return states[s].name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether s is one of the final levels.
func (s State) Terminal() bool {
	return s >= Level0 && s <= Level4
}

// Level returns the proficiency level of a terminal state.
func (s State) Level() (models.Level, bool) {
	if !s.Terminal() {
		return 0, false
	}
	return models.Level(s - Level0), true
}

// Step returns the question asked in s, or StepNone outside a question state.
func (s State) Step() Step {
	if !s.valid() {
		return StepNone
	}
	return states[s].step
}

// Flow returns the flow a question state belongs to.
func (s State) Flow() Flow {
	if !s.valid() {
		return FlowNone
	}
	return states[s].flow
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, error) {
	s, ok := stateByName[name]
	if !ok {
		return SelectingPath, fmt.Errorf("%w: %q", ErrInvalidState, name)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(states[s].name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
