package assessment

import (
	"fmt"

	"github.com/vytor/wordflow/internal/models"
)

// Batch holds one engine per word for a test round. It is owned by the caller driving
// the round; engines never share state.
type Batch struct {
	engines map[int64]*Engine
	order   []int64
}

func NewBatch() *Batch {
	return &Batch{engines: make(map[int64]*Engine)}
}

// Add registers the engine for wordID, replacing any previous one.
func (b *Batch) Add(wordID int64, e *Engine) {
	if _, ok := b.engines[wordID]; !ok {
		b.order = append(b.order, wordID)
	}
	b.engines[wordID] = e
}

func (b *Batch) Get(wordID int64) (*Engine, bool) {
	e, ok := b.engines[wordID]
	return e, ok
}

func (b *Batch) Len() int { return len(b.order) }

// WordIDs returns the words in the order they were added.
func (b *Batch) WordIDs() []int64 {
	out := make([]int64, len(b.order))
	copy(out, b.order)
	return out
}

// Submit routes an answer to the word's engine.
func (b *Batch) Submit(wordID int64, correct bool) error {
	e, ok := b.engines[wordID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWord, wordID)
	}
	return e.Submit(correct)
}

// Pending lists words whose assessment has not finished, in insertion order.
func (b *Batch) Pending() []int64 {
	var out []int64
	for _, id := range b.order {
		if !b.engines[id].IsTerminal() {
			out = append(out, id)
		}
	}
	return out
}

// Results maps each finished word to its level.
func (b *Batch) Results() map[int64]models.Level {
	out := make(map[int64]models.Level)
	for id, e := range b.engines {
		if level, err := e.Result(); err == nil {
			out[id] = level
		}
	}
	return out
}
