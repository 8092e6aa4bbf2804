// Package wordlist builds the three word-id lists of a user's daily session.
package wordlist

import (
	"context"
	"time"

	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
)

// staleAfter marks a row without a due timestamp as due once its last review is older than this.
const staleAfter = 24 * time.Hour

type ModeStore interface {
	Get(ctx context.Context, id int64) (*models.LearningMode, error)
}

type ProgressStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.WordProgress, error)
}

type WordStore interface {
	Unseen(ctx context.Context, userID int64, limit int) ([]models.Word, error)
}

// Lists is the selection for one day. PostTest always equals Learning and
// PreTest is a prefix of Learning.
type Lists struct {
	PreTest  []int64 `json:"pre_test"`
	Learning []int64 `json:"learning"`
	PostTest []int64 `json:"post_test"`
}

func empty() Lists {
	return Lists{PreTest: []int64{}, Learning: []int64{}, PostTest: []int64{}}
}

type Generator struct {
	modes    ModeStore
	progress ProgressStore
	words    WordStore
	now      func() time.Time
}

func NewGenerator(modes ModeStore, progress ProgressStore, words WordStore) *Generator {
	return &Generator{
		modes:    modes,
		progress: progress,
		words:    words,
		now:      time.Now,
	}
}

// WithClock replaces the time source used to decide which words are due.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate never fails: any lookup error, or an unknown mode, yields three empty lists.
func (g *Generator) Generate(ctx context.Context, userID, modeID int64) Lists {
	log := logger.FromContext(ctx).WithPrefix("wordlist").WithFields(map[string]any{
		"user_id": userID,
		"mode_id": modeID,
	})

	mode, err := g.modes.Get(ctx, modeID)
	if err != nil {
		log.Warn("mode lookup failed, returning empty lists: %v", err)
		return empty()
	}
	if mode == nil {
		log.Warn("mode not found, returning empty lists")
		return empty()
	}

	rows, err := g.progress.ListByUser(ctx, userID)
	if err != nil {
		log.Warn("progress lookup failed, returning empty lists: %v", err)
		return empty()
	}

	preTest := DueWordIDs(rows, g.now())

	var fresh []int64
	if needed := mode.WordCount - len(preTest); needed > 0 {
		words, err := g.words.Unseen(ctx, userID, needed)
		if err != nil {
			log.Warn("unseen word lookup failed, returning empty lists: %v", err)
			return empty()
		}
		for _, w := range words {
			fresh = append(fresh, w.ID)
		}
	}

	learning := make([]int64, 0, len(preTest)+len(fresh))
	learning = append(learning, preTest...)
	learning = append(learning, fresh...)
	postTest := append([]int64(nil), learning...)
	if postTest == nil {
		postTest = []int64{}
	}

	log.Debug("generated lists: pre_test=%d, new=%d, quota=%d", len(preTest), len(fresh), mode.WordCount)
	return Lists{PreTest: preTest, Learning: learning, PostTest: postTest}
}

// DueWordIDs returns the ids of rows due at now, in row order without duplicates.
func DueWordIDs(rows []models.WordProgress, now time.Time) []int64 {
	ids := []int64{}
	seen := make(map[int64]struct{}, len(rows))
	for _, p := range rows {
		if !IsDue(p, now) {
			continue
		}
		if _, ok := seen[p.WordID]; ok {
			continue
		}
		seen[p.WordID] = struct{}{}
		ids = append(ids, p.WordID)
	}
	return ids
}

// IsDue reports whether p should be reviewed at now. An explicit due
// timestamp decides on its own; without one the word is due when it was
// never reviewed or last reviewed more than a day ago.
func IsDue(p models.WordProgress, now time.Time) bool {
	if p.NextReviewDate != nil {
		return !p.NextReviewDate.After(now)
	}
	if p.LastReviewDate == nil {
		return true
	}
	return now.Sub(*p.LastReviewDate) > staleAfter
}
