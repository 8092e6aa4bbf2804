package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
)

// ErrInvalidLevel is returned when a review outcome is outside 0..4.
var ErrInvalidLevel = errors.New("review: proficiency level out of range")

// downgradeAfterDays is how long a cycle must have run before a lapse of a level-3
// word moves it to a sparser strategy.
const downgradeAfterDays = 90

// StrategyStore looks up interval rules. A nil strategy with a nil error means not found.
type StrategyStore interface {
	Get(ctx context.Context, id models.StrategyID) (*models.ReviewStrategy, error)
}

// Scheduler applies review outcomes to word progress records.
type Scheduler struct {
	strategies StrategyStore
}

func NewScheduler(strategies StrategyStore) *Scheduler {
	return &Scheduler{strategies: strategies}
}

// UpdateProgress returns progress updated for a review with outcome newLevel at
// reviewTime. The second result is false when the word was already reviewed on the
// same calendar day, in which case progress is returned unchanged.
func (s *Scheduler) UpdateProgress(ctx context.Context, progress models.WordProgress, newLevel models.Level, reviewTime time.Time) (models.WordProgress, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("review")
	if !newLevel.Valid() {
		return progress, false, fmt.Errorf("%w: %d", ErrInvalidLevel, newLevel)
	}
	if progress.LastReviewDate != nil && sameDay(*progress.LastReviewDate, reviewTime) {
		log.Debug("word %d already reviewed today, skipping", progress.WordID)
		return progress, false, nil
	}

	updated := progress
	if progress.StartDate == nil {
		updated.StrategyID = SelectStrategy(progress.ProficiencyLevel, progress.IsLongDifficult)
		updated.StartDate = timePtr(reviewTime)
		updated.ReviewedTimes = 0
	} else {
		days := daysBetween(*progress.StartDate, reviewTime)
		if newLevel == 0 && progress.ProficiencyLevel == 3 && days >= downgradeAfterDays {
			updated.StrategyID = Downgrade(progress.StrategyID)
			log.Debug("word %d downgraded %s -> %s after %d days", progress.WordID, progress.StrategyID, updated.StrategyID, days)
		}
		if newLevel == 0 {
			updated.StartDate = timePtr(reviewTime)
			updated.ReviewedTimes = 0
		} else {
			updated.ReviewedTimes++
		}
	}
	updated.LastReviewDate = timePtr(reviewTime)

	next, err := s.NextReviewDate(ctx, updated.StrategyID, reviewTime, updated.ReviewedTimes)
	if err != nil {
		return progress, false, err
	}
	updated.NextReviewDate = &next
	updated.ProficiencyLevel = newLevel
	return updated, true, nil
}

// NextReviewDate computes when a word becomes due under the given strategy. A missing
// strategy or an empty rule falls back to DefaultInterval hours.
func (s *Scheduler) NextReviewDate(ctx context.Context, id models.StrategyID, reviewTime time.Time, reviewedTimes int) (time.Time, error) {
	var hours []int
	st, err := s.strategies.Get(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("load strategy %s: %w", id, err)
	}
	if st == nil {
		logger.FromContext(ctx).WithPrefix("review").Warn("strategy %q not found, using %dh default", id, DefaultInterval)
	} else {
		hours = ParseIntervalRule(st.IntervalRule)
	}
	return reviewTime.Add(time.Duration(intervalAt(hours, reviewedTimes)) * time.Hour), nil
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func daysBetween(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours() / 24))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
