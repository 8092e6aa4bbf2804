package review_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/review"
)

type strategyMap map[models.StrategyID]string

func (m strategyMap) Get(_ context.Context, id models.StrategyID) (*models.ReviewStrategy, error) {
	rule, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &models.ReviewStrategy{ID: id, IntervalRule: rule}, nil
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, models.StrategyID) (*models.ReviewStrategy, error) {
	return nil, f.err
}

var defaultRules = strategyMap{
	models.StrategyDense:  "1h,3h,6h,1d,2d",
	models.StrategyNormal: "1h,3h,1d,2d,4d",
	models.StrategySparse: "1d,3d,7d",
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func TestNextReviewDate(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	ctx := context.Background()
	base := at("2024-05-01T10:00:00Z")

	tests := []struct {
		name          string
		reviewedTimes int
		expected      time.Duration
	}{
		{"first interval", 0, time.Hour},
		{"third interval", 2, 24 * time.Hour},
		{"last interval", 4, 96 * time.Hour},
		{"past the table reuses last", 10, 96 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.NextReviewDate(ctx, models.StrategyNormal, base, tt.reviewedTimes)
			require.NoError(t, err)
			assert.Equal(t, base.Add(tt.expected), got)
		})
	}
}

func TestNextReviewDate_AlwaysAfterReview(t *testing.T) {
	ctx := context.Background()
	base := at("2024-05-01T10:00:00Z")
	rules := []string{
		"1h,3h,6h,1d,2d",
		"0h",
		"0h,0d",
		"3000000h",
		"400000000000000000d",
		"99999999999999999999h",
		"2562047h",
		"never",
		"",
	}

	for _, rule := range rules {
		s := review.NewScheduler(strategyMap{models.StrategyNormal: rule})
		for _, reviewed := range []int{0, 1, 5, 100} {
			next, err := s.NextReviewDate(ctx, models.StrategyNormal, base, reviewed)
			require.NoError(t, err)
			assert.True(t, next.After(base), "rule %q reviewed %d gave %s", rule, reviewed, next)
		}
	}
}

func TestUpdateProgress_NextReviewAfterLastReview(t *testing.T) {
	s := review.NewScheduler(strategyMap{
		models.StrategyDense:  "0h,3000000h",
		models.StrategyNormal: "400000000000000000d",
		models.StrategySparse: "0d",
	})
	ctx := context.Background()
	reviewTime := at("2024-05-10T10:00:00Z")

	for level := models.Level(0); level <= 4; level++ {
		for _, long := range []bool{false, true} {
			p := models.NewWordProgress(1, 1)
			p.ProficiencyLevel = level
			p.IsLongDifficult = long
			next, updated, err := s.UpdateProgress(ctx, p, level, reviewTime)
			require.NoError(t, err)
			require.True(t, updated)
			require.NotNil(t, next.LastReviewDate)
			require.NotNil(t, next.NextReviewDate)
			assert.True(t, next.NextReviewDate.After(*next.LastReviewDate), "level %d long %t", level, long)
		}
	}
}

func TestNextReviewDate_Defaults(t *testing.T) {
	ctx := context.Background()
	base := at("2024-05-01T10:00:00Z")

	s := review.NewScheduler(strategyMap{models.StrategyDense: "never,ever"})

	got, err := s.NextReviewDate(ctx, models.StrategyDense, base, 0)
	require.NoError(t, err)
	assert.Equal(t, base.Add(24*time.Hour), got, "unparseable rule falls back to 24h")

	got, err = s.NextReviewDate(ctx, models.StrategySparse, base, 3)
	require.NoError(t, err)
	assert.Equal(t, base.Add(24*time.Hour), got, "missing strategy falls back to 24h")
}

func TestNextReviewDate_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("store unreachable")
	s := review.NewScheduler(failingStore{err: boom})

	_, err := s.NextReviewDate(context.Background(), models.StrategyNormal, time.Now(), 0)
	assert.ErrorIs(t, err, boom)
}

func TestUpdateProgress_FirstReview(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	now := at("2024-05-01T10:00:00Z")
	p := models.NewWordProgress(1, 2)
	p.IsLongDifficult = true

	updated, ok, err := s.UpdateProgress(context.Background(), p, 2, now)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.StrategyDense, updated.StrategyID, "strategy comes from the pre-update level")
	assert.Equal(t, now, *updated.StartDate)
	assert.Equal(t, now, *updated.LastReviewDate)
	assert.Equal(t, 0, updated.ReviewedTimes)
	assert.Equal(t, now.Add(time.Hour), *updated.NextReviewDate)
	assert.Equal(t, models.Level(2), updated.ProficiencyLevel)

	assert.Nil(t, p.StartDate, "input record is not mutated")
	assert.Equal(t, models.Level(0), p.ProficiencyLevel)
}

func TestUpdateProgress_SameDayIsNoop(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	morning := at("2024-05-01T08:00:00Z")
	evening := at("2024-05-01T21:00:00Z")

	first, ok, err := s.UpdateProgress(context.Background(), models.NewWordProgress(1, 2), 1, morning)
	require.NoError(t, err)
	require.True(t, ok)

	for _, level := range []models.Level{0, 1, 4} {
		second, ok, err := s.UpdateProgress(context.Background(), first, level, evening)
		require.NoError(t, err)
		assert.False(t, ok, "level %d", level)
		assert.Equal(t, first, second)
	}
}

func TestUpdateProgress_SameDayUsesReviewTimeLocation(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	tokyo := time.FixedZone("JST", 9*3600)
	last := at("2024-05-01T14:00:00Z") // 23:00 JST on May 1
	p := models.NewWordProgress(1, 2)
	p.StartDate = ptr(last)
	p.LastReviewDate = ptr(last)
	p.ProficiencyLevel = 2

	nextMorning := time.Date(2024, 5, 2, 7, 0, 0, 0, tokyo) // still May 1 in UTC
	_, ok, err := s.UpdateProgress(context.Background(), p, 3, nextMorning)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateProgress_SubsequentReviewIncrements(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	start := at("2024-05-01T10:00:00Z")
	now := at("2024-05-03T10:00:00Z")
	p := models.WordProgress{
		UserID:           1,
		WordID:           2,
		ProficiencyLevel: 2,
		StrategyID:       models.StrategyNormal,
		StartDate:        ptr(start),
		LastReviewDate:   ptr(start.Add(24 * time.Hour)),
		ReviewedTimes:    1,
	}

	updated, ok, err := s.UpdateProgress(context.Background(), p, 3, now)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 2, updated.ReviewedTimes)
	assert.Equal(t, start, *updated.StartDate)
	assert.Equal(t, now, *updated.LastReviewDate)
	assert.Equal(t, now.Add(24*time.Hour), *updated.NextReviewDate)
	assert.Equal(t, models.Level(3), updated.ProficiencyLevel)
	assert.Equal(t, models.StrategyNormal, updated.StrategyID)
	assert.True(t, updated.NextReviewDate.After(*updated.LastReviewDate))
}

func TestUpdateProgress_LapseResetsCycle(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	start := at("2024-05-01T10:00:00Z")
	now := at("2024-05-20T10:00:00Z")
	p := models.WordProgress{
		ProficiencyLevel: 3,
		StrategyID:       models.StrategyDense,
		StartDate:        ptr(start),
		LastReviewDate:   ptr(start.Add(72 * time.Hour)),
		ReviewedTimes:    4,
	}

	updated, ok, err := s.UpdateProgress(context.Background(), p, 0, now)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.StrategyDense, updated.StrategyID, "no downgrade before 90 days")
	assert.Equal(t, now, *updated.StartDate)
	assert.Equal(t, 0, updated.ReviewedTimes)
	assert.Equal(t, now.Add(time.Hour), *updated.NextReviewDate)
	assert.Equal(t, models.Level(0), updated.ProficiencyLevel)
}

func TestUpdateProgress_Downgrade(t *testing.T) {
	now := at("2024-08-01T10:00:00Z")
	tests := []struct {
		name     string
		from     models.StrategyID
		oldLevel models.Level
		newLevel models.Level
		days     int
		expected models.StrategyID
	}{
		{"dense to normal", models.StrategyDense, 3, 0, 92, models.StrategyNormal},
		{"normal to sparse", models.StrategyNormal, 3, 0, 90, models.StrategySparse},
		{"sparse stays", models.StrategySparse, 3, 0, 120, models.StrategySparse},
		{"too early", models.StrategyDense, 3, 0, 89, models.StrategyDense},
		{"old level not 3", models.StrategyDense, 2, 0, 120, models.StrategyDense},
		{"no lapse", models.StrategyDense, 3, 1, 120, models.StrategyDense},
	}

	s := review.NewScheduler(defaultRules)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := now.Add(-time.Duration(tt.days) * 24 * time.Hour)
			p := models.WordProgress{
				ProficiencyLevel: tt.oldLevel,
				StrategyID:       tt.from,
				StartDate:        ptr(start),
				LastReviewDate:   ptr(now.Add(-48 * time.Hour)),
				ReviewedTimes:    3,
			}

			updated, ok, err := s.UpdateProgress(context.Background(), p, tt.newLevel, now)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, updated.StrategyID)
		})
	}
}

func TestUpdateProgress_DowngradeAlsoResets(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	now := at("2024-08-01T10:00:00Z")
	p := models.WordProgress{
		ProficiencyLevel: 3,
		StrategyID:       models.StrategyDense,
		StartDate:        ptr(now.Add(-92 * 24 * time.Hour)),
		LastReviewDate:   ptr(now.Add(-7 * 24 * time.Hour)),
		ReviewedTimes:    6,
	}

	updated, ok, err := s.UpdateProgress(context.Background(), p, 0, now)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.StrategyNormal, updated.StrategyID)
	assert.Equal(t, now, *updated.StartDate)
	assert.Equal(t, 0, updated.ReviewedTimes)
	assert.Equal(t, now.Add(time.Hour), *updated.NextReviewDate, "normal strategy's first interval applies at once")
}

func TestUpdateProgress_InvalidLevel(t *testing.T) {
	s := review.NewScheduler(defaultRules)
	_, ok, err := s.UpdateProgress(context.Background(), models.NewWordProgress(1, 1), 7, time.Now())
	assert.ErrorIs(t, err, review.ErrInvalidLevel)
	assert.False(t, ok)
}

func TestUpdateProgress_StoreFailure(t *testing.T) {
	boom := errors.New("store unreachable")
	s := review.NewScheduler(failingStore{err: boom})
	p := models.NewWordProgress(1, 1)

	got, ok, err := s.UpdateProgress(context.Background(), p, 1, time.Now())
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.Equal(t, p, got)
}
