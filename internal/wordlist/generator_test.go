package wordlist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/testutil/mocks"
	"github.com/vytor/wordflow/internal/wordlist"
)

var now = time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func reviewed(wordID int64, last, next time.Time) models.WordProgress {
	p := models.NewWordProgress(1, wordID)
	p.LastReviewDate = at(last)
	p.NextReviewDate = at(next)
	return p
}

type fixture struct {
	modes    *mocks.MockModeRepository
	progress *mocks.MockProgressRepository
	words    *mocks.MockWordRepository
	gen      *wordlist.Generator
}

func newFixture() *fixture {
	f := &fixture{
		modes:    new(mocks.MockModeRepository),
		progress: new(mocks.MockProgressRepository),
		words:    new(mocks.MockWordRepository),
	}
	f.gen = wordlist.NewGenerator(f.modes, f.progress, f.words).WithClock(func() time.Time { return now })
	return f
}

func TestGenerate_DueWordsThenNew(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.modes.On("Get", ctx, int64(2)).Return(&models.LearningMode{ID: 2, WordCount: 3}, nil)
	f.progress.On("ListByUser", ctx, int64(1)).Return([]models.WordProgress{
		reviewed(1, now.Add(-48*time.Hour), now.Add(-time.Hour)),
		reviewed(2, now.Add(-time.Hour), now.Add(5*time.Hour)),
		reviewed(3, now.Add(-72*time.Hour), now),
	}, nil)
	f.words.On("Unseen", ctx, int64(1), 1).Return([]models.Word{{ID: 99, Text: "new"}}, nil)

	lists := f.gen.Generate(ctx, 1, 2)

	assert.Equal(t, []int64{1, 3}, lists.PreTest)
	assert.Equal(t, []int64{1, 3, 99}, lists.Learning)
	assert.Equal(t, lists.Learning, lists.PostTest)
	f.words.AssertExpectations(t)
}

func TestGenerate_QuotaAlreadyFilled(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.modes.On("Get", ctx, int64(1)).Return(&models.LearningMode{ID: 1, WordCount: 1}, nil)
	f.progress.On("ListByUser", ctx, int64(1)).Return([]models.WordProgress{
		reviewed(4, now.Add(-48*time.Hour), now.Add(-time.Hour)),
		reviewed(5, now.Add(-48*time.Hour), now.Add(-time.Minute)),
	}, nil)

	lists := f.gen.Generate(ctx, 1, 1)

	assert.Equal(t, []int64{4, 5}, lists.PreTest)
	assert.Equal(t, []int64{4, 5}, lists.Learning)
	f.words.AssertNotCalled(t, "Unseen", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_NoProgressAllNew(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.modes.On("Get", ctx, int64(1)).Return(&models.LearningMode{ID: 1, WordCount: 2}, nil)
	f.progress.On("ListByUser", ctx, int64(1)).Return([]models.WordProgress{}, nil)
	f.words.On("Unseen", ctx, int64(1), 2).Return([]models.Word{{ID: 7}, {ID: 8}}, nil)

	lists := f.gen.Generate(ctx, 1, 1)

	assert.Empty(t, lists.PreTest)
	assert.NotNil(t, lists.PreTest)
	assert.Equal(t, []int64{7, 8}, lists.Learning)
	assert.Equal(t, []int64{7, 8}, lists.PostTest)
}

func TestGenerate_FailuresYieldEmptyLists(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("store unavailable")
	emptyLists := wordlist.Lists{PreTest: []int64{}, Learning: []int64{}, PostTest: []int64{}}

	t.Run("mode lookup error", func(t *testing.T) {
		f := newFixture()
		f.modes.On("Get", ctx, int64(1)).Return(nil, boom)
		assert.Equal(t, emptyLists, f.gen.Generate(ctx, 1, 1))
		f.progress.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})

	t.Run("mode missing", func(t *testing.T) {
		f := newFixture()
		f.modes.On("Get", ctx, int64(9)).Return(nil, nil)
		assert.Equal(t, emptyLists, f.gen.Generate(ctx, 1, 9))
	})

	t.Run("progress lookup error", func(t *testing.T) {
		f := newFixture()
		f.modes.On("Get", ctx, int64(1)).Return(&models.LearningMode{ID: 1, WordCount: 5}, nil)
		f.progress.On("ListByUser", ctx, int64(1)).Return(nil, boom)
		assert.Equal(t, emptyLists, f.gen.Generate(ctx, 1, 1))
	})

	t.Run("unseen lookup error", func(t *testing.T) {
		f := newFixture()
		f.modes.On("Get", ctx, int64(1)).Return(&models.LearningMode{ID: 1, WordCount: 5}, nil)
		f.progress.On("ListByUser", ctx, int64(1)).Return([]models.WordProgress{
			reviewed(1, now.Add(-48*time.Hour), now.Add(-time.Hour)),
		}, nil)
		f.words.On("Unseen", ctx, int64(1), 4).Return(nil, boom)
		assert.Equal(t, emptyLists, f.gen.Generate(ctx, 1, 1))
	})
}

func TestIsDue(t *testing.T) {
	never := models.NewWordProgress(1, 1)
	assert.True(t, wordlist.IsDue(never, now))

	stale := models.NewWordProgress(1, 2)
	stale.LastReviewDate = at(now.Add(-25 * time.Hour))
	assert.True(t, wordlist.IsDue(stale, now))

	recent := models.NewWordProgress(1, 3)
	recent.LastReviewDate = at(now.Add(-2 * time.Hour))
	assert.False(t, wordlist.IsDue(recent, now))

	// the due timestamp wins over staleness
	scheduled := reviewed(4, now.Add(-30*24*time.Hour), now.Add(time.Hour))
	assert.False(t, wordlist.IsDue(scheduled, now))

	exact := reviewed(5, now.Add(-time.Hour), now)
	assert.True(t, wordlist.IsDue(exact, now))
}

func TestDueWordIDs_RemovesDuplicates(t *testing.T) {
	rows := []models.WordProgress{
		reviewed(3, now.Add(-48*time.Hour), now.Add(-time.Hour)),
		reviewed(1, now.Add(-48*time.Hour), now.Add(-time.Hour)),
		reviewed(3, now.Add(-48*time.Hour), now.Add(-time.Hour)),
	}
	assert.Equal(t, []int64{3, 1}, wordlist.DueWordIDs(rows, now))
	assert.Equal(t, []int64{}, wordlist.DueWordIDs(nil, now))
}
