package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
	"github.com/vytor/wordflow/internal/testutil/mocks"
	"github.com/vytor/wordflow/internal/wordlist"
)

const today = "2024-04-10"

type sessionFixture struct {
	sessions *mocks.MockSessionRepository
	modes    *mocks.MockModeRepository
	progress *mocks.MockProgressRepository
	words    *mocks.MockWordRepository
	svc      SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		sessions: new(mocks.MockSessionRepository),
		modes:    new(mocks.MockModeRepository),
		progress: new(mocks.MockProgressRepository),
		words:    new(mocks.MockWordRepository),
	}
	gen := wordlist.NewGenerator(f.modes, f.progress, f.words).WithClock(fixedClock())
	f.svc = NewSessionService(f.sessions, f.modes, gen, 2, fixedClock())
	return f
}

func TestGetOrCreateToday_Existing(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	existing := &models.DailySession{ID: 4, UserID: 1, SessionDate: today, ModeID: 1}
	f.sessions.On("Get", ctx, int64(1), today).Return(existing, nil)

	got, err := f.svc.GetOrCreateToday(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, existing, got)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreateToday_BuildsLists(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	created := &models.DailySession{ID: 9, UserID: 1, SessionDate: today, ModeID: 2,
		PreTestWordIDs: models.IDList{}, LearningWordIDs: models.IDList{11, 12}, PostTestWordIDs: models.IDList{11, 12}}
	f.sessions.On("Get", ctx, int64(1), today).Return(nil, nil).Once()
	f.sessions.On("Get", ctx, int64(1), today).Return(created, nil).Once()
	f.modes.On("Get", ctx, int64(2)).Return(&models.LearningMode{ID: 2, WordCount: 2}, nil)
	f.progress.On("ListByUser", ctx, int64(1)).Return([]models.WordProgress{}, nil)
	f.words.On("Unseen", ctx, int64(1), 2).Return([]models.Word{{ID: 11}, {ID: 12}}, nil)
	f.sessions.On("Create", ctx, mock.MatchedBy(func(s models.DailySession) bool {
		return s.ModeID == 2 && s.SessionDate == today && s.Status == models.SessionNotStarted &&
			len(s.LearningWordIDs) == 2 && len(s.PostTestWordIDs) == 2 && len(s.PreTestWordIDs) == 0
	})).Return(int64(9), nil)

	// mode 0 falls back to the default mode
	got, err := f.svc.GetOrCreateToday(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	f.sessions.AssertExpectations(t)
}

func TestGetOrCreateToday_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	other := &models.DailySession{ID: 5, UserID: 1, SessionDate: today, ModeID: 2}
	f.sessions.On("Get", ctx, int64(1), today).Return(nil, nil).Once()
	f.sessions.On("Get", ctx, int64(1), today).Return(other, nil).Once()
	f.modes.On("Get", ctx, int64(2)).Return(&models.LearningMode{ID: 2, WordCount: 0}, nil)
	f.progress.On("ListByUser", ctx, int64(1)).Return([]models.WordProgress{}, nil)
	f.sessions.On("Create", ctx, mock.Anything).Return(int64(0), repository.ErrAlreadyExists)

	got, err := f.svc.GetOrCreateToday(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
}

func TestGetOrCreateToday_UnknownMode(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	f.sessions.On("Get", ctx, int64(1), today).Return(nil, nil)
	f.modes.On("Get", ctx, int64(42)).Return(nil, nil)

	_, err := f.svc.GetOrCreateToday(ctx, 1, 42)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.AsAppError(err).Code)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	session := func(status models.SessionStatus) *models.DailySession {
		return &models.DailySession{ID: 1, UserID: 1, SessionDate: today, Status: status}
	}

	t.Run("forward", func(t *testing.T) {
		f := newSessionFixture()
		f.sessions.On("Get", ctx, int64(1), today).Return(session(models.SessionPreTestActive), nil)
		f.sessions.On("UpdateStatus", ctx, int64(1), today, models.SessionPostTestActive).Return(nil)

		got, err := f.svc.UpdateStatus(ctx, 1, models.SessionPostTestActive)
		require.NoError(t, err)
		assert.Equal(t, models.SessionPostTestActive, got.Status)
	})

	t.Run("backward rejected", func(t *testing.T) {
		f := newSessionFixture()
		f.sessions.On("Get", ctx, int64(1), today).Return(session(models.SessionLearningActive), nil)

		_, err := f.svc.UpdateStatus(ctx, 1, models.SessionPreTestActive)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.AsAppError(err).Code)
		f.sessions.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newSessionFixture()
		f.sessions.On("Get", ctx, int64(1), today).Return(session(models.SessionComplete), nil)

		got, err := f.svc.UpdateStatus(ctx, 1, models.SessionComplete)
		require.NoError(t, err)
		assert.Equal(t, models.SessionComplete, got.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newSessionFixture()
		_, err := f.svc.UpdateStatus(ctx, 1, models.SessionStatus(9))
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.AsAppError(err).Code)
	})

	t.Run("no session today", func(t *testing.T) {
		f := newSessionFixture()
		f.sessions.On("Get", ctx, int64(1), today).Return(nil, nil)
		_, err := f.svc.UpdateStatus(ctx, 1, models.SessionComplete)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.AsAppError(err).Code)
	})
}

func TestUpdateProgress(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	progress := models.PhaseProgress{PreTest: "2/2", Learning: "0/5"}

	f.sessions.On("Get", ctx, int64(1), today).Return(&models.DailySession{UserID: 1, SessionDate: today}, nil)
	f.sessions.On("UpdateProgress", ctx, int64(1), today, progress).Return(nil)

	got, err := f.svc.UpdateProgress(ctx, 1, progress)
	require.NoError(t, err)
	assert.Equal(t, "2/2", got.PreTestProgress)
	assert.Equal(t, "0/5", got.LearningProgress)
}
