package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
	"github.com/vytor/wordflow/internal/review"
)

// ReviewService records assessment outcomes and keeps word progress on schedule
type ReviewService interface {
	CompleteAssessment(ctx context.Context, userID, wordID int64, phase models.Phase, level models.Level) (*models.WordProgress, bool, error)
	ListProgress(ctx context.Context, userID int64) ([]models.WordProgress, error)
	SetLongDifficult(ctx context.Context, userID, wordID int64, longDifficult bool) error
	ListHistory(ctx context.Context, userID, wordID int64) ([]models.TestHistoryEntry, error)
}

type reviewService struct {
	progressRepo repository.ProgressRepository
	historyRepo  repository.HistoryRepository
	wordRepo     repository.WordRepository
	scheduler    *review.Scheduler
	now          Clock
	locks        *keyedMutex
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	progressRepo repository.ProgressRepository,
	historyRepo repository.HistoryRepository,
	wordRepo repository.WordRepository,
	scheduler *review.Scheduler,
	now Clock,
) ReviewService {
	return &reviewService{
		progressRepo: progressRepo,
		historyRepo:  historyRepo,
		wordRepo:     wordRepo,
		scheduler:    scheduler,
		now:          now,
		locks:        newKeyedMutex(),
	}
}

// CompleteAssessment applies the outcome to the word's progress and records it in the
// word's test history. Nothing is stored unless scheduling succeeds, and the history
// entry and the progress row are written together. The bool result is false when the
// word was already reviewed today and progress was left as it was.
func (s *reviewService) CompleteAssessment(ctx context.Context, userID, wordID int64, phase models.Phase, level models.Level) (*models.WordProgress, bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing assessment: user_id=%d, word_id=%d, phase=%s, level=%d", userID, wordID, phase, level)

	if !phase.Valid() {
		return nil, false, errors.NewValidationError("phase", "must be pre_test or post_test")
	}
	if !level.Valid() {
		return nil, false, errors.NewValidationError("level", "must be between 0 and 4")
	}

	unlock := s.locks.Lock(wordKey{userID: userID, wordID: wordID})
	defer unlock()

	reviewTime := s.now()
	current, err := s.progressRepo.Get(ctx, userID, wordID)
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, false, errors.NewInternalError(err)
	}
	if current == nil {
		fresh := models.NewWordProgress(userID, wordID)
		current = &fresh
	}

	next, updated, err := s.scheduler.UpdateProgress(ctx, *current, level, reviewTime)
	if err != nil {
		if stderrors.Is(err, review.ErrInvalidLevel) {
			return nil, false, errors.NewValidationError("level", err.Error())
		}
		log.Error("failed to schedule review: %v", err)
		return nil, false, errors.NewInternalError(err)
	}

	var save *models.WordProgress
	if updated {
		save = &next
	}
	entry := models.TestHistoryEntry{
		UserID:    userID,
		WordID:    wordID,
		Phase:     phase,
		TestDate:  reviewTime,
		TestLevel: level,
	}
	if _, err := s.historyRepo.Record(ctx, entry, save); err != nil {
		log.Error("failed to record assessment: %v", err)
		return nil, false, errors.NewInternalError(err)
	}

	if !updated {
		log.Debug("progress unchanged for word %d", wordID)
		return &next, false, nil
	}
	log.Info("word %d scheduled: level=%d, strategy=%s, reviewed=%d", wordID, next.ProficiencyLevel, next.StrategyID, next.ReviewedTimes)
	return &next, true, nil
}

func (s *reviewService) ListProgress(ctx context.Context, userID int64) ([]models.WordProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing progress: user_id=%d", userID)

	rows, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rows == nil {
		rows = []models.WordProgress{}
	}
	return rows, nil
}

func (s *reviewService) SetLongDifficult(ctx context.Context, userID, wordID int64, longDifficult bool) error {
	log := logger.FromContext(ctx)
	log.Debug("setting long-difficult: user_id=%d, word_id=%d, value=%t", userID, wordID, longDifficult)

	word, err := s.wordRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return errors.NewInternalError(err)
	}
	if word == nil {
		return errors.NewNotFoundError("word", wordID)
	}

	unlock := s.locks.Lock(wordKey{userID: userID, wordID: wordID})
	defer unlock()

	if err := s.progressRepo.SetLongDifficult(ctx, userID, wordID, longDifficult); err != nil {
		log.Error("failed to set long-difficult flag: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// ListHistory returns the word's test outcomes, oldest first.
func (s *reviewService) ListHistory(ctx context.Context, userID, wordID int64) ([]models.TestHistoryEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing test history: user_id=%d, word_id=%d", userID, wordID)

	word, err := s.wordRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	entries, err := s.historyRepo.List(ctx, userID, wordID)
	if err != nil {
		log.Error("failed to list test history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.TestHistoryEntry{}
	}
	return entries, nil
}
