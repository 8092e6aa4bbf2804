package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
	"github.com/vytor/wordflow/internal/wordlist"
)

// SessionService manages each user's daily session
type SessionService interface {
	GetOrCreateToday(ctx context.Context, userID, modeID int64) (*models.DailySession, error)
	UpdateStatus(ctx context.Context, userID int64, status models.SessionStatus) (*models.DailySession, error)
	UpdateProgress(ctx context.Context, userID int64, progress models.PhaseProgress) (*models.DailySession, error)
}

type sessionService struct {
	sessionRepo   repository.SessionRepository
	modeRepo      repository.ModeRepository
	generator     *wordlist.Generator
	defaultModeID int64
	now           Clock
}

// NewSessionService creates a new SessionService. defaultModeID is used when a
// caller does not name a learning mode.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	modeRepo repository.ModeRepository,
	generator *wordlist.Generator,
	defaultModeID int64,
	now Clock,
) SessionService {
	return &sessionService{
		sessionRepo:   sessionRepo,
		modeRepo:      modeRepo,
		generator:     generator,
		defaultModeID: defaultModeID,
		now:           now,
	}
}

// GetOrCreateToday returns today's session, building its word lists on first use.
// An existing session is returned as stored even if modeID differs.
func (s *sessionService) GetOrCreateToday(ctx context.Context, userID, modeID int64) (*models.DailySession, error) {
	log := logger.FromContext(ctx)
	date := models.SessionDate(s.now())
	log.Debug("getting today's session: user_id=%d, date=%s", userID, date)

	existing, err := s.sessionRepo.Get(ctx, userID, date)
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return existing, nil
	}

	if modeID == 0 {
		modeID = s.defaultModeID
	}
	mode, err := s.modeRepo.Get(ctx, modeID)
	if err != nil {
		log.Error("failed to get mode: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if mode == nil {
		return nil, errors.NewNotFoundError("learning mode", modeID)
	}

	lists := s.generator.Generate(ctx, userID, mode.ID)
	session := models.DailySession{
		UserID:          userID,
		SessionDate:     date,
		ModeID:          mode.ID,
		Status:          models.SessionNotStarted,
		PreTestWordIDs:  lists.PreTest,
		LearningWordIDs: lists.Learning,
		PostTestWordIDs: lists.PostTest,
	}
	if _, err := s.sessionRepo.Create(ctx, session); err != nil && !stderrors.Is(err, repository.ErrAlreadyExists) {
		log.Error("failed to create session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.sessionRepo.Get(ctx, userID, date)
	if err != nil {
		log.Error("failed to reload session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if created == nil {
		return nil, errors.NewInternalError(fmt.Errorf("session for user %d on %s vanished after create", userID, date))
	}
	log.Info("session ready for user %d on %s: pre_test=%d, learning=%d", userID, date, len(created.PreTestWordIDs), len(created.LearningWordIDs))
	return created, nil
}

// UpdateStatus moves today's session forward. Skipping phases is allowed; going
// back is not.
func (s *sessionService) UpdateStatus(ctx context.Context, userID int64, status models.SessionStatus) (*models.DailySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating session status: user_id=%d, status=%s", userID, status)

	if !status.Valid() {
		return nil, errors.NewValidationError("status", "must be between 0 and 4")
	}

	session, err := s.today(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status < session.Status {
		return nil, errors.NewValidationError("status", fmt.Sprintf("cannot move from %s back to %s", session.Status, status))
	}
	if status == session.Status {
		return session, nil
	}

	if err := s.sessionRepo.UpdateStatus(ctx, userID, session.SessionDate, status); err != nil {
		return nil, s.writeError(ctx, userID, err)
	}
	session.Status = status
	return session, nil
}

func (s *sessionService) UpdateProgress(ctx context.Context, userID int64, progress models.PhaseProgress) (*models.DailySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating session progress: user_id=%d, progress=%+v", userID, progress)

	session, err := s.today(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.UpdateProgress(ctx, userID, session.SessionDate, progress); err != nil {
		return nil, s.writeError(ctx, userID, err)
	}
	session.PreTestProgress = progress.PreTest
	session.LearningProgress = progress.Learning
	session.PostTestProgress = progress.PostTest
	return session, nil
}

func (s *sessionService) today(ctx context.Context, userID int64) (*models.DailySession, error) {
	date := models.SessionDate(s.now())
	session, err := s.sessionRepo.Get(ctx, userID, date)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", fmt.Sprintf("user %d on %s", userID, date))
	}
	return session, nil
}

func (s *sessionService) writeError(ctx context.Context, userID int64, err error) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewNotFoundError("session", fmt.Sprintf("user %d today", userID))
	}
	logger.FromContext(ctx).Error("failed to update session: %v", err)
	return errors.NewInternalError(err)
}
