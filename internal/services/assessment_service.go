package services

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/wordflow/internal/assessment"
	"github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
)

// maxHistoryLoads bounds concurrent history queries when starting a batch.
const maxHistoryLoads = 4

// AssessmentStep is what a caller needs to present the next question of a word's
// assessment. State is opaque and must be sent back with the answer.
type AssessmentStep struct {
	WordID int64            `json:"word_id"`
	Flow   string           `json:"flow"`
	State  assessment.State `json:"state"`
	Step   assessment.Step  `json:"step"`
}

// AnswerResult is the engine position after an answer. Level, Progress and
// Updated are only set once the assessment reached a level.
type AnswerResult struct {
	WordID   int64                `json:"word_id"`
	State    assessment.State     `json:"state"`
	Step     assessment.Step      `json:"step,omitempty"`
	Terminal bool                 `json:"terminal"`
	Level    *models.Level        `json:"level,omitempty"`
	Progress *models.WordProgress `json:"progress,omitempty"`
	Updated  bool                 `json:"updated"`
}

// AssessmentService drives per-word assessments without holding any session state
type AssessmentService interface {
	Start(ctx context.Context, userID, wordID int64) (*AssessmentStep, error)
	StartBatch(ctx context.Context, userID int64, wordIDs []int64) ([]AssessmentStep, error)
	Answer(ctx context.Context, userID, wordID int64, state string, correct bool, phase models.Phase) (*AnswerResult, error)
}

type assessmentService struct {
	historyRepo repository.HistoryRepository
	wordRepo    repository.WordRepository
	reviews     ReviewService
	spelling    bool
}

// NewAssessmentService creates a new AssessmentService
func NewAssessmentService(
	historyRepo repository.HistoryRepository,
	wordRepo repository.WordRepository,
	reviews ReviewService,
	spelling bool,
) AssessmentService {
	return &assessmentService{
		historyRepo: historyRepo,
		wordRepo:    wordRepo,
		reviews:     reviews,
		spelling:    spelling,
	}
}

func (s *assessmentService) Start(ctx context.Context, userID, wordID int64) (*AssessmentStep, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting assessment: user_id=%d, word_id=%d", userID, wordID)

	engine, err := s.engineFor(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	step := stepOf(wordID, engine)
	log.Debug("word %d assessed with %s, first step %s", wordID, step.Flow, step.Step)
	return &step, nil
}

// StartBatch starts one engine per word, loading histories concurrently. The
// result follows the order of wordIDs; duplicates are collapsed.
func (s *assessmentService) StartBatch(ctx context.Context, userID int64, wordIDs []int64) ([]AssessmentStep, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting assessment batch: user_id=%d, words=%d", userID, len(wordIDs))

	ids := make([]int64, 0, len(wordIDs))
	seen := make(map[int64]struct{}, len(wordIDs))
	for _, id := range wordIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	engines := make([]*assessment.Engine, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxHistoryLoads)
	for i, id := range ids {
		g.Go(func() error {
			e, err := s.engineFor(gctx, userID, id)
			if err != nil {
				return err
			}
			engines[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := assessment.NewBatch()
	for i, id := range ids {
		batch.Add(id, engines[i])
	}

	steps := make([]AssessmentStep, 0, batch.Len())
	for _, id := range batch.WordIDs() {
		e, _ := batch.Get(id)
		steps = append(steps, stepOf(id, e))
	}
	return steps, nil
}

func (s *assessmentService) Answer(ctx context.Context, userID, wordID int64, state string, correct bool, phase models.Phase) (*AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("answering assessment: user_id=%d, word_id=%d, state=%s, correct=%t", userID, wordID, state, correct)

	if !phase.Valid() {
		return nil, errors.NewValidationError("phase", "must be pre_test or post_test")
	}
	current, err := assessment.ParseState(state)
	if err != nil {
		return nil, errors.NewValidationError("state", err.Error())
	}
	history, err := s.history(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	engine, err := assessment.ResumeFor(history, current, s.spelling)
	if err != nil {
		log.Warn("rejected assessment state: word_id=%d, state=%s: %v", wordID, state, err)
		return nil, errors.NewValidationError("state", err.Error())
	}

	if err := engine.Submit(correct); err != nil {
		if stderrors.Is(err, assessment.ErrFlowFinished) {
			log.Warn("answer submitted for finished assessment: word_id=%d, state=%s", wordID, state)
			return nil, errors.NewPreconditionError(err)
		}
		return nil, errors.NewValidationError("state", err.Error())
	}

	result := &AnswerResult{
		WordID:   wordID,
		State:    engine.State(),
		Step:     engine.CurrentStep(),
		Terminal: engine.IsTerminal(),
	}
	if !result.Terminal {
		return result, nil
	}

	level, err := engine.Result()
	if err != nil {
		log.Error("terminal engine without level: %v", err)
		return nil, errors.NewInternalError(err)
	}
	progress, updated, err := s.reviews.CompleteAssessment(ctx, userID, wordID, phase, level)
	if err != nil {
		return nil, err
	}

	result.Level = &level
	result.Progress = progress
	result.Updated = updated
	return result, nil
}

func (s *assessmentService) engineFor(ctx context.Context, userID, wordID int64) (*assessment.Engine, error) {
	history, err := s.history(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	return assessment.New(history, s.spelling), nil
}

// history loads the word's past test levels, failing with not found for unknown words.
func (s *assessmentService) history(ctx context.Context, userID, wordID int64) ([]models.Level, error) {
	log := logger.FromContext(ctx)

	word, err := s.wordRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	history, err := s.historyRepo.Levels(ctx, userID, wordID)
	if err != nil {
		log.Error("failed to load test history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}

func stepOf(wordID int64, e *assessment.Engine) AssessmentStep {
	return AssessmentStep{
		WordID: wordID,
		Flow:   e.Flow().String(),
		State:  e.State(),
		Step:   e.CurrentStep(),
	}
}
