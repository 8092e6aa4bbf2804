package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
	"github.com/vytor/wordflow/internal/review"
)

// CatalogService handles the reference data: words, learning modes and review strategies
type CatalogService interface {
	ListStrategies(ctx context.Context) ([]models.ReviewStrategy, error)
	UpdateStrategy(ctx context.Context, id models.StrategyID, intervalRule string) (*models.ReviewStrategy, error)
	ListModes(ctx context.Context) ([]models.LearningMode, error)
	AddWord(ctx context.Context, text, translation string) (*models.Word, error)
	ImportWords(ctx context.Context, words []models.Word) (created, updated int, err error)
	CountWords(ctx context.Context) (int, error)
}

type catalogService struct {
	wordRepo     repository.WordRepository
	modeRepo     repository.ModeRepository
	strategyRepo repository.StrategyRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(wordRepo repository.WordRepository, modeRepo repository.ModeRepository, strategyRepo repository.StrategyRepository) CatalogService {
	return &catalogService{
		wordRepo:     wordRepo,
		modeRepo:     modeRepo,
		strategyRepo: strategyRepo,
	}
}

func (s *catalogService) ListStrategies(ctx context.Context) ([]models.ReviewStrategy, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing strategies")

	strategies, err := s.strategyRepo.List(ctx)
	if err != nil {
		log.Error("failed to list strategies: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if strategies == nil {
		strategies = []models.ReviewStrategy{}
	}
	return strategies, nil
}

// UpdateStrategy replaces the interval rule of a known strategy. Every token must be
// valid and the offsets strictly ascending.
func (s *catalogService) UpdateStrategy(ctx context.Context, id models.StrategyID, intervalRule string) (*models.ReviewStrategy, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating strategy %s: %q", id, intervalRule)

	if !id.Valid() {
		return nil, errors.NewNotFoundError("strategy", id)
	}
	if err := review.ValidateIntervalRule(intervalRule); err != nil {
		return nil, errors.NewValidationError("interval_rule", err.Error())
	}

	strategy := models.ReviewStrategy{ID: id, IntervalRule: intervalRule}
	if err := s.strategyRepo.Save(ctx, strategy); err != nil {
		log.Error("failed to save strategy: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &strategy, nil
}

func (s *catalogService) ListModes(ctx context.Context) ([]models.LearningMode, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing learning modes")

	modes, err := s.modeRepo.List(ctx)
	if err != nil {
		log.Error("failed to list modes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if modes == nil {
		modes = []models.LearningMode{}
	}
	return modes, nil
}

func (s *catalogService) AddWord(ctx context.Context, text, translation string) (*models.Word, error) {
	log := logger.FromContext(ctx)
	text = strings.TrimSpace(text)
	translation = strings.TrimSpace(translation)
	log.Debug("adding word: %q", text)

	if text == "" {
		return nil, errors.NewValidationError("text", "cannot be empty")
	}

	id, err := s.wordRepo.Insert(ctx, models.Word{Text: text, Translation: translation})
	if err != nil {
		if stderrors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.NewValidationError("text", "word already exists")
		}
		log.Error("failed to insert word: %v", err)
		return nil, errors.NewInternalError(err)
	}

	word, err := s.wordRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to reload word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

// ImportWords upserts words by text. Rows with empty text are skipped.
func (s *catalogService) ImportWords(ctx context.Context, words []models.Word) (int, int, error) {
	log := logger.FromContext(ctx)

	clean := make([]models.Word, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		w.Translation = strings.TrimSpace(w.Translation)
		if w.Text == "" {
			continue
		}
		clean = append(clean, w)
	}
	log.Info("importing %d words (%d skipped)", len(clean), len(words)-len(clean))
	if len(clean) == 0 {
		return 0, 0, nil
	}

	created, updated, err := s.wordRepo.UpsertBatch(ctx, clean)
	if err != nil {
		log.Error("failed to import words: %v", err)
		return 0, 0, errors.NewInternalError(err)
	}
	return created, updated, nil
}

func (s *catalogService) CountWords(ctx context.Context) (int, error) {
	n, err := s.wordRepo.Count(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to count words: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}
