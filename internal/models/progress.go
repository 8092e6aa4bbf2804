package models

import "time"

// Level is a word's proficiency tier, 0 (never recalled) through 4 (mastered).
type Level int

const (
	MinLevel Level = 0
	MaxLevel Level = 4
)

// Valid reports whether l is within MinLevel..MaxLevel.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// WordProgress is the per user and word scheduling record.
type WordProgress struct {
	UserID           int64      `json:"user_id" db:"user_id"`
	WordID           int64      `json:"word_id" db:"word_id"`
	ProficiencyLevel Level      `json:"proficiency_level" db:"proficiency_level"`
	IsLongDifficult  bool       `json:"is_long_difficult" db:"is_long_difficult"`
	StrategyID       StrategyID `json:"strategy_id" db:"strategy_id"`
	StartDate        *time.Time `json:"start_date" db:"start_date"`
	LastReviewDate   *time.Time `json:"last_review_date" db:"last_review_date"`
	ReviewedTimes    int        `json:"reviewed_times" db:"reviewed_times"`
	NextReviewDate   *time.Time `json:"next_review_date" db:"next_review_date"`
}

// NewWordProgress returns the record for a word the user has never reviewed.
func NewWordProgress(userID, wordID int64) WordProgress {
	return WordProgress{
		UserID:     userID,
		WordID:     wordID,
		StrategyID: StrategyNormal,
	}
}
