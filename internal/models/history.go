package models

import "time"

// Phase is the part of a daily session a test event belongs to.
type Phase string

const (
	PhasePreTest  Phase = "pre_test"
	PhasePostTest Phase = "post_test"
)

func (p Phase) Valid() bool {
	return p == PhasePreTest || p == PhasePostTest
}

// TestHistoryEntry records the level produced by one assessment run.
type TestHistoryEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	WordID    int64     `json:"word_id" db:"word_id"`
	Phase     Phase     `json:"phase" db:"phase"`
	TestDate  time.Time `json:"test_date" db:"test_date"`
	TestLevel Level     `json:"test_level" db:"test_level"`
}
