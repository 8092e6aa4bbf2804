package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SessionDateLayout is the calendar-day format sessions are keyed by.
const SessionDateLayout = "2006-01-02"

// SessionStatus tracks which phase of a daily session is active.
type SessionStatus int

const (
	SessionNotStarted SessionStatus = iota
	SessionPreTestActive
	SessionLearningActive
	SessionPostTestActive
	SessionComplete
)

func (s SessionStatus) Valid() bool {
	return s >= SessionNotStarted && s <= SessionComplete
}

func (s SessionStatus) String() string {
	switch s {
	case SessionNotStarted:
		return "not_started"
	case SessionPreTestActive:
		return "pre_test_active"
	case SessionLearningActive:
		return "learning_active"
	case SessionPostTestActive:
		return "post_test_active"
	case SessionComplete:
		return "complete"
	default:
		return fmt.Sprintf("SessionStatus(%d)", int(s))
	}
}

// IDList is an ordered list of word ids stored as a JSON array.
type IDList []int64

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	b, err := json.Marshal([]int64(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("IDList: unsupported source type %T", src)
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("IDList: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	*l = ids
	return nil
}

// DailySession is one user's word plan for one calendar day.
type DailySession struct {
	ID               int64         `json:"id" db:"id"`
	UserID           int64         `json:"user_id" db:"user_id"`
	SessionDate      string        `json:"session_date" db:"session_date"`
	ModeID           int64         `json:"mode_id" db:"mode_id"`
	Status           SessionStatus `json:"status" db:"status"`
	PreTestWordIDs   IDList        `json:"pre_test_word_ids" db:"pre_test_word_ids"`
	LearningWordIDs  IDList        `json:"learning_word_ids" db:"learning_word_ids"`
	PostTestWordIDs  IDList        `json:"post_test_word_ids" db:"post_test_word_ids"`
	PreTestProgress  string        `json:"pre_test_progress" db:"pre_test_progress"`
	LearningProgress string        `json:"learning_progress" db:"learning_progress"`
	PostTestProgress string        `json:"post_test_progress" db:"post_test_progress"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}

// SessionDate formats t as a session key in t's own location.
func SessionDate(t time.Time) string {
	return t.Format(SessionDateLayout)
}

// PhaseProgress carries the opaque "k/n" counters kept by the session UI.
type PhaseProgress struct {
	PreTest  string `json:"pre_test"`
	Learning string `json:"learning"`
	PostTest string `json:"post_test"`
}
