package models

import "time"

type Word struct {
	ID          int64     `json:"id" db:"id"`
	Text        string    `json:"text" db:"text"`
	Translation string    `json:"translation" db:"translation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// LearningMode fixes how many words a daily session targets.
type LearningMode struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	WordCount int    `json:"word_count" db:"word_count"`
}
