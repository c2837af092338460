package entity

import "time"

// Session is the persisted form of one game: every snapshot plus the current step.
type Session struct {
	ID        string    `json:"id"`
	History   []Board   `json:"history"`
	Step      int       `json:"step"`
	UpdatedAt time.Time `json:"updated_at"`
}
