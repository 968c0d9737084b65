package models

import "time"

// FeedbackEntry is a visitor feedback submission. Email is optional.
type FeedbackEntry struct {
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email,omitempty"`
	Service   string    `json:"service"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
