package database

import (
	"time"
)

// Suppression is one journaled engine decision.
type Suppression struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Reason    string    `json:"reason"`
	Trigger   string    `json:"trigger"`
	Title     string    `json:"title"`
	Channel   string    `json:"channel"`
	Exempted  bool      `json:"exempted"`
	CreatedAt time.Time `json:"created_at"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}
