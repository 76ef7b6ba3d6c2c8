package model

import "time"

// Reward is a participant's entry in the points ledger. Name doubles as the
// upsert key for point accumulation.
type Reward struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
	Emoji       string    `json:"emoji"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
