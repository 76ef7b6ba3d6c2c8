package model

import "time"

// Activity-type tags shared by events and activity ideas.
const (
	ActivityTypePhysical     = "physical"
	ActivityTypeSocial       = "social"
	ActivityTypeIntellectual = "intellectual"
	ActivityTypeSpiritual    = "spiritual"
)

type ActivityIdea struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ActivityTypes []string  `json:"activity_types"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
