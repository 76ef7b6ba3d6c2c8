package model

import "time"

// Event types. Sacrament meetings are fixed weekly services; everything else
// members schedule is an activity.
const (
	EventTypeSacrament = "sacrament"
	EventTypeActivity  = "activity"
)

type Event struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Location      string     `json:"location"`
	Description   string     `json:"description"`
	Type          string     `json:"type"`
	ActivityTypes []string   `json:"activity_types"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
