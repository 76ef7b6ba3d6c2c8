package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/quietvalley/beacon/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, name, start_time, end_time, location, description, type, activity_types, created_at, updated_at`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var endTime sql.NullTime
	var rawTags string

	err := scanner.Scan(
		&e.ID, &e.Name, &e.StartTime, &endTime, &e.Location,
		&e.Description, &e.Type, &rawTags, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		e.EndTime = &endTime.Time
	}
	tags, err := decodeTags(rawTags)
	if err != nil {
		return nil, fmt.Errorf("decode activity types: %w", err)
	}
	e.ActivityTypes = tags
	return &e, nil
}

func (s *EventStore) Create(name string, startTime time.Time, endTime *time.Time, location, description, eventType string, activityTypes []string) (*model.Event, error) {
	var end sql.NullTime
	if endTime != nil {
		end = sql.NullTime{Time: endTime.UTC(), Valid: true}
	}
	tags, err := encodeTags(activityTypes)
	if err != nil {
		return nil, fmt.Errorf("encode activity types: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO events (name, start_time, end_time, location, description, type, activity_types)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, startTime.UTC(), end, location, description, eventType, tags,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// List returns all events ordered by start time ascending.
func (s *EventStore) List() ([]model.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventCols + ` FROM events ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Update(id int64, name string, startTime time.Time, endTime *time.Time, location, description, eventType string, activityTypes []string) (*model.Event, error) {
	var end sql.NullTime
	if endTime != nil {
		end = sql.NullTime{Time: endTime.UTC(), Valid: true}
	}
	tags, err := encodeTags(activityTypes)
	if err != nil {
		return nil, fmt.Errorf("encode activity types: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE events
		 SET name = ?, start_time = ?, end_time = ?, location = ?, description = ?, type = ?, activity_types = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, startTime.UTC(), end, location, description, eventType, tags, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
