package store

import (
	"database/sql"
	"fmt"

	"github.com/quietvalley/beacon/internal/model"
)

type ActivityIdeaStore struct {
	db *sql.DB
}

func NewActivityIdeaStore(db *sql.DB) *ActivityIdeaStore {
	return &ActivityIdeaStore{db: db}
}

const ideaCols = `id, name, description, activity_types, created_at, updated_at`

func scanIdea(scanner interface{ Scan(...any) error }) (*model.ActivityIdea, error) {
	var idea model.ActivityIdea
	var rawTags string

	err := scanner.Scan(&idea.ID, &idea.Name, &idea.Description, &rawTags, &idea.CreatedAt, &idea.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tags, err := decodeTags(rawTags)
	if err != nil {
		return nil, fmt.Errorf("decode activity types: %w", err)
	}
	idea.ActivityTypes = tags
	return &idea, nil
}

func (s *ActivityIdeaStore) Create(name, description string, activityTypes []string) (*model.ActivityIdea, error) {
	tags, err := encodeTags(activityTypes)
	if err != nil {
		return nil, fmt.Errorf("encode activity types: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO activity_ideas (name, description, activity_types) VALUES (?, ?, ?)`,
		name, description, tags,
	)
	if err != nil {
		return nil, fmt.Errorf("insert activity idea: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ActivityIdeaStore) GetByID(id int64) (*model.ActivityIdea, error) {
	row := s.db.QueryRow(`SELECT `+ideaCols+` FROM activity_ideas WHERE id = ?`, id)
	idea, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get activity idea: %w", err)
	}
	return idea, nil
}

// List returns all activity ideas, newest first.
func (s *ActivityIdeaStore) List() ([]model.ActivityIdea, error) {
	rows, err := s.db.Query(`SELECT ` + ideaCols + ` FROM activity_ideas ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list activity ideas: %w", err)
	}
	defer rows.Close()

	var ideas []model.ActivityIdea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity idea: %w", err)
		}
		ideas = append(ideas, *idea)
	}
	return ideas, rows.Err()
}

func (s *ActivityIdeaStore) Update(id int64, name, description string, activityTypes []string) (*model.ActivityIdea, error) {
	tags, err := encodeTags(activityTypes)
	if err != nil {
		return nil, fmt.Errorf("encode activity types: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE activity_ideas SET name = ?, description = ?, activity_types = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, description, tags, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update activity idea: %w", err)
	}
	return s.GetByID(id)
}

func (s *ActivityIdeaStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM activity_ideas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete activity idea: %w", err)
	}
	return nil
}
