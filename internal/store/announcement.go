package store

import (
	"database/sql"
	"fmt"

	"github.com/quietvalley/beacon/internal/model"
)

type AnnouncementStore struct {
	db *sql.DB
}

func NewAnnouncementStore(db *sql.DB) *AnnouncementStore {
	return &AnnouncementStore{db: db}
}

const announcementCols = `id, title, content, priority, created_at`

func scanAnnouncement(scanner interface{ Scan(...any) error }) (*model.Announcement, error) {
	var a model.Announcement
	err := scanner.Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AnnouncementStore) Create(title, content, priority string) (*model.Announcement, error) {
	result, err := s.db.Exec(
		`INSERT INTO announcements (title, content, priority) VALUES (?, ?, ?)`,
		title, content, priority,
	)
	if err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *AnnouncementStore) GetByID(id int64) (*model.Announcement, error) {
	row := s.db.QueryRow(`SELECT `+announcementCols+` FROM announcements WHERE id = ?`, id)
	a, err := scanAnnouncement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	return a, nil
}

// List returns all announcements, newest first.
func (s *AnnouncementStore) List() ([]model.Announcement, error) {
	rows, err := s.db.Query(`SELECT ` + announcementCols + ` FROM announcements ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, *a)
	}
	return announcements, rows.Err()
}

func (s *AnnouncementStore) Update(id int64, title, content, priority string) (*model.Announcement, error) {
	_, err := s.db.Exec(
		`UPDATE announcements SET title = ?, content = ?, priority = ? WHERE id = ?`,
		title, content, priority, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return s.GetByID(id)
}

func (s *AnnouncementStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
