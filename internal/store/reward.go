package store

import (
	"database/sql"
	"fmt"

	"github.com/quietvalley/beacon/internal/model"
)

// Defaults applied when adding points creates a new ledger entry.
const (
	defaultRewardDescription = "Young men member"
	defaultRewardEmoji       = "👤"
)

type RewardStore struct {
	db *sql.DB
}

func NewRewardStore(db *sql.DB) *RewardStore {
	return &RewardStore{db: db}
}

const rewardCols = `id, name, points, description, emoji, created_at, updated_at`

func scanReward(scanner interface{ Scan(...any) error }) (*model.Reward, error) {
	var r model.Reward
	err := scanner.Scan(&r.ID, &r.Name, &r.Points, &r.Description, &r.Emoji, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RewardStore) Create(name string, points int, description, emoji string) (*model.Reward, error) {
	if description == "" {
		description = defaultRewardDescription
	}
	if emoji == "" {
		emoji = defaultRewardEmoji
	}

	result, err := s.db.Exec(
		`INSERT INTO rewards (name, points, description, emoji) VALUES (?, ?, ?, ?)`,
		name, points, description, emoji,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reward: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RewardStore) GetByID(id int64) (*model.Reward, error) {
	row := s.db.QueryRow(`SELECT `+rewardCols+` FROM rewards WHERE id = ?`, id)
	r, err := scanReward(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return r, nil
}

func (s *RewardStore) GetByName(name string) (*model.Reward, error) {
	row := s.db.QueryRow(`SELECT `+rewardCols+` FROM rewards WHERE name = ?`, name)
	r, err := scanReward(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward by name: %w", err)
	}
	return r, nil
}

// List returns the ledger ordered by points descending (leaderboard order).
func (s *RewardStore) List() ([]model.Reward, error) {
	rows, err := s.db.Query(`SELECT ` + rewardCols + ` FROM rewards ORDER BY points DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []model.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

// AddPoints adds the delta to the entry with the given name, creating the
// entry with default description and emoji when no such name exists. The
// lookup and write share one transaction so concurrent adds can neither
// duplicate an entry nor lose an increment.
func (s *RewardStore) AddPoints(name string, points int) (*model.Reward, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM rewards WHERE name = ?`, name).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		result, err := tx.Exec(
			`INSERT INTO rewards (name, points, description, emoji) VALUES (?, ?, ?, ?)`,
			name, points, defaultRewardDescription, defaultRewardEmoji,
		)
		if err != nil {
			return nil, fmt.Errorf("insert reward: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find reward by name: %w", err)
	default:
		_, err = tx.Exec(
			`UPDATE rewards SET points = points + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			points, id,
		)
		if err != nil {
			return nil, fmt.Errorf("add points: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *RewardStore) Update(id int64, name string, points int, description, emoji string) (*model.Reward, error) {
	_, err := s.db.Exec(
		`UPDATE rewards SET name = ?, points = ?, description = ?, emoji = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, points, description, emoji, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update reward: %w", err)
	}
	return s.GetByID(id)
}

func (s *RewardStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM rewards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reward: %w", err)
	}
	return nil
}
