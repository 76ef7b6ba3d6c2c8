package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens a SQLite database at the given path and runs migrations.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// Seed inserts the default events and rewards when their tables are empty,
// mirroring first-run behavior. Dates for the seed events are relative to the
// current day: sacrament meeting next occurs at 9:00 today, the weekly
// activity three days out at 19:00.
func Seed(db *sql.DB) error {
	var eventCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&eventCount); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if eventCount == 0 {
		now := time.Now()
		sacrament := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
		activity := time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, now.Location()).AddDate(0, 0, 3)

		_, err := db.Exec(
			`INSERT INTO events (name, start_time, location, description, type) VALUES
			 (?, ?, 'Chapel', 'Please arrive by 8:45 AM to help pass the sacrament', 'sacrament'),
			 (?, ?, 'Cultural Hall', 'Weekly young men activity', 'activity')`,
			"Sacrament Meeting", sacrament.UTC(), "Young Men Activity", activity.UTC(),
		)
		if err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
	}

	var rewardCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM rewards`).Scan(&rewardCount); err != nil {
		return fmt.Errorf("count rewards: %w", err)
	}
	if rewardCount == 0 {
		_, err := db.Exec(
			`INSERT INTO rewards (name, points, description, emoji) VALUES
			 ('Early Bird Champion', 250, 'Most on-time arrivals', '🥇'),
			 ('Activity Organizer', 200, 'Event planning help', '🥈'),
			 ('Perfect Attendance', 180, 'Never missed an activity', '🥉')`,
		)
		if err != nil {
			return fmt.Errorf("seed rewards: %w", err)
		}
	}

	return nil
}
