// Package export snapshots every collection to pretty-printed JSON files,
// one array per resource, optionally mirroring them to S3-compatible storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/quietvalley/beacon/internal/model"
	"github.com/quietvalley/beacon/internal/store"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration. Upload is skipped
// entirely when the bucket or credentials are absent.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds export manager configuration.
type Config struct {
	Dir  string
	Hour int // local hour of the daily scheduled export
	S3   S3Config
}

// State represents the export manager state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateError   State = "error"
)

// Status holds the current export manager status.
type Status struct {
	State      State      `json:"state"`
	LastExport *time.Time `json:"last_export,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"in_progress"`
}

// Stores bundles the collections the manager snapshots.
type Stores struct {
	Events        *store.EventStore
	Announcements *store.AnnouncementStore
	Rewards       *store.RewardStore
	ActivityIdeas *store.ActivityIdeaStore
}

// Manager writes scheduled and on-demand JSON snapshots.
type Manager struct {
	mu     sync.RWMutex
	cfg    Config
	status Status

	stores Stores
	client s3Client
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a new export manager.
func NewManager(cfg Config, stores Stores, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:    cfg,
		stores: stores,
		logger: logger,
		status: Status{State: StateIdle},
	}

	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		m.client = newS3Client(cfg.S3)
	}

	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Start begins the scheduled export loop.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				if now.Hour() != m.cfg.Hour || now.Minute() != 0 {
					continue
				}
				if err := m.RunNow(ctx); err != nil {
					m.logger.Error("scheduled export", "error", err)
				}
			}
		}
	}()
}

// Stop gracefully stops the export manager.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the current export status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}

// ErrInProgress is returned when an export is requested while one is running.
var ErrInProgress = errors.New("export already in progress")

// RunNow exports every collection immediately. Each snapshot is a
// pretty-printed JSON array written to a temp file and renamed into place.
// Only one export runs at a time; overlapping calls return ErrInProgress.
func (m *Manager) RunNow(ctx context.Context) error {
	m.mu.Lock()
	if m.status.InProgress {
		m.mu.Unlock()
		return ErrInProgress
	}
	m.status = Status{State: StateRunning, InProgress: true}
	m.mu.Unlock()

	if err := os.MkdirAll(m.cfg.Dir, 0o755); err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return fmt.Errorf("create export dir: %w", err)
	}

	snapshots, err := m.collect()
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return err
	}

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	for name, data := range snapshots {
		path := filepath.Join(m.cfg.Dir, name+".json")
		if err := writeFileAtomic(path, data); err != nil {
			m.setStatus(Status{State: StateError, Error: err.Error()})
			return fmt.Errorf("write %s: %w", path, err)
		}

		if m.client != nil {
			key := fmt.Sprintf("exports/%s/%s.json", timestamp, name)
			_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:        aws.String(m.cfg.S3.Bucket),
				Key:           aws.String(key),
				Body:          bytes.NewReader(data),
				ContentLength: aws.Int64(int64(len(data))),
			})
			if err != nil {
				m.setStatus(Status{State: StateError, Error: err.Error()})
				return fmt.Errorf("upload %s to s3: %w", key, err)
			}
		}
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastExport: &now})
	return nil
}

func (m *Manager) collect() (map[string][]byte, error) {
	events, err := m.stores.Events.List()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	announcements, err := m.stores.Announcements.List()
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	rewards, err := m.stores.Rewards.List()
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	ideas, err := m.stores.ActivityIdeas.List()
	if err != nil {
		return nil, fmt.Errorf("list activity ideas: %w", err)
	}

	// Empty collections render as [], never null.
	if events == nil {
		events = []model.Event{}
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	if ideas == nil {
		ideas = []model.ActivityIdea{}
	}

	out := make(map[string][]byte, 4)
	for name, v := range map[string]any{
		"events":         events,
		"announcements":  announcements,
		"rewards":        rewards,
		"activity_ideas": ideas,
	} {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
