package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/quietvalley/beacon/internal/database"
	"github.com/quietvalley/beacon/internal/model"
	"github.com/quietvalley/beacon/internal/store"
)

type mockS3Client struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (m *mockS3Client) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.keys = append(m.keys, *input.Key)
	return &s3.PutObjectOutput{}, nil
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testStores(t *testing.T) Stores {
	t.Helper()
	db := setupTestDB(t)
	return Stores{
		Events:        store.NewEventStore(db),
		Announcements: store.NewAnnouncementStore(db),
		Rewards:       store.NewRewardStore(db),
		ActivityIdeas: store.NewActivityIdeaStore(db),
	}
}

func testManager(t *testing.T) (*Manager, Stores, string) {
	t.Helper()
	dir := t.TempDir()
	stores := testStores(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(Config{Dir: dir, Hour: 3}, stores, logger)
	return m, stores, dir
}

func TestRunNowWritesAllSnapshots(t *testing.T) {
	m, stores, dir := testManager(t)

	if _, err := stores.Rewards.Create("Daniel", 80, "", ""); err != nil {
		t.Fatalf("create reward: %v", err)
	}

	if err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("run export: %v", err)
	}

	for _, name := range []string{"events", "announcements", "rewards", "activity_ideas"} {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if len(data) == 0 || data[0] != '[' {
			t.Errorf("%s.json should contain a JSON array, got %q", name, data[:min(len(data), 20)])
		}
	}

	var rewards []model.Reward
	data, _ := os.ReadFile(filepath.Join(dir, "rewards.json"))
	if err := json.Unmarshal(data, &rewards); err != nil {
		t.Fatalf("unmarshal rewards snapshot: %v", err)
	}
	if len(rewards) != 1 || rewards[0].Name != "Daniel" {
		t.Errorf("snapshot = %+v", rewards)
	}
}

func TestRunNowEmptyCollectionsAreArrays(t *testing.T) {
	m, _, dir := testManager(t)

	if err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("run export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.json"))
	if err != nil {
		t.Fatalf("read events snapshot: %v", err)
	}
	if string(data) == "null" {
		t.Error("empty collection exported as null, want []")
	}
}

func TestRunNowUpdatesStatus(t *testing.T) {
	m, _, _ := testManager(t)

	if got := m.Status(); got.State != StateIdle || got.LastExport != nil {
		t.Fatalf("initial status = %+v", got)
	}

	if err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("run export: %v", err)
	}

	got := m.Status()
	if got.State != StateIdle {
		t.Errorf("state = %q, want idle", got.State)
	}
	if got.LastExport == nil {
		t.Error("last_export should be set")
	}
	if got.InProgress {
		t.Error("in_progress should be false after completion")
	}
}

func TestRunNowUploadsToS3(t *testing.T) {
	m, _, _ := testManager(t)
	mock := &mockS3Client{}
	m.client = mock
	m.cfg.S3.Bucket = "snapshots"

	if err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("run export: %v", err)
	}

	if len(mock.keys) != 4 {
		t.Fatalf("uploaded %d objects, want 4", len(mock.keys))
	}
	for _, key := range mock.keys {
		if filepath.Ext(key) != ".json" {
			t.Errorf("unexpected object key %q", key)
		}
	}
}

func TestRunNowRefusesOverlap(t *testing.T) {
	m, _, dir := testManager(t)
	m.setStatus(Status{State: StateRunning, InProgress: true})

	if err := m.RunNow(context.Background()); err != ErrInProgress {
		t.Fatalf("err = %v, want ErrInProgress", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("refused run wrote %d files, want 0", len(entries))
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")

	if err := writeFileAtomic(path, []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writeFileAtomic(path, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "events.json" {
		t.Errorf("dir entries = %v, want only events.json", entries)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `[{"id":1}]` {
		t.Errorf("content = %s", data)
	}
}

func TestNewManagerWithoutCredentialsSkipsS3(t *testing.T) {
	m, _, _ := testManager(t)
	if m.client != nil {
		t.Error("client should be nil without bucket and credentials")
	}
}

func TestStartStop(t *testing.T) {
	m, _, _ := testManager(t)

	m.Start(context.Background())
	m.Stop()
}
