package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when no record exists for a match id.
var ErrNotFound = errors.New("history: match not found")

// Outcomes of a finished match.
const (
	// OutcomeWin means a player completed the target.
	OutcomeWin = "win"
	// OutcomeDisconnect means a player left mid-game.
	OutcomeDisconnect = "disconnect"
	// OutcomeViolation means a player sent a message the server refused.
	OutcomeViolation = "violation"
	// OutcomeShutdown means the server stopped while the match was live.
	OutcomeShutdown = "shutdown"
)

// Record describes one finished match.
type Record struct {
	ID        string    `json:"id"`
	Outcome   string    `json:"outcome"`
	Winner    int       `json:"winner"` // player id, -1 when nobody won
	Moves     int       `json:"moves"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Duration is the match's wall-clock length.
func (r Record) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Recorder is the write side of the match history.
type Recorder interface {
	Append(rec Record) error
}

// Discard is a Recorder that drops every record.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Append(Record) error { return nil }

// FileStore persists one JSON file per match under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Append writes the record to <id>.json, replacing any previous record
// with the same id.
func (fs *FileStore) Append(rec Record) error {
	if rec.ID == "" {
		return errors.New("history: record needs an id")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := os.WriteFile(fs.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Get loads a single record by match id.
func (fs *FileStore) Get(id string) (Record, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path(id))
	if os.IsNotExist(err) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}

// List loads every record in the store. Files that are not records are
// skipped silently so an unrelated file in the directory cannot take the
// listing down.
func (fs *FileStore) List() ([]Record, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("read history directory: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, entry.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (fs *FileStore) path(id string) string {
	return filepath.Join(fs.dir, id+".json")
}
