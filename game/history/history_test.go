package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecord(id string) Record {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Record{
		ID:        id,
		Outcome:   OutcomeWin,
		Winner:    0,
		Moves:     17,
		StartedAt: started,
		EndedAt:   started.Add(90 * time.Second),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	want := sampleRecord("abc")
	if err := fs.Append(want); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := fs.Get("abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got.Duration() != 90*time.Second {
		t.Errorf("expected 90s duration, got %v", got.Duration())
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := fs.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreRejectsEmptyID(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := fs.Append(Record{}); err == nil {
		t.Error("expected append without an id to fail")
	}
}

func TestFileStoreListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := fs.Append(sampleRecord(id)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	// foreign files in the directory must not break or pollute the listing
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := fs.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	seen := map[string]bool{}
	for _, rec := range records {
		seen[rec.ID] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !seen[id] {
			t.Errorf("record %s missing from listing", id)
		}
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard.Append(sampleRecord("x")); err != nil {
		t.Errorf("discard recorder returned %v", err)
	}
}
