package history

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

// FileStore keeps history as a jsonl file, oldest entry first.
type FileStore struct {
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewFileStore creates a store backed by the jsonl file at path.
func NewFileStore(path string, maxEntries int) *FileStore {
	return &FileStore{path: path, maxEntries: maxEntries}
}

// Save appends an entry and prunes the oldest entries of the same kind.
func (f *FileStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	entry = normalize(entry)
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.readAll()
	if err != nil {
		return err
	}
	records = append(records, entry)

	if f.maxEntries > 0 {
		kept := 0
		for i := len(records) - 1; i >= 0; i-- {
			if records[i].Kind != entry.Kind {
				continue
			}
			kept++
			if kept > f.maxEntries {
				records = append(records[:i], records[i+1:]...)
			}
		}
	}
	return f.writeAll(records)
}

// Records loads entries newest first (best-effort: undecodable lines are skipped).
func (f *FileStore) Records(_ context.Context, q domain.HistoryQuery) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	all, err := f.readAll()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// Reverse first so entries sharing a timestamp stay newest-appended first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })

	var records []domain.HistoryEntry
	for i := range all {
		rec := all[i]
		if q.Kind != "" && rec.Kind != q.Kind {
			continue
		}
		if q.Search != "" && !strings.Contains(rec.Input, q.Search) && !strings.Contains(rec.Content, q.Search) {
			continue
		}
		records = append(records, rec)
		if q.Limit > 0 && len(records) >= q.Limit {
			break
		}
	}
	return records, nil
}

// Clear removes entries of the given kind, or the whole file when kind is empty.
func (f *FileStore) Clear(_ context.Context, kind domain.HistoryKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind == "" {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	records, err := f.readAll()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if rec.Kind != kind {
			kept = append(kept, rec)
		}
	}
	return f.writeAll(kept)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// readAll returns entries in append order.
func (f *FileStore) readAll() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []domain.HistoryEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec domain.HistoryEntry
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, scanner.Err()
}

func (f *FileStore) writeAll(records []domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), domain.FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

var _ ports.HistoryRepository = (*FileStore)(nil)
