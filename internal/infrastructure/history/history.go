// Package history stores assistant history in SQLite, falling back to a
// jsonl file when the database cannot be opened.
package history

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

// Open returns the store selected by settings. When SQLite fails to open the
// history is kept in a jsonl file next to the intended database and the
// error is returned alongside the working store so callers can log it.
func Open(settings domain.HistorySettings) (ports.HistoryRepository, error) {
	if settings.Backend == domain.HistoryBackendFile {
		return NewFileStore(settings.Path, settings.MaxEntries), nil
	}
	store, err := NewSQLiteStore(settings.Path, settings.MaxEntries)
	if err != nil {
		fallback := strings.TrimSuffix(settings.Path, filepath.Ext(settings.Path)) + ".jsonl"
		return NewFileStore(fallback, settings.MaxEntries), err
	}
	return store, nil
}

func normalize(entry domain.HistoryEntry) domain.HistoryEntry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return entry
}
