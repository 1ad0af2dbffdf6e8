package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

var schema = []string{`CREATE TABLE IF NOT EXISTS history (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	kind TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	input TEXT NOT NULL DEFAULT '',
	source_radix INTEGER NOT NULL DEFAULT 0,
	result TEXT,
	platform TEXT NOT NULL DEFAULT '',
	content_type TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS history_kind_created ON history (kind, created_at DESC)`,
}

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db         *sql.DB
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path. Each history kind
// keeps at most maxEntries rows; non-positive means unbounded.
func NewSQLiteStore(path string, maxEntries int) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init history schema: %w", err)
		}
	}
	return &SQLiteStore{db: db, path: path, maxEntries: maxEntries}, nil
}

// Save inserts a new entry and prunes the oldest entries of the same kind.
func (s *SQLiteStore) Save(ctx context.Context, entry domain.HistoryEntry) error {
	entry = normalize(entry)
	var result sql.NullString
	if entry.Result != nil {
		raw, err := json.Marshal(entry.Result)
		if err != nil {
			return err
		}
		result = sql.NullString{String: string(raw), Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO history
		(id, kind, created_at, input, source_radix, result, platform, content_type, content, model)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		string(entry.Kind),
		entry.Timestamp.UnixNano(),
		entry.Input,
		int(entry.SourceRadix),
		result,
		string(entry.Platform),
		string(entry.ContentType),
		entry.Content,
		entry.Model,
	)
	if err != nil {
		return err
	}
	if s.maxEntries > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM history WHERE kind = ? AND seq NOT IN (
			SELECT seq FROM history WHERE kind = ? ORDER BY created_at DESC, seq DESC LIMIT ?)`,
			string(entry.Kind), string(entry.Kind), s.maxEntries)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Records returns history entries, newest first.
func (s *SQLiteStore) Records(ctx context.Context, q domain.HistoryQuery) ([]domain.HistoryEntry, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, kind, created_at, input, source_radix, result, platform, content_type, content, model FROM history")
	var where []string
	var args []interface{}
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(q.Kind))
	}
	if q.Search != "" {
		// instr matches the literal, case-sensitive substring like FileStore.
		where = append(where, "(instr(input, ?) > 0 OR instr(content, ?) > 0)")
		args = append(args, q.Search, q.Search)
	}
	if len(where) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(where, " AND "))
	}
	builder.WriteString(" ORDER BY created_at DESC, seq DESC")
	if q.Limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryEntry
	for rows.Next() {
		var (
			rec      domain.HistoryEntry
			kind     string
			created  int64
			radix    int
			result   sql.NullString
			platform string
			ctype    string
		)
		if err := rows.Scan(&rec.ID, &kind, &created, &rec.Input, &radix, &result, &platform, &ctype, &rec.Content, &rec.Model); err != nil {
			return nil, err
		}
		rec.Kind = domain.HistoryKind(kind)
		rec.Timestamp = time.Unix(0, created)
		rec.SourceRadix = domain.Radix(radix)
		rec.Platform = domain.Platform(platform)
		rec.ContentType = domain.ContentType(ctype)
		if result.Valid {
			var conv domain.ConversionResult
			if err := json.Unmarshal([]byte(result.String), &conv); err == nil {
				rec.Result = &conv
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes entries of the given kind, or every entry when kind is empty.
func (s *SQLiteStore) Clear(ctx context.Context, kind domain.HistoryKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == "" {
		_, err := s.db.ExecContext(ctx, "DELETE FROM history")
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE kind = ?", string(kind))
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
