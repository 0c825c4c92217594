package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/safescan/internal/model"
)

const (
	// DefaultCapacity is the number of entries kept.
	DefaultCapacity = 12

	// SnippetChars is the number of input runes stored per entry.
	SnippetChars = 180

	// FileName is the database file name inside the history directory.
	FileName = "history.db"
)

// ErrDatabaseNotFound is returned by Open when the database does not exist
// and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("history database not found")

// Store is a bounded scan history backed by SQLite.
type Store struct {
	db       *sql.DB
	dbPath   string
	capacity int
	now      func() time.Time
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// Capacity is the number of entries kept. Non-positive means DefaultCapacity.
	Capacity int
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		Capacity:          DefaultCapacity,
	}
}

// DefaultDir returns the per-user data directory for the history database.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "safescan")
}

// Open opens or creates the history database in dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s := &Store{
		db:       db,
		dbPath:   dbPath,
		capacity: capacity,
		now:      time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Capacity returns the number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) createTables() error {
	schema := `
	-- seq gives insertion order; timestamps may collide
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp TEXT NOT NULL,
		kind TEXT NOT NULL,
		snippet TEXT NOT NULL,
		class TEXT NOT NULL,
		confidence REAL,
		message_json TEXT NOT NULL
	);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Record builds an entry for result and appends it.
func (s *Store) Record(ctx context.Context, input string, result *model.AnalysisResult) (model.HistoryEntry, error) {
	entry := model.NewHistoryEntry(input, result, s.now(), SnippetChars)
	if err := s.Append(ctx, entry); err != nil {
		return model.HistoryEntry{}, err
	}
	return entry, nil
}

// Append inserts entry and drops the oldest entries beyond capacity.
func (s *Store) Append(ctx context.Context, entry model.HistoryEntry) error {
	classText, err := entry.Class.MarshalText()
	if err != nil {
		return fmt.Errorf("failed to serialize class: %w", err)
	}
	messageJSON, err := json.Marshal(entry.Message)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	var confidence sql.NullFloat64
	if entry.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *entry.Confidence, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := `
	INSERT INTO history (id, timestamp, kind, snippet, class, confidence, message_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insert,
		entry.ID,
		entry.At.UTC().Format(time.RFC3339Nano),
		string(entry.Kind),
		model.TruncateRunes(entry.Snippet, SnippetChars),
		string(classText),
		confidence,
		string(messageJSON),
	); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	trim := `
	DELETE FROM history
	WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)
	`
	if _, err := tx.ExecContext(ctx, trim, s.capacity); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history entry: %w", err)
	}
	return nil
}

// List returns the stored entries, oldest first.
func (s *Store) List(ctx context.Context) ([]model.HistoryEntry, error) {
	query := `
	SELECT id, timestamp, kind, snippet, class, confidence, message_json
	FROM history
	ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			entry       model.HistoryEntry
			timestamp   string
			kind        string
			classText   string
			confidence  sql.NullFloat64
			messageJSON string
		)
		if err := rows.Scan(&entry.ID, &timestamp, &kind, &entry.Snippet, &classText, &confidence, &messageJSON); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.At = parseTimestamp(timestamp)
		entry.Kind = model.Kind(kind)
		if entry.Class, err = model.ParseClass(classText); err != nil {
			return nil, fmt.Errorf("history entry %s: %w", entry.ID, err)
		}
		if confidence.Valid {
			entry.Confidence = model.Float(confidence.Float64)
		}
		if err := json.Unmarshal([]byte(messageJSON), &entry.Message); err != nil {
			return nil, fmt.Errorf("history entry %s: failed to parse message: %w", entry.ID, err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// timestampFormats contains the timestamp formats we may read back.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
