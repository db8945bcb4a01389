package journal

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal/migrations"
)

const (
	errEntryNil     = "entry cannot be nil"
	errEntryIDEmpty = "entry ID cannot be empty"
	errRunIDEmpty   = "run ID cannot be empty"

	selectColumns = `id, run_id, area, species, personality, caught_species,
	        battle_flags, dupe, shiny, area_marked, released, created_at`
)

// SQLiteConfig contains configuration for the SQLite journal
type SQLiteConfig struct {
	// Path is the database file. ":memory:" is not supported since every
	// pooled connection would see its own database.
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("storage path is required")
	}
	return nil
}

// Store persists the encounter journal in SQLite
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

// Ensure Store implements Repository
var _ Repository = (*Store)(nil)

// Open opens the SQLite journal and applies the embedded migrations
func Open(ctx context.Context, cfg *SQLiteConfig) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	dsn := filepath.Clean(cfg.Path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(ctx, db, migrations.FS, c); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}

	slog.Info("Encounter journal opened", "path", cfg.Path)

	return &Store{db: db, clock: c}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append stores a new entry. A zero CreatedAt is stamped with the store clock.
func (s *Store) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	entry := input.Entry
	if entry == nil {
		return nil, errors.InvalidArgument(errEntryNil)
	}
	if entry.ID == "" {
		return nil, errors.InvalidArgument(errEntryIDEmpty)
	}
	if entry.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}
	if entry.Released < 0 || entry.Released > nz.MaxPartySize {
		return nil, errors.InvalidArgumentf("released must be between 0 and %d", nz.MaxPartySize)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO encounters (
		   id, run_id, area, species, personality, caught_species,
		   battle_flags, dupe, shiny, area_marked, released, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.RunID,
		int64(entry.Area),
		int64(entry.Species),
		int64(entry.Personality),
		int64(entry.CaughtSpecies),
		int64(entry.BattleFlags),
		boolToInt(entry.Dupe),
		boolToInt(entry.Shiny),
		boolToInt(entry.AreaMarked),
		entry.Released,
		entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExists("journal entry already exists").WithMeta("entry_id", entry.ID)
		}
		return nil, errors.Wrap(err, "failed to append journal entry")
	}

	return &AppendOutput{Entry: entry}, nil
}

// List returns the entries of a run in insertion order
func (s *Store) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	limit := int64(-1)
	if input.Limit > 0 {
		limit = int64(input.Limit)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+`
		   FROM encounters
		  WHERE run_id = ?
		  ORDER BY created_at ASC, rowid ASC
		  LIMIT ?`,
		input.RunID, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list journal entries")
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan journal entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list journal entries")
	}

	return &ListOutput{Entries: entries}, nil
}

// DeleteRun removes every entry of a run
func (s *Store) DeleteRun(ctx context.Context, input DeleteRunInput) (*DeleteRunOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM encounters WHERE run_id = ?`, input.RunID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete journal entries")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted journal entries")
	}

	return &DeleteRunOutput{Deleted: int(deleted)}, nil
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var (
		entry       Entry
		area        int64
		species     int64
		personality int64
		caught      int64
		flags       int64
		dupe        int64
		shiny       int64
		marked      int64
		createdAt   int64
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.RunID,
		&area,
		&species,
		&personality,
		&caught,
		&flags,
		&dupe,
		&shiny,
		&marked,
		&entry.Released,
		&createdAt,
	); err != nil {
		return nil, err
	}

	entry.Area = nz.AreaID(area)
	entry.Species = nz.SpeciesID(species)
	entry.Personality = uint32(personality)
	entry.CaughtSpecies = nz.SpeciesID(caught)
	entry.BattleFlags = nz.BattleTypeFlags(flags)
	entry.Dupe = dupe != 0
	entry.Shiny = shiny != 0
	entry.AreaMarked = marked != 0
	entry.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &entry, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
