package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	cfg Config
}

// Schema for the teams database.
const schema = `
CREATE TABLE IF NOT EXISTS teams (
    id TEXT PRIMARY KEY,
    name TEXT,
    notes TEXT,
    roster_limit INTEGER NOT NULL DEFAULT 10,
    score REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS picks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    kind TEXT NOT NULL CHECK (kind IN ('lock', 'flex', 'open')),
    hero TEXT,
    alliance TEXT,
    level INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_teams_updated_at ON teams(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_picks_team_id ON picks(team_id, position);

CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT
);

-- Full-text search over team names and notes
CREATE VIRTUAL TABLE IF NOT EXISTS teams_fts USING fts5(
    team_id UNINDEXED,
    name,
    notes
);

-- Triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS teams_ai AFTER INSERT ON teams BEGIN
    INSERT INTO teams_fts(team_id, name, notes) VALUES (new.id, new.name, new.notes);
END;

CREATE TRIGGER IF NOT EXISTS teams_ad AFTER DELETE ON teams BEGIN
    DELETE FROM teams_fts WHERE team_id = old.id;
END;

CREATE TRIGGER IF NOT EXISTS teams_au AFTER UPDATE ON teams BEGIN
    DELETE FROM teams_fts WHERE team_id = old.id;
    INSERT INTO teams_fts(team_id, name, notes) VALUES (new.id, new.name, new.notes);
END;
`

// NewSQLiteStore creates a new SQLite-backed team store.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dbPath := cfg.Path
	if dbPath == "" {
		var err error
		dbPath, err = GetDBPath()
		if err != nil {
			return nil, fmt.Errorf("get db path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	store := &SQLiteStore{db: db, cfg: cfg}

	if err := store.cleanup(); err != nil {
		// Log but don't fail
		fmt.Fprintf(os.Stderr, "warning: team cleanup failed: %v\n", err)
	}

	return store, nil
}

// schemaVersion is the current schema version.
// - Fresh databases get the full schema from `schema` const and start here
// - Existing databases run migrations to reach this version
// Increment when adding new migrations.
const schemaVersion = 1

// migration represents a schema migration.
type migration struct {
	version     int
	description string
	up          func(db *sql.DB) error
}

// migrations upgrade databases created before a schema change. The base
// `schema` const always contains the FULL current schema.
//
// To add a migration:
// 1. Update the `schema` const with the new columns/tables
// 2. Increment schemaVersion
// 3. Add a migration transforming old databases to the new shape
var migrations = []migration{
	{
		// Only runs on databases created before the score column existed
		version:     1,
		description: "add score column",
		up: func(db *sql.DB) error {
			_, err := db.Exec("ALTER TABLE teams ADD COLUMN score REAL NOT NULL DEFAULT 0")
			if err != nil && !isDuplicateColumnError(err) {
				return err
			}
			return nil
		},
	},
}

// initSchema initializes the schema and runs pending migrations. The common
// case of an up-to-date schema is a single SELECT.
func initSchema(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version").Scan(&currentVersion)
	if err == nil && currentVersion >= schemaVersion {
		return nil
	}
	return initSchemaFull(db, err, currentVersion)
}

func initSchemaFull(db *sql.DB, versionErr error, currentVersion int) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create base schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	// versionErr is non-nil when schema_version is missing or empty
	if versionErr != nil && (versionErr == sql.ErrNoRows || strings.Contains(versionErr.Error(), "no such table")) {
		var tableCount int
		err = db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='table' AND name='teams'
		`).Scan(&tableCount)
		if err != nil {
			return fmt.Errorf("check teams table: %w", err)
		}

		if tableCount > 0 {
			// Pre-migration DB, run everything
			currentVersion = 0
		} else {
			// Fresh DB, schema already complete
			currentVersion = schemaVersion
		}

		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentVersion); err != nil {
			return fmt.Errorf("insert initial version: %w", err)
		}
	} else if versionErr != nil {
		return fmt.Errorf("get current version: %w", versionErr)
	}

	for _, m := range migrations {
		if m.version > currentVersion {
			if err := m.up(db); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
			}
			if _, err := db.Exec("UPDATE schema_version SET version = ?", m.version); err != nil {
				return fmt.Errorf("update version to %d: %w", m.version, err)
			}
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate column") ||
		strings.Contains(errStr, "already exists")
}

// cleanup trims the oldest teams beyond the configured maximum.
func (s *SQLiteStore) cleanup() error {
	if s.cfg.MaxCount <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(context.Background(), `
		DELETE FROM teams WHERE id IN (
			SELECT id FROM teams
			ORDER BY updated_at DESC
			LIMIT -1 OFFSET ?
		)`, s.cfg.MaxCount)
	if err != nil {
		return fmt.Errorf("enforce max count: %w", err)
	}
	return nil
}

// Create inserts a new team and its picks.
func (s *SQLiteStore) Create(ctx context.Context, t *Team) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO teams (id, name, notes, roster_limit, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Notes, t.RosterLimit, t.Score, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	if err := insertPicks(ctx, tx, t.ID, t.Picks); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPicks(ctx context.Context, tx *sql.Tx, teamID string, picks []Pick) error {
	for i, p := range picks {
		pos := p.Position
		if pos == 0 {
			pos = i
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO picks (team_id, kind, hero, alliance, level, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			teamID, string(p.Kind), nullString(p.Hero), nullString(p.Alliance), p.Level, pos)
		if err != nil {
			return fmt.Errorf("insert pick: %w", err)
		}
	}
	return nil
}

// Get retrieves a team by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Team, error) {
	return s.getWhere(ctx, "id = ?", id)
}

// GetByName retrieves the most recently updated team with the given name.
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (*Team, error) {
	return s.getWhere(ctx, "name = ? ORDER BY updated_at DESC", name)
}

func (s *SQLiteStore) getWhere(ctx context.Context, where string, arg any) (*Team, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, notes, roster_limit, score, created_at, updated_at
		FROM teams WHERE `+where+` LIMIT 1`, arg)

	var t Team
	var notes sql.NullString
	err := row.Scan(&t.ID, &t.Name, &notes, &t.RosterLimit, &t.Score, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan team: %w", err)
	}
	if notes.Valid {
		t.Notes = notes.String
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, hero, alliance, level, position FROM picks
		WHERE team_id = ? ORDER BY position ASC`, t.ID)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Pick
		var kind string
		var hero, alliance sql.NullString
		if err := rows.Scan(&kind, &hero, &alliance, &p.Level, &p.Position); err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		p.Kind = PickKind(kind)
		if hero.Valid {
			p.Hero = hero.String
		}
		if alliance.Valid {
			p.Alliance = alliance.String
		}
		t.Picks = append(t.Picks, p)
	}
	return &t, rows.Err()
}

// Update replaces a team's fields and picks.
func (s *SQLiteStore) Update(ctx context.Context, t *Team) error {
	t.UpdatedAt = time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE teams SET name = ?, notes = ?, roster_limit = ?, score = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Notes, t.RosterLimit, t.Score, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("team not found: %s", t.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM picks WHERE team_id = ?", t.ID); err != nil {
		return fmt.Errorf("clear picks: %w", err)
	}
	if err := insertPicks(ctx, tx, t.ID, t.Picks); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a team and its picks.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	// Foreign key cascade handles picks
	result, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("team not found: %s", id)
	}
	return nil
}

// List returns team summaries, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.score, t.updated_at,
		       (SELECT COUNT(*) FROM picks WHERE team_id = t.id AND kind != 'open') as hero_count
		FROM teams t
		ORDER BY t.updated_at DESC
		LIMIT %d`, limit)
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Score, &sum.UpdatedAt, &sum.HeroCount); err != nil {
			return nil, fmt.Errorf("scan team summary: %w", err)
		}
		results = append(results, sum)
	}
	return results, rows.Err()
}

// Search finds teams whose name or notes match the query using FTS5.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit == 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.team_id, t.name, snippet(teams_fts, 2, '**', '**', '...', 16), t.updated_at
		FROM teams_fts f
		JOIN teams t ON t.id = f.team_id
		WHERE teams_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Name, &r.Snippet, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullString converts an empty string to NULL for database storage.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
