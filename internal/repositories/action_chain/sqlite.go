package actionchain

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock"
)

const (
	// MemoryPath opens a private in-memory database
	MemoryPath = ":memory:"

	schema = `CREATE TABLE IF NOT EXISTS action_chains (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		definition TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`
)

// OpenSQLite opens a SQLite database at path. The in-memory database is pinned to a
// single connection so every query sees the same data.
func OpenSQLite(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := path
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}

	return db, nil
}

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.DB == nil {
		return errors.InvalidArgument("db is required")
	}
	return nil
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLiteRepository creates a SQLite-backed chain repository, creating the table if needed
func NewSQLiteRepository(ctx context.Context, cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if _, err := cfg.DB.ExecContext(ctx, schema); err != nil {
		return nil, errors.Wrapf(err, "failed to create action_chains table")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{
		db:    cfg.DB,
		clock: c,
	}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func (r *sqliteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Chain == nil {
		return nil, errors.InvalidArgument(errChainNil)
	}
	if input.Chain.ID == "" {
		return nil, errors.InvalidArgument(errChainIDEmpty)
	}

	definition, err := json.Marshal(input.Chain)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal chain")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	now := r.clock.Now().UTC()
	createdAt := now
	created := true

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM action_chains WHERE id = ?`, input.Chain.ID).Scan(&existing)
	switch {
	case err == nil:
		createdAt = fromMillis(existing)
		created = false
	case err != sql.ErrNoRows:
		return nil, errors.Wrapf(err, "failed to check existence")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO action_chains (id, name, definition, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   definition = excluded.definition,
		   updated_at = excluded.updated_at`,
		input.Chain.ID,
		input.Chain.Name,
		string(definition),
		toMillis(createdAt),
		toMillis(now),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save chain")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "failed to commit chain")
	}

	return &SaveOutput{
		Chain:     input.Chain,
		Created:   created,
		CreatedAt: fromMillis(toMillis(createdAt)),
		UpdatedAt: fromMillis(toMillis(now)),
	}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errChainIDEmpty)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT definition, created_at, updated_at FROM action_chains WHERE id = ?`, input.ID)
	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("chain with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get chain")
	}

	return &GetOutput{
		Chain:     rec.Chain,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *sqliteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT definition, created_at, updated_at FROM action_chains ORDER BY id`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list chains")
	}
	defer func() { _ = rows.Close() }()

	chains := make([]*actions.Chain, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read chain row")
		}
		if hasAffinity(rec.Chain, input.Affinity) {
			chains = append(chains, rec.Chain)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate chains")
	}

	return &ListOutput{Chains: chains}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errChainIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM action_chains WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete chain")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read affected rows")
	}
	if affected == 0 {
		return nil, errors.NotFoundf("chain with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*record, error) {
	var (
		definition string
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(&definition, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var chain actions.Chain
	if err := json.Unmarshal([]byte(definition), &chain); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal chain")
	}

	return &record{
		Chain:     &chain,
		CreatedAt: fromMillis(createdAt),
		UpdatedAt: fromMillis(updatedAt),
	}, nil
}
