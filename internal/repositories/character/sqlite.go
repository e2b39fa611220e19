package character

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/clock"
)

//go:embed schema.sql
var sqliteSchema string

// SQLiteConfig contains configuration for the SQLite character repository.
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	return vb.Build()
}

// SQLiteRepository stores each character as a JSON document in one table,
// with player_id and name pulled out for indexing.
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLite opens (or creates) the database file and applies the schema
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	// one writer; transactions never wait on a second connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to apply sqlite schema")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	stored := stamp(input.Character, input.Character.CreatedAt, r.clock.Now().UTC())
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO characters (id, player_id, name, data, updated_at) VALUES (?, ?, ?, ?, ?)`,
		stored.ID, stored.PlayerID, stored.Name, string(data), toMillis(stored.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", stored.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: stored}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	c, err := loadRow(r.db.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, input.ID), input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	var stored *gurps.Character
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := loadRow(tx.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, input.Character.ID), input.Character.ID)
		if err != nil {
			return err
		}
		stored = stamp(input.Character, existing.CreatedAt, r.clock.Now().UTC())
		return writeRow(ctx, tx, stored)
	})
	if err != nil {
		return nil, err
	}

	return &UpdateOutput{Character: stored}, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	var (
		stored  *gurps.Character
		created bool
	)
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := loadRow(tx.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, input.Character.ID), input.Character.ID)
		if err != nil && !errors.IsNotFound(err) {
			return err
		}

		createdAt := input.Character.CreatedAt
		if existing != nil {
			createdAt = existing.CreatedAt
		}
		created = existing == nil
		stored = stamp(input.Character, createdAt, r.clock.Now().UTC())
		return writeRow(ctx, tx, stored)
	})
	if err != nil {
		return nil, err
	}

	return &UpsertOutput{Character: stored, Created: created}, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID).WithMeta("character_id", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *SQLiteRepository) ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM characters WHERE player_id = ? ORDER BY id`, input.PlayerID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
	}
	defer func() { _ = rows.Close() }()

	characters := []*gurps.Character{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrapf(err, "failed to scan character")
		}
		c, err := decodeRow(id, data)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
	}

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func (r *SQLiteRepository) ListIDs(ctx context.Context, _ ListIDsInput) (*ListIDsOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM characters ORDER BY id`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list character ids")
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrapf(err, "failed to scan character id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list character ids")
	}

	return &ListIDsOutput{IDs: ids}, nil
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func writeRow(ctx context.Context, tx *sql.Tx, c *gurps.Character) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal character data")
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO characters (id, player_id, name, data, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   player_id = excluded.player_id,
		   name = excluded.name,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		c.ID, c.PlayerID, c.Name, string(data), toMillis(c.UpdatedAt),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to write character %s", c.ID)
	}
	return nil
}

func loadRow(row *sql.Row, id string) (*gurps.Character, error) {
	var data string
	if err := row.Scan(&data); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character with ID %s not found", id).WithMeta("character_id", id)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}
	return decodeRow(id, data)
}

func decodeRow(id, data string) (*gurps.Character, error) {
	var c gurps.Character
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal character %s", id)
	}
	return &c, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
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
