// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	_ "github.com/mattn/go-sqlite3"    // sqlite3 database/sql driver

	"github.com/oauthkit/token-vault/internal/logger"
	"github.com/oauthkit/token-vault/migrations"
)

const vaultTable = "vault_entries"

// SQLStore is a [KeyValueStore] over a single vault_entries table, shared by
// the Postgres and SQLite drivers. Queries are built with squirrel so the
// same code serves both placeholder dialects. It implements [BatchWriter]:
// PutAll commits all entries in one transaction.
type SQLStore struct {
	db       *sql.DB
	sb       sq.StatementBuilderType
	classify func(error) error
	logger   *logger.Logger
}

// NewPostgresStore opens a Postgres connection through the pgx stdlib
// driver, verifies it with a ping, applies migrations and returns the store.
func NewPostgresStore(ctx context.Context, dsn string, log *logger.Logger) (*SQLStore, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}
	conn.SetMaxOpenConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Msg("error connecting database (ping)")
		return nil, err
	}

	if err := migrations.Migrate(conn, "pgx"); err != nil {
		return nil, err
	}
	log.Info().Msg("connected to postgres vault store")

	return &SQLStore{
		db:       conn,
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		classify: classifyPostgresError,
		logger:   log,
	}, nil
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at path,
// applies migrations and returns the store.
func NewSQLiteStore(ctx context.Context, path string, log *logger.Logger) (*SQLStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}
	// sqlite allows a single writer; keep database/sql from opening more.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Msg("error connecting database (ping)")
		return nil, err
	}

	if err := migrations.Migrate(conn, "sqlite3"); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("connected to sqlite vault store")

	return &SQLStore{
		db:       conn,
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Question),
		classify: func(error) error { return nil },
		logger:   log,
	}, nil
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Put(ctx context.Context, namespace, key, value string) error {
	query, args, err := s.putQuery(namespace, key, value).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return s.execError(err)
	}

	return nil
}

func (s *SQLStore) PutAll(ctx context.Context, namespace string, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for key, value := range entries {
		query, args, err := s.putQuery(namespace, key, value).ToSql()
		if err != nil {
			return fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return s.execError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s", ErrCommittingTransaction, err)
	}

	return nil
}

func (s *SQLStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	query, args, err := s.sb.
		Select("value").
		From(vaultTable).
		Where(sq.Eq{"namespace": namespace, "key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.execError(err)
	}

	return value, true, nil
}

func (s *SQLStore) Remove(ctx context.Context, namespace, key string) error {
	query, args, err := s.sb.
		Delete(vaultTable).
		Where(sq.Eq{"namespace": namespace, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	// Deleting zero rows is fine: Remove is idempotent.
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return s.execError(err)
	}

	return nil
}

func (s *SQLStore) Contains(ctx context.Context, namespace, key string) (bool, error) {
	query, args, err := s.sb.
		Select("1").
		From(vaultTable).
		Where(sq.Eq{"namespace": namespace, "key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.execError(err)
	}

	return true, nil
}

func (s *SQLStore) putQuery(namespace, key, value string) sq.InsertBuilder {
	return s.sb.
		Insert(vaultTable).
		Columns("namespace", "key", "value").
		Values(namespace, key, value).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value")
}

// execError maps a driver error onto the store's sentinel taxonomy.
func (s *SQLStore) execError(err error) error {
	if mapped := s.classify(err); mapped != nil {
		return fmt.Errorf("%w: %s", mapped, err)
	}
	return fmt.Errorf("%w: %s", ErrExecutingQuery, err)
}

// classifyPostgresError recognises Postgres error codes that deserve their
// own sentinel. Anything unrecognised falls back to ErrExecutingQuery.
func classifyPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	if pgErr.Code == pgerrcode.UndefinedTable {
		return ErrSchemaMissing
	}

	return nil
}
