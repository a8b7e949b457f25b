package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStore uses the hosted platform's layout: one table, a text key and a jsonb value.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, table string) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool, table: pgx.Identifier{table}.Sanitize()}

	_, err := pool.Exec(ctx, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            key   TEXT PRIMARY KEY,
            value JSONB NOT NULL
        )`, s.table))
	if err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key=$1`, s.table), key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (key, value) VALUES ($1, $2::jsonb)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, s.table),
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key=$1`, s.table), key)
	if err != nil {
		return fmt.Errorf("postgres delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT key, value FROM %s WHERE starts_with(key, $1) ORDER BY key`, s.table),
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres scan %s: %w", prefix, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("postgres scan row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
