// Package store is the pgx persistence layer. SQL is inline with a
// {{schema}} placeholder resolved against the configured schema, and
// partial updates are built from the column maps the model patches emit.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("record not found")

// Store owns all database access for the admin API.
type Store struct {
	pool   *pgxpool.Pool
	schema string
	log    *zerolog.Logger
}

func New(pool *pgxpool.Pool, schema string, log *zerolog.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool cannot be nil")
	}
	if schema == "" {
		schema = "public"
	}
	return &Store{pool: pool, schema: schema, log: log}, nil
}

// Pool exposes the underlying pool for the auth guard's profile lookup.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) sql(query string) string {
	return strings.ReplaceAll(query, "{{schema}}", s.schema)
}

// ListParams is the shared pagination/search contract: 1-based page,
// offset = (page-1)*pageSize, substring search.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

func (p ListParams) limitOffset() (int, int) {
	n := p.normalized()
	return n.PageSize, (n.Page - 1) * n.PageSize
}

// buildUpdate renders a dynamic SET clause from a column map in
// deterministic order, returning the fragment and its ordered arguments.
// The first positional argument ($1) is reserved for the row id.
func buildUpdate(cols map[string]any) (string, []any) {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for i, name := range names {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", name, i+2))
		args = append(args, cols[name])
	}
	return strings.Join(assignments, ", "), args
}

// MigrateUp applies every *.up.sql in migrationsDir in lexical order.
func (s *Store) MigrateUp(ctx context.Context, migrationsDir string) error {
	return s.applyMigrations(ctx, migrationsDir, "*.up.sql")
}

// MigrateDown applies every *.down.sql in migrationsDir in lexical order.
func (s *Store) MigrateDown(ctx context.Context, migrationsDir string) error {
	return s.applyMigrations(ctx, migrationsDir, "*.down.sql")
}

func (s *Store) applyMigrations(ctx context.Context, migrationsDir, pattern string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, pattern))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := s.pool.Exec(ctx, s.sql(string(sqlBytes))); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
		if s.log != nil {
			s.log.Info().Str("file", filepath.Base(file)).Msg("migration applied")
		}
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
