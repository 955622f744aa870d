package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/islandguide/admin-api/model"
)

const serviceColumns = `
	id, name, category, subcategory, description, image,
	address, phone, email, website, price_range, languages,
	is_active, service_data, created_at, updated_at`

func scanService(row interface{ Scan(dest ...any) error }) (model.ServiceRecord, error) {
	var r model.ServiceRecord
	err := row.Scan(
		&r.Id, &r.Name, &r.Category, &r.Subcategory, &r.Description, &r.Image,
		&r.Address, &r.Phone, &r.Email, &r.Website, &r.PriceRange, &r.Languages,
		&r.IsActive, &r.ServiceData, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// GetService fetches one service row. Returns ErrNotFound for a missing id.
func (s *Store) GetService(ctx context.Context, id string) (model.ServiceRecord, error) {
	query := s.sql(`SELECT` + serviceColumns + ` FROM {{schema}}.services WHERE id = $1`)
	r, err := scanService(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.ServiceRecord{}, notFoundOr(err)
	}
	return r, nil
}

// ListServices returns one page of services plus the total match count.
func (s *Store) ListServices(ctx context.Context, params ListParams) ([]model.ServiceRecord, int, error) {
	limit, offset := params.limitOffset()
	pattern := "%" + params.Search + "%"

	var total int
	countQuery := s.sql(`
		SELECT COUNT(*) FROM {{schema}}.services
		WHERE ($1 = '%%' OR name ILIKE $1 OR category ILIKE $1 OR email ILIKE $1)`)
	if err := s.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := s.sql(`
		SELECT` + serviceColumns + `
		FROM {{schema}}.services
		WHERE ($1 = '%%' OR name ILIKE $1 OR category ILIKE $1 OR email ILIKE $1)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`)

	rows, err := s.pool.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var services []model.ServiceRecord
	for rows.Next() {
		r, err := scanService(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, r)
	}
	return services, total, rows.Err()
}

// InsertService persists a new service and returns the assigned id.
func (s *Store) InsertService(ctx context.Context, r model.ServiceRecord) (string, error) {
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	now := time.Now().UTC()

	query := s.sql(`
		INSERT INTO {{schema}}.services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`)

	var id string
	err := s.pool.QueryRow(ctx, query,
		r.Id, r.Name, r.Category, r.Subcategory, r.Description, r.Image,
		r.Address, r.Phone, r.Email, r.Website, r.PriceRange, r.Languages,
		r.IsActive, r.ServiceData, now, now,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateService applies a partial update. Returns ErrNotFound when the id
// does not exist.
func (s *Store) UpdateService(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	set, args := buildUpdate(cols)
	query := s.sql(fmt.Sprintf(
		`UPDATE {{schema}}.services SET %s, updated_at = NOW() WHERE id = $1`, set))

	tag, err := s.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteService removes a service row. Returns ErrNotFound when the id
// does not exist.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	query := s.sql(`DELETE FROM {{schema}}.services WHERE id = $1`)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
