package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/islandguide/admin-api/model"
)

const profileColumns = `
	id, name, username, email, is_admin, bio, location,
	interests, favorite_places,
	preferences, social_links, privacy_settings, notifications, payment_methods,
	events_attended, join_date, created_at, password_hash`

func scanProfile(row interface{ Scan(dest ...any) error }) (model.ProfileRecord, error) {
	var r model.ProfileRecord
	err := row.Scan(
		&r.Id, &r.Name, &r.Username, &r.Email, &r.IsAdmin, &r.Bio, &r.Location,
		&r.Interests, &r.FavoritePlaces,
		&r.Preferences, &r.SocialLinks, &r.PrivacySettings, &r.Notifications, &r.PaymentMethods,
		&r.EventsAttended, &r.JoinDate, &r.CreatedAt, &r.PasswordHash,
	)
	return r, err
}

// GetProfile fetches one profile row by id.
func (s *Store) GetProfile(ctx context.Context, id string) (model.ProfileRecord, error) {
	query := s.sql(`SELECT` + profileColumns + ` FROM {{schema}}.profiles WHERE id = $1`)
	r, err := scanProfile(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.ProfileRecord{}, notFoundOr(err)
	}
	return r, nil
}

// GetProfileByEmail fetches one profile row by email, used by login.
func (s *Store) GetProfileByEmail(ctx context.Context, email string) (model.ProfileRecord, error) {
	query := s.sql(`SELECT` + profileColumns + ` FROM {{schema}}.profiles WHERE email = $1`)
	r, err := scanProfile(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		return model.ProfileRecord{}, notFoundOr(err)
	}
	return r, nil
}

// ListProfiles returns one page of profiles plus the total match count.
// Search matches name, username and email.
func (s *Store) ListProfiles(ctx context.Context, params ListParams) ([]model.ProfileRecord, int, error) {
	limit, offset := params.limitOffset()
	pattern := "%" + params.Search + "%"

	var total int
	countQuery := s.sql(`
		SELECT COUNT(*) FROM {{schema}}.profiles
		WHERE ($1 = '%%' OR name ILIKE $1 OR username ILIKE $1 OR email ILIKE $1)`)
	if err := s.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := s.sql(`
		SELECT` + profileColumns + `
		FROM {{schema}}.profiles
		WHERE ($1 = '%%' OR name ILIKE $1 OR username ILIKE $1 OR email ILIKE $1)
		ORDER BY username, id
		LIMIT $2 OFFSET $3`)

	rows, err := s.pool.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []model.ProfileRecord
	for rows.Next() {
		r, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, r)
	}
	return profiles, total, rows.Err()
}

// InsertProfile persists a new profile (signup) and returns the assigned
// id. New profiles are never admins; promotion is a separate update.
func (s *Store) InsertProfile(ctx context.Context, r model.ProfileRecord) (string, error) {
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	now := time.Now().UTC()
	if r.JoinDate == "" {
		r.JoinDate = now.Format("2006-01-02")
	}

	query := s.sql(`
		INSERT INTO {{schema}}.profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`)

	var id string
	err := s.pool.QueryRow(ctx, query,
		r.Id, r.Name, r.Username, r.Email, r.Bio, r.Location,
		r.Interests, r.FavoritePlaces,
		r.Preferences, r.SocialLinks, r.PrivacySettings, r.Notifications, r.PaymentMethods,
		r.EventsAttended, r.JoinDate, now, r.PasswordHash,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateProfile applies a partial update. Returns ErrNotFound when the id
// does not exist.
func (s *Store) UpdateProfile(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	set, args := buildUpdate(cols)
	query := s.sql(fmt.Sprintf(
		`UPDATE {{schema}}.profiles SET %s WHERE id = $1`, set))

	tag, err := s.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsAdmin reports whether the profile exists and carries the admin flag.
// This is the single lookup behind the admin guard.
func (s *Store) IsAdmin(ctx context.Context, id string) (bool, error) {
	query := s.sql(`SELECT is_admin FROM {{schema}}.profiles WHERE id = $1`)
	var isAdmin bool
	if err := s.pool.QueryRow(ctx, query, id).Scan(&isAdmin); err != nil {
		return false, notFoundOr(err)
	}
	return isAdmin, nil
}
