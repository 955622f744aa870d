package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/islandguide/admin-api/model"
)

const eventColumns = `
	id, title, category, image, "time", location, price, description,
	latitude, longitude,
	organizer_name, organizer_contact_email, organizer_contact_phone, organizer_website,
	recurrence_pattern, recurrence_custom_pattern, recurrence_end_date,
	duration, tags, capacity, facilities, tickets,
	is_sponsored, sponsor_end_date, attendee_count, rating, reviews, day,
	created_at, updated_at`

func scanEvent(row interface{ Scan(dest ...any) error }) (model.EventRecord, error) {
	var r model.EventRecord
	err := row.Scan(
		&r.Id, &r.Title, &r.Category, &r.Image, &r.Time, &r.Location, &r.Price, &r.Description,
		&r.Latitude, &r.Longitude,
		&r.OrganizerName, &r.OrganizerContactEmail, &r.OrganizerContactPhone, &r.OrganizerWebsite,
		&r.RecurrencePattern, &r.RecurrenceCustomPattern, &r.RecurrenceEndDate,
		&r.Duration, &r.Tags, &r.Capacity, &r.Facilities, &r.Tickets,
		&r.IsSponsored, &r.SponsorEndDate, &r.AttendeeCount, &r.Rating, &r.Reviews, &r.Day,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// GetEvent fetches one event row. Returns ErrNotFound for a missing id.
func (s *Store) GetEvent(ctx context.Context, id string) (model.EventRecord, error) {
	query := s.sql(`SELECT` + eventColumns + ` FROM {{schema}}.events WHERE id = $1`)
	r, err := scanEvent(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.EventRecord{}, notFoundOr(err)
	}
	return r, nil
}

// ListEvents returns one page of events plus the total match count.
// Search is a case-insensitive substring match across title, category and
// location.
func (s *Store) ListEvents(ctx context.Context, params ListParams) ([]model.EventRecord, int, error) {
	limit, offset := params.limitOffset()
	pattern := "%" + params.Search + "%"

	var total int
	countQuery := s.sql(`
		SELECT COUNT(*) FROM {{schema}}.events
		WHERE ($1 = '%%' OR title ILIKE $1 OR category ILIKE $1 OR location ILIKE $1)`)
	if err := s.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := s.sql(`
		SELECT` + eventColumns + `
		FROM {{schema}}.events
		WHERE ($1 = '%%' OR title ILIKE $1 OR category ILIKE $1 OR location ILIKE $1)
		ORDER BY "time" DESC, id
		LIMIT $2 OFFSET $3`)

	rows, err := s.pool.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []model.EventRecord
	for rows.Next() {
		r, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, r)
	}
	return events, total, rows.Err()
}

// InsertEvent persists a new event and returns the assigned id.
func (s *Store) InsertEvent(ctx context.Context, r model.EventRecord) (string, error) {
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	now := time.Now().UTC()

	query := s.sql(`
		INSERT INTO {{schema}}.events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)
		RETURNING id`)

	var id string
	err := s.pool.QueryRow(ctx, query,
		r.Id, r.Title, r.Category, r.Image, r.Time, r.Location, r.Price, r.Description,
		r.Latitude, r.Longitude,
		r.OrganizerName, r.OrganizerContactEmail, r.OrganizerContactPhone, r.OrganizerWebsite,
		r.RecurrencePattern, r.RecurrenceCustomPattern, r.RecurrenceEndDate,
		r.Duration, r.Tags, r.Capacity, r.Facilities, r.Tickets,
		r.IsSponsored, r.SponsorEndDate, r.AttendeeCount, r.Rating, r.Reviews, r.Day,
		now, now,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateEvent applies a partial update. Last write wins; there is no
// version column. Returns ErrNotFound when the id does not exist.
func (s *Store) UpdateEvent(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	set, args := buildUpdate(cols)
	query := s.sql(fmt.Sprintf(
		`UPDATE {{schema}}.events SET %s, updated_at = NOW() WHERE id = $1`, set))

	tag, err := s.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
