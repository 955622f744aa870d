package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/islandguide/admin-api/model"
)

const partnerColumns = `
	id, name, section, main_category, subcategory,
	main_image, gallery_images, short_description, long_description,
	address, latitude, longitude, area,
	phone, email, website, line_id, social,
	regular_hours, seasonal_changes, open_24h,
	rating_score, rating_review_count,
	tags, price_range, currency, features, languages,
	is_sponsored, is_featured, promotion_ends_at,
	wheelchair_accessible, family_friendly, pet_friendly,
	payment_options, attributes,
	created_at, updated_at`

func scanPartner(row interface{ Scan(dest ...any) error }) (model.PartnerRecord, error) {
	var r model.PartnerRecord
	err := row.Scan(
		&r.Id, &r.Name, &r.Section, &r.MainCategory, &r.Subcategory,
		&r.MainImage, &r.GalleryImages, &r.ShortDescription, &r.LongDescription,
		&r.Address, &r.Latitude, &r.Longitude, &r.Area,
		&r.Phone, &r.Email, &r.Website, &r.LineId, &r.Social,
		&r.RegularHours, &r.SeasonalChanges, &r.Open24h,
		&r.RatingScore, &r.RatingReviewCount,
		&r.Tags, &r.PriceRange, &r.Currency, &r.Features, &r.Languages,
		&r.IsSponsored, &r.IsFeatured, &r.PromotionEndsAt,
		&r.WheelchairAccessible, &r.FamilyFriendly, &r.PetFriendly,
		&r.PaymentOptions, &r.Attributes,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// GetPartner fetches one partner row. Returns ErrNotFound for a missing id.
func (s *Store) GetPartner(ctx context.Context, id string) (model.PartnerRecord, error) {
	query := s.sql(`SELECT` + partnerColumns + ` FROM {{schema}}.partners WHERE id = $1`)
	r, err := scanPartner(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.PartnerRecord{}, notFoundOr(err)
	}
	return r, nil
}

// ListPartners returns one page of partners plus the total match count.
func (s *Store) ListPartners(ctx context.Context, params ListParams) ([]model.PartnerRecord, int, error) {
	limit, offset := params.limitOffset()
	pattern := "%" + params.Search + "%"

	var total int
	countQuery := s.sql(`
		SELECT COUNT(*) FROM {{schema}}.partners
		WHERE ($1 = '%%' OR name ILIKE $1 OR area ILIKE $1 OR email ILIKE $1)`)
	if err := s.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := s.sql(`
		SELECT` + partnerColumns + `
		FROM {{schema}}.partners
		WHERE ($1 = '%%' OR name ILIKE $1 OR area ILIKE $1 OR email ILIKE $1)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`)

	rows, err := s.pool.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var partners []model.PartnerRecord
	for rows.Next() {
		r, err := scanPartner(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, r)
	}
	return partners, total, rows.Err()
}

// InsertPartner persists a new partner and returns the assigned id.
func (s *Store) InsertPartner(ctx context.Context, r model.PartnerRecord) (string, error) {
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	now := time.Now().UTC()

	query := s.sql(`
		INSERT INTO {{schema}}.partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		        $31, $32, $33, $34, $35, $36, $37, $38)
		RETURNING id`)

	var id string
	err := s.pool.QueryRow(ctx, query,
		r.Id, r.Name, r.Section, r.MainCategory, r.Subcategory,
		r.MainImage, r.GalleryImages, r.ShortDescription, r.LongDescription,
		r.Address, r.Latitude, r.Longitude, r.Area,
		r.Phone, r.Email, r.Website, r.LineId, r.Social,
		r.RegularHours, r.SeasonalChanges, r.Open24h,
		r.RatingScore, r.RatingReviewCount,
		r.Tags, r.PriceRange, r.Currency, r.Features, r.Languages,
		r.IsSponsored, r.IsFeatured, r.PromotionEndsAt,
		r.WheelchairAccessible, r.FamilyFriendly, r.PetFriendly,
		r.PaymentOptions, r.Attributes,
		now, now,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdatePartner applies a partial update. Returns ErrNotFound when the id
// does not exist.
func (s *Store) UpdatePartner(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	set, args := buildUpdate(cols)
	query := s.sql(fmt.Sprintf(
		`UPDATE {{schema}}.partners SET %s, updated_at = NOW() WHERE id = $1`, set))

	tag, err := s.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePartner removes a partner row for good. Returns ErrNotFound when
// the id does not exist.
func (s *Store) DeletePartner(ctx context.Context, id string) error {
	query := s.sql(`DELETE FROM {{schema}}.partners WHERE id = $1`)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
