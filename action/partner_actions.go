package action

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/islandguide/admin-api/invalidate"
	"github.com/islandguide/admin-api/model"
	"github.com/islandguide/admin-api/pkg/validator"
	"github.com/islandguide/admin-api/store"
)

// PartnerStore is the persistence surface the partner dispatcher needs.
type PartnerStore interface {
	GetPartner(ctx context.Context, id string) (model.PartnerRecord, error)
	InsertPartner(ctx context.Context, r model.PartnerRecord) (string, error)
	UpdatePartner(ctx context.Context, id string, cols map[string]any) error
	DeletePartner(ctx context.Context, id string) error
}

// PartnerDispatcher wraps partner writes. Partners support hard delete.
type PartnerDispatcher struct {
	store PartnerStore
	inv   invalidate.Invalidator
	log   *zerolog.Logger
}

func NewPartnerDispatcher(store PartnerStore, inv invalidate.Invalidator, log *zerolog.Logger) *PartnerDispatcher {
	return &PartnerDispatcher{store: store, inv: inv, log: log}
}

// Create validates the view model (taxonomy included) and persists a new
// partner. The attributes bag is re-shaped against the taxonomy before it
// is stored; fields outside the category's shape never reach the row.
func (d *PartnerDispatcher) Create(ctx context.Context, vm model.PartnerViewModel) Result {
	if verr := validator.Validate(ctx, vm); verr != nil {
		d.log.Warn().Str("entity", "partner").Str("error", verr.Error()).Msg("create rejected by validation")
		return fail(verr.Error())
	}

	record := model.PartnerToRecord(vm)
	record.Attributes = model.NormalizeAttributes(vm.Section, vm.MainCategory, vm.Attributes)

	id, err := d.store.InsertPartner(ctx, record)
	if err != nil {
		d.log.Error().Err(err).Str("entity", "partner").Str("name", vm.Name).Msg("failed to create partner")
		return fail("failed to create partner")
	}

	d.log.Info().Str("partner_id", id).Msg("partner created")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("partners"), invalidate.ItemKey("partners", id))
	return ok(id)
}

// Update applies a partial partner edit. A patch that changes section or
// main category must keep the taxonomy consistent, and a patched
// attributes bag is re-shaped against the row's effective taxonomy.
func (d *PartnerDispatcher) Update(ctx context.Context, id string, patch model.PartnerPatch) Result {
	if patch.Section != nil && patch.MainCategory != nil &&
		!model.ValidCategory(*patch.Section, *patch.MainCategory) {
		return fail("main category is not valid for the chosen section")
	}

	cols := patch.Columns()
	if patch.Attributes != nil {
		section, category, err := d.effectiveTaxonomy(ctx, id, patch)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail("partner not found")
			}
			d.log.Error().Err(err).Str("partner_id", id).Msg("failed to load partner for update")
			return fail("failed to update partner")
		}
		cols["attributes"] = model.NormalizeAttributes(section, category, *patch.Attributes)
	}

	if err := d.store.UpdatePartner(ctx, id, cols); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail("partner not found")
		}
		d.log.Error().Err(err).Str("partner_id", id).Msg("failed to update partner")
		return fail("failed to update partner")
	}

	d.log.Info().Str("partner_id", id).Int("fields", len(cols)).Msg("partner updated")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("partners"), invalidate.ItemKey("partners", id))
	return Result{Success: true, Id: id}
}

// effectiveTaxonomy resolves the section and main category an attributes
// patch is shaped against: values from the patch win, the stored row
// fills the rest.
func (d *PartnerDispatcher) effectiveTaxonomy(ctx context.Context, id string, patch model.PartnerPatch) (model.Section, model.MainCategory, error) {
	if patch.Section != nil && patch.MainCategory != nil {
		return *patch.Section, *patch.MainCategory, nil
	}

	record, err := d.store.GetPartner(ctx, id)
	if err != nil {
		return "", "", err
	}

	section := record.Section
	category := record.MainCategory
	if patch.Section != nil {
		section = *patch.Section
	}
	if patch.MainCategory != nil {
		category = *patch.MainCategory
	}
	return section, category, nil
}

// Delete removes a partner for good.
func (d *PartnerDispatcher) Delete(ctx context.Context, id string) Result {
	if err := d.store.DeletePartner(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail("partner not found")
		}
		d.log.Error().Err(err).Str("partner_id", id).Msg("failed to delete partner")
		return fail("failed to delete partner")
	}

	d.log.Info().Str("partner_id", id).Msg("partner deleted")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("partners"), invalidate.ItemKey("partners", id))
	return Result{Success: true, Id: id}
}
