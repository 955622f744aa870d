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

// ServiceStore is the persistence surface the service dispatcher needs.
type ServiceStore interface {
	InsertService(ctx context.Context, r model.ServiceRecord) (string, error)
	UpdateService(ctx context.Context, id string, cols map[string]any) error
	DeleteService(ctx context.Context, id string) error
}

type ServiceDispatcher struct {
	store ServiceStore
	inv   invalidate.Invalidator
	log   *zerolog.Logger
}

func NewServiceDispatcher(store ServiceStore, inv invalidate.Invalidator, log *zerolog.Logger) *ServiceDispatcher {
	return &ServiceDispatcher{store: store, inv: inv, log: log}
}

// Create validates and persists a new service.
func (d *ServiceDispatcher) Create(ctx context.Context, vm model.ServiceViewModel) Result {
	if verr := validator.Validate(ctx, vm); verr != nil {
		d.log.Warn().Str("entity", "service").Str("error", verr.Error()).Msg("create rejected by validation")
		return fail(verr.Error())
	}

	record := model.ServiceToRecord(vm)
	id, err := d.store.InsertService(ctx, record)
	if err != nil {
		d.log.Error().Err(err).Str("entity", "service").Str("name", vm.Name).Msg("failed to create service")
		return fail("failed to create service")
	}

	d.log.Info().Str("service_id", id).Msg("service created")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("services"), invalidate.ItemKey("services", id))
	return ok(id)
}

// Update applies a partial service edit.
func (d *ServiceDispatcher) Update(ctx context.Context, id string, patch model.ServicePatch) Result {
	cols := patch.Columns()
	if err := d.store.UpdateService(ctx, id, cols); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail("service not found")
		}
		d.log.Error().Err(err).Str("service_id", id).Msg("failed to update service")
		return fail("failed to update service")
	}

	d.log.Info().Str("service_id", id).Int("fields", len(cols)).Msg("service updated")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("services"), invalidate.ItemKey("services", id))
	return Result{Success: true, Id: id}
}

// Delete removes a service.
func (d *ServiceDispatcher) Delete(ctx context.Context, id string) Result {
	if err := d.store.DeleteService(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail("service not found")
		}
		d.log.Error().Err(err).Str("service_id", id).Msg("failed to delete service")
		return fail("failed to delete service")
	}

	d.log.Info().Str("service_id", id).Msg("service deleted")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("services"), invalidate.ItemKey("services", id))
	return Result{Success: true, Id: id}
}
