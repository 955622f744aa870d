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

// EventStore is the persistence surface the event dispatcher needs.
type EventStore interface {
	InsertEvent(ctx context.Context, r model.EventRecord) (string, error)
	UpdateEvent(ctx context.Context, id string, cols map[string]any) error
}

// EventDispatcher wraps event writes. Events are never hard-deleted.
type EventDispatcher struct {
	store EventStore
	inv   invalidate.Invalidator
	log   *zerolog.Logger
}

func NewEventDispatcher(store EventStore, inv invalidate.Invalidator, log *zerolog.Logger) *EventDispatcher {
	return &EventDispatcher{store: store, inv: inv, log: log}
}

// Create validates and persists a new event, returning the assigned id.
func (d *EventDispatcher) Create(ctx context.Context, vm model.EventViewModel) Result {
	if verr := validator.Validate(ctx, vm); verr != nil {
		d.log.Warn().Str("entity", "event").Str("error", verr.Error()).Msg("create rejected by validation")
		return fail(verr.Error())
	}

	record := model.EventToRecord(vm)
	id, err := d.store.InsertEvent(ctx, record)
	if err != nil {
		d.log.Error().Err(err).Str("entity", "event").Str("title", vm.Title).Msg("failed to create event")
		return fail("failed to create event")
	}

	d.log.Info().Str("event_id", id).Msg("event created")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("events"), invalidate.ItemKey("events", id))
	return ok(id)
}

// Update applies a partial event edit. Last write wins.
func (d *EventDispatcher) Update(ctx context.Context, id string, patch model.EventPatch) Result {
	cols := patch.Columns()
	if err := d.store.UpdateEvent(ctx, id, cols); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail("event not found")
		}
		d.log.Error().Err(err).Str("event_id", id).Msg("failed to update event")
		return fail("failed to update event")
	}

	d.log.Info().Str("event_id", id).Int("fields", len(cols)).Msg("event updated")
	fireInvalidation(ctx, d.inv, invalidate.ListKey("events"), invalidate.ItemKey("events", id))
	return Result{Success: true, Id: id}
}
