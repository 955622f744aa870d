package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandguide/admin-api/invalidate"
	"github.com/islandguide/admin-api/model"
	"github.com/islandguide/admin-api/store"
)

type fakeEventStore struct {
	inserted  []model.EventRecord
	updated   map[string]map[string]any
	insertErr error
	updateErr error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{updated: map[string]map[string]any{}}
}

func (f *fakeEventStore) InsertEvent(_ context.Context, r model.EventRecord) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, r)
	return "ev-new", nil
}

func (f *fakeEventStore) UpdateEvent(_ context.Context, id string, cols map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = cols
	return nil
}

func testLogger() *zerolog.Logger {
	log := zerolog.Nop()
	return &log
}

func eventuallyKeys(t *testing.T, rec *invalidate.Recorder, want ...string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return len(rec.Keys()) == len(want)
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, want, rec.Keys())
}

func validEventVM() model.EventViewModel {
	return model.EventViewModel{
		Title:    "Night Market",
		Category: "market",
		Time:     "2024-03-11T18:00",
	}
}

func TestEventCreate(t *testing.T) {
	store := newFakeEventStore()
	rec := &invalidate.Recorder{}
	d := NewEventDispatcher(store, rec, testLogger())

	result := d.Create(context.Background(), validEventVM())

	assert.True(t, result.Success)
	assert.Equal(t, "ev-new", result.Id)
	assert.Empty(t, result.Error)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "Night Market", store.inserted[0].Title)
	require.NotNil(t, store.inserted[0].Day)
	assert.Equal(t, 1, *store.inserted[0].Day)

	eventuallyKeys(t, rec, "events", "events:ev-new")
}

func TestEventCreateRejectsInvalid(t *testing.T) {
	store := newFakeEventStore()
	rec := &invalidate.Recorder{}
	d := NewEventDispatcher(store, rec, testLogger())

	vm := validEventVM()
	vm.Title = ""

	result := d.Create(context.Background(), vm)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Title")
	assert.Empty(t, store.inserted)
	assert.Empty(t, rec.Keys())
}

func TestEventCreateStoreFailure(t *testing.T) {
	store := newFakeEventStore()
	store.insertErr = errors.New("connection refused")
	rec := &invalidate.Recorder{}
	d := NewEventDispatcher(store, rec, testLogger())

	result := d.Create(context.Background(), validEventVM())

	assert.False(t, result.Success)
	assert.Equal(t, "failed to create event", result.Error)
	assert.NotContains(t, result.Error, "connection refused")
	assert.Empty(t, rec.Keys())
}

func TestEventUpdate(t *testing.T) {
	store := newFakeEventStore()
	rec := &invalidate.Recorder{}
	d := NewEventDispatcher(store, rec, testLogger())

	title := "Renamed"
	result := d.Update(context.Background(), "ev-1", model.EventPatch{Title: &title})

	assert.True(t, result.Success)
	assert.Equal(t, "ev-1", result.Id)
	assert.Equal(t, "Renamed", store.updated["ev-1"]["title"])

	eventuallyKeys(t, rec, "events", "events:ev-1")
}

func TestEventUpdateNotFound(t *testing.T) {
	st := newFakeEventStore()
	st.updateErr = store.ErrNotFound
	rec := &invalidate.Recorder{}
	d := NewEventDispatcher(st, rec, testLogger())

	title := "Renamed"
	result := d.Update(context.Background(), "missing", model.EventPatch{Title: &title})

	assert.False(t, result.Success)
	assert.Equal(t, "event not found", result.Error)
	assert.Empty(t, rec.Keys())
}

func TestEventUpdateStoreFailure(t *testing.T) {
	store := newFakeEventStore()
	store.updateErr = errors.New("deadlock detected")
	rec := &invalidate.Recorder{}
	d := NewEventDispatcher(store, rec, testLogger())

	title := "Renamed"
	result := d.Update(context.Background(), "ev-1", model.EventPatch{Title: &title})

	assert.False(t, result.Success)
	assert.Equal(t, "failed to update event", result.Error)
	assert.Empty(t, rec.Keys())
}
