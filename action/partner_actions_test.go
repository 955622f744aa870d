package action

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandguide/admin-api/invalidate"
	"github.com/islandguide/admin-api/model"
	"github.com/islandguide/admin-api/store"
)

type fakePartnerStore struct {
	records   map[string]model.PartnerRecord
	inserted  []model.PartnerRecord
	updated   map[string]map[string]any
	deleted   []string
	insertErr error
	updateErr error
	deleteErr error
}

func newFakePartnerStore() *fakePartnerStore {
	return &fakePartnerStore{
		records: map[string]model.PartnerRecord{},
		updated: map[string]map[string]any{},
	}
}

func (f *fakePartnerStore) GetPartner(_ context.Context, id string) (model.PartnerRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return model.PartnerRecord{}, store.ErrNotFound
	}
	return r, nil
}

func (f *fakePartnerStore) InsertPartner(_ context.Context, r model.PartnerRecord) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, r)
	return "pt-new", nil
}

func (f *fakePartnerStore) UpdatePartner(_ context.Context, id string, cols map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = cols
	return nil
}

func (f *fakePartnerStore) DeletePartner(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func validPartnerVM() model.PartnerViewModel {
	return model.PartnerViewModel{
		Name:         "Sunset Villa",
		Section:      model.SectionEstablishment,
		MainCategory: model.CategoryAccommodation,
	}
}

func TestPartnerCreate(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	result := d.Create(context.Background(), validPartnerVM())

	assert.True(t, result.Success)
	assert.Equal(t, "pt-new", result.Id)
	require.Len(t, st.inserted, 1)

	eventuallyKeys(t, rec, "partners", "partners:pt-new")
}

func TestPartnerCreateRejectsBadTaxonomy(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	vm := validPartnerVM()
	vm.MainCategory = model.CategoryHealth

	result := d.Create(context.Background(), vm)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "MainCategory")
	assert.Empty(t, st.inserted)
	assert.Empty(t, rec.Keys())
}

func TestPartnerUpdateTaxonomyGuard(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	section := model.SectionService
	category := model.CategoryFoodDrink // ESTABLISHMENT category under SERVICE

	result := d.Update(context.Background(), "pt-1", model.PartnerPatch{
		Section:      &section,
		MainCategory: &category,
	})

	assert.False(t, result.Success)
	assert.Empty(t, st.updated)
}

func TestPartnerCreateShapesAttributes(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	// WELLNESS has no shape; whatever the client sends must not persist.
	vm := validPartnerVM()
	vm.Section = model.SectionService
	vm.MainCategory = model.CategoryWellness
	vm.Attributes = map[string]any{"junk": 1, "roomCount": 99}

	result := d.Create(context.Background(), vm)
	assert.True(t, result.Success)
	require.Len(t, st.inserted, 1)
	assert.Nil(t, st.inserted[0].Attributes)
}

func TestPartnerCreateFiltersAttributeFields(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	vm := validPartnerVM()
	vm.Attributes = map[string]any{
		"facilities": []any{"Swimming Pool"},
		"roomCount":  12,
		"junk":       "dropped",
	}

	result := d.Create(context.Background(), vm)
	assert.True(t, result.Success)
	require.Len(t, st.inserted, 1)

	var attrs model.AccommodationAttributes
	require.NoError(t, json.Unmarshal(st.inserted[0].Attributes, &attrs))
	assert.Equal(t, "hotel", attrs.AccommodationType)
	assert.Equal(t, []string{"Swimming Pool"}, attrs.Facilities)
	require.NotNil(t, attrs.RoomCount)
	assert.Equal(t, 12, *attrs.RoomCount)

	var bag map[string]any
	require.NoError(t, json.Unmarshal(st.inserted[0].Attributes, &bag))
	assert.NotContains(t, bag, "junk")
}

func TestPartnerUpdateShapesAttributes(t *testing.T) {
	st := newFakePartnerStore()
	st.records["pt-1"] = model.PartnerRecord{
		Id:           "pt-1",
		Section:      model.SectionService,
		MainCategory: model.CategoryWellness,
	}
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	attrs := map[string]any{"junk": true}
	result := d.Update(context.Background(), "pt-1", model.PartnerPatch{Attributes: &attrs})

	assert.True(t, result.Success)
	require.Contains(t, st.updated["pt-1"], "attributes")
	assert.Nil(t, st.updated["pt-1"]["attributes"])
}

func TestPartnerUpdateAttributesMissingRow(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	attrs := map[string]any{"junk": true}
	result := d.Update(context.Background(), "missing", model.PartnerPatch{Attributes: &attrs})

	assert.False(t, result.Success)
	assert.Equal(t, "partner not found", result.Error)
	assert.Empty(t, st.updated)
}

func TestPartnerUpdateNotFound(t *testing.T) {
	st := newFakePartnerStore()
	st.updateErr = store.ErrNotFound
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	name := "Renamed"
	result := d.Update(context.Background(), "missing", model.PartnerPatch{Name: &name})

	assert.False(t, result.Success)
	assert.Equal(t, "partner not found", result.Error)
	assert.Empty(t, rec.Keys())
}

func TestPartnerUpdate(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	name := "Renamed"
	result := d.Update(context.Background(), "pt-1", model.PartnerPatch{Name: &name})

	assert.True(t, result.Success)
	assert.Equal(t, "Renamed", st.updated["pt-1"]["name"])
	eventuallyKeys(t, rec, "partners", "partners:pt-1")
}

func TestPartnerDelete(t *testing.T) {
	st := newFakePartnerStore()
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	result := d.Delete(context.Background(), "pt-1")

	assert.True(t, result.Success)
	assert.Equal(t, []string{"pt-1"}, st.deleted)
	eventuallyKeys(t, rec, "partners", "partners:pt-1")
}

func TestPartnerDeleteNotFound(t *testing.T) {
	st := newFakePartnerStore()
	st.deleteErr = store.ErrNotFound
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	result := d.Delete(context.Background(), "missing")

	assert.False(t, result.Success)
	assert.Equal(t, "partner not found", result.Error)
	assert.Empty(t, rec.Keys())
}

func TestPartnerDeleteStoreFailure(t *testing.T) {
	st := newFakePartnerStore()
	st.deleteErr = errors.New("connection refused")
	rec := &invalidate.Recorder{}
	d := NewPartnerDispatcher(st, rec, testLogger())

	result := d.Delete(context.Background(), "pt-1")

	assert.False(t, result.Success)
	assert.Equal(t, "failed to delete partner", result.Error)
}
