package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRoundTrip(t *testing.T) {
	record := ServiceRecord{
		Id:          "sv-1",
		Name:        "Island Clinic",
		Category:    ServiceHealth,
		Subcategory: "clinic",
		Description: "Walk-in clinic",
		Email:       "clinic@example.com",
		PriceRange:  "€€",
		Languages:   []string{"en"},
		IsActive:    true,
		ServiceData: json.RawMessage(`{"emergency":true,"services":["general"]}`),
	}

	vm := ServiceFromRecord(record, nil)
	back := ServiceToRecord(vm)

	assert.Equal(t, record.Id, back.Id)
	assert.Equal(t, record.Name, back.Name)
	assert.Equal(t, record.Category, back.Category)
	assert.Equal(t, record.Languages, back.Languages)
	assert.True(t, back.IsActive)

	var data map[string]any
	require.NoError(t, json.Unmarshal(back.ServiceData, &data))
	assert.Equal(t, true, data["emergency"])
}

func TestServiceFromRecordDefaults(t *testing.T) {
	vm := ServiceFromRecord(ServiceRecord{Id: "sparse"}, nil)

	assert.NotNil(t, vm.Languages)
	assert.NotNil(t, vm.ServiceData)
	assert.Empty(t, vm.ServiceData)
}

func TestServiceFromRecordStringEncodedData(t *testing.T) {
	record := ServiceRecord{
		Id:          "sv-2",
		ServiceData: json.RawMessage(`"{\"treatments\":[\"massage\"]}"`),
	}

	vm := ServiceFromRecord(record, nil)
	treatments, ok := vm.ServiceData["treatments"].([]any)
	require.True(t, ok)
	assert.Equal(t, "massage", treatments[0])
}

func TestServicePatchColumns(t *testing.T) {
	name := "Renamed Clinic"
	active := false
	data := map[string]any{"emergency": false}

	patch := ServicePatch{Name: &name, IsActive: &active, ServiceData: &data}
	cols := patch.Columns()

	assert.Equal(t, "Renamed Clinic", cols["name"])
	assert.Equal(t, false, cols["is_active"])
	assert.Contains(t, cols, "service_data")
	assert.NotContains(t, cols, "category")
}
