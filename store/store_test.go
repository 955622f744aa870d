package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpdate(t *testing.T) {
	cols := map[string]any{
		"title":    "New Title",
		"capacity": 100,
		"day":      nil,
	}

	set, args := buildUpdate(cols)

	// Columns render sorted so the statement is deterministic, with $1
	// reserved for the row id.
	assert.Equal(t, "capacity = $2, day = $3, title = $4", set)
	assert.Equal(t, []any{100, nil, "New Title"}, args)
}

func TestBuildUpdateEmpty(t *testing.T) {
	set, args := buildUpdate(map[string]any{})
	assert.Equal(t, "", set)
	assert.Empty(t, args)
}

func TestListParamsNormalization(t *testing.T) {
	tests := []struct {
		name       string
		params     ListParams
		wantLimit  int
		wantOffset int
	}{
		{"defaults", ListParams{}, 20, 0},
		{"page two", ListParams{Page: 2, PageSize: 20}, 20, 20},
		{"zero page clamps to first", ListParams{Page: 0, PageSize: 10}, 10, 0},
		{"negative page clamps to first", ListParams{Page: -3, PageSize: 10}, 10, 0},
		{"oversized page size clamps", ListParams{Page: 1, PageSize: 500}, 100, 0},
		{"offset uses clamped size", ListParams{Page: 3, PageSize: 500}, 100, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := tt.params.limitOffset()
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestSchemaPlaceholder(t *testing.T) {
	s := &Store{schema: "island"}
	assert.Equal(t,
		`SELECT id FROM island.events`,
		s.sql(`SELECT id FROM {{schema}}.events`))
}
