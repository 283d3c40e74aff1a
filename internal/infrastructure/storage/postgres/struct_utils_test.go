package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"krilo/internal/core/entity"
	"krilo/internal/core/id"
)

type testEntity struct {
	entity.Base

	Name     string `db:"name"`
	Internal string `db:"-"`
	NoTag    string
	Price    float64 `db:"price"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testEntity]()
	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "name", "price"}, cols)
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	cols := ExtractDBColumns[*testEntity]()
	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "name", "price"}, cols)
}

func TestExtractDBColumns_NonStruct(t *testing.T) {
	assert.Nil(t, ExtractDBColumns[int]())
}

func TestStructToMap(t *testing.T) {
	entityID := id.New()
	now := time.Now().UTC()

	e := testEntity{
		Base: entity.Base{
			ID:        entityID,
			Version:   3,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     "Widget",
		Internal: "hidden",
		NoTag:    "skipped",
		Price:    9.5,
	}

	m := StructToMap(e)
	assert.Equal(t, map[string]any{
		"id":         entityID,
		"version":    3,
		"created_at": now,
		"updated_at": now,
		"name":       "Widget",
		"price":      9.5,
	}, m)

	// Pointer input behaves the same.
	assert.Equal(t, m, StructToMap(&e))
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}

type hiddenBase struct {
	Secret string `db:"secret"`
}

type partlyHidden struct {
	hiddenBase

	Name string `db:"name"`
}

func TestStructToMap_UnexportedEmbedded(t *testing.T) {
	// Fields reached through an unexported embedded struct cannot be
	// read via reflection; they are skipped rather than panicking.
	m := StructToMap(partlyHidden{hiddenBase: hiddenBase{Secret: "x"}, Name: "Widget"})
	assert.Equal(t, map[string]any{"name": "Widget"}, m)
}
