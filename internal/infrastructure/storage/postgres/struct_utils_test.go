package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

type mockCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

type mockDocument struct {
	entity.BaseDocument
	Number  string `db:"number" json:"number"`
	Derived string `db:"-" json:"derived"`
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	for _, expected := range []string{"id", "deletion_mark", "version", "code", "name"} {
		assert.Contains(t, cols, expected)
	}
}

func TestExtractDBColumns_DocumentAuditFields(t *testing.T) {
	cols := ExtractDBColumns[mockDocument]()

	for _, expected := range []string{
		"id", "version", "created_at", "updated_at", "created_by", "updated_by", "number",
	} {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "derived")
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code: "TEST",
		Name: "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
}

func TestStructToMap_DocumentTimestamps(t *testing.T) {
	now := time.Now().UTC()
	doc := mockDocument{
		BaseDocument: entity.BaseDocument{
			BaseEntity: entity.NewBaseEntity(),
			CreatedAt:  now,
			UpdatedAt:  now,
			CreatedBy:  "alice",
		},
		Number: "SAL-2026-00001",
	}

	m := StructToMap(doc)

	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "alice", m["created_by"])
	assert.Equal(t, "SAL-2026-00001", m["number"])
}
