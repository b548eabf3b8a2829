package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/stores", nil)
	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "desc", p.Order)
	assert.Empty(t, p.Search)
	assert.Equal(t, 0, p.Offset())
}

func TestFromRequestExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/stores?page=3&limit=5&order=asc&search=%20coffee%20", nil)
	p := FromRequest(r)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, "asc", p.Order)
	assert.Equal(t, "coffee", p.Search)
	assert.Equal(t, 10, p.Offset())
}

func TestFromRequestClampsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/stores?page=-2&limit=abc&order=SIDEWAYS", nil)
	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "desc", p.Order)
}

func TestTotalPages(t *testing.T) {
	p := Params{Page: 1, Limit: 10}

	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 5, p.TotalPages(42))
}
