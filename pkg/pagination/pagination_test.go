package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/activity", nil)
	p := FromRequest(r)
	assert.Equal(t, DefaultPage, p.Number)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestFromRequestParsesAndClamps(t *testing.T) {
	r := httptest.NewRequest("GET", "/activity?page=3&limit=25", nil)
	p := FromRequest(r)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 25, p.Limit)

	r = httptest.NewRequest("GET", "/activity?page=-1&limit=9999", nil)
	p = FromRequest(r)
	assert.Equal(t, DefaultPage, p.Number)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	// page p with size s queries the range starting at (p-1)*s
	p := Page{Number: 1, Limit: 10}
	assert.Equal(t, 0, p.Offset())

	p = Page{Number: 4, Limit: 25}
	assert.Equal(t, 75, p.Offset())
}

func TestHasNext(t *testing.T) {
	// next page exists iff page*size < total
	tests := []struct {
		page    int
		limit   int
		total   int64
		hasNext bool
	}{
		{1, 10, 25, true},
		{2, 10, 25, true},
		{3, 10, 25, false},
		{1, 10, 10, false},
		{1, 10, 11, true},
		{1, 10, 0, false},
	}
	for _, tt := range tests {
		p := Page{Number: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.hasNext, p.HasNext(tt.total), "page=%d limit=%d total=%d", tt.page, tt.limit, tt.total)
	}
}

func TestHasPrev(t *testing.T) {
	assert.False(t, Page{Number: 1, Limit: 10}.HasPrev())
	assert.True(t, Page{Number: 2, Limit: 10}.HasPrev())
}

func TestMeta(t *testing.T) {
	p := Page{Number: 2, Limit: 10}
	meta := p.Meta(25)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	meta = Page{Number: 1, Limit: 10}.Meta(30)
	assert.Equal(t, 3, meta.TotalPages)
}
