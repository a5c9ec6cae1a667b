package types

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterParams_RoundTripThroughQuery(t *testing.T) {
	filter := Filter{
		Search:   "sales",
		Ordering: []string{"-created_at", "name"},
		Filter:   map[string]string{"organization_id": "42"},
		Page:     2,
		PageSize: 10,
	}

	parsed := ParseFilterFromQuery(filter.Params().Values())

	assert.Equal(t, filter.Search, parsed.Search)
	assert.Equal(t, filter.Ordering, parsed.Ordering)
	assert.Equal(t, filter.Filter, parsed.Filter)
	assert.Equal(t, 2, parsed.Page)
	assert.Equal(t, 10, parsed.PageSize)
	assert.Equal(t, 10, parsed.Offset())
}

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	parsed := ParseFilterFromQuery(url.Values{"page_size": {"100000"}, "page": {"-3"}})

	assert.Equal(t, 1, parsed.Page)
	assert.Equal(t, MaxPageSize, parsed.PageSize)
	assert.Equal(t, 0, parsed.Offset())
	assert.Empty(t, parsed.Filter)
}

func TestParseFilterFromQuery_HugePageIsCapped(t *testing.T) {
	parsed := ParseFilterFromQuery(url.Values{"page": {"922337203685477581"}, "page_size": {"20"}})

	assert.Equal(t, MaxPage, parsed.Page)
	assert.Positive(t, parsed.Offset())
}

func TestOffset_Overflow(t *testing.T) {
	f := Filter{Page: math.MaxInt / 2, PageSize: 20}
	assert.Equal(t, math.MaxInt, f.Offset())

	assert.Equal(t, 0, Filter{Page: 5}.Offset())
}

func TestParams_ValuesSkipsEmpty(t *testing.T) {
	values := Params{"organization_id": "1", "search": ""}.Values()
	assert.Equal(t, "1", values.Get("organization_id"))
	assert.False(t, values.Has("search"))
}

func TestParams_WithDoesNotMutate(t *testing.T) {
	base := Params{"a": "1"}
	next := base.With("b", "2")
	assert.Len(t, base, 1)
	assert.Equal(t, "2", next["b"])
}

func TestNewPage_NilResultsBecomeEmpty(t *testing.T) {
	page := NewPage[int](nil, 0, nil, nil)
	assert.NotNil(t, page.Results)
	assert.False(t, page.HasNext())
}

func TestHasNext(t *testing.T) {
	empty, link := "", "http://api/teams/?page=2"
	emptyPage := NewPage[int](nil, 0, &empty, nil)
	assert.False(t, emptyPage.HasNext())
	linkPage := NewPage[int](nil, 3, &link, nil)
	assert.True(t, linkPage.HasNext())

	var missing *PaginatedResponse[int]
	assert.False(t, missing.HasNext())
}
