package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"latest": SortLatest,
		"oldest": SortOldest,
		"a-z":    SortAZ,
		"z-a":    SortZA,
		"":       SortOldest,
		"newest": SortOldest,
		"LATEST": SortOldest,
		" a-z ":  SortAZ,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSortKey(in), "input %q", in)
	}
}

func TestJobListParams_Normalize_Defaults(t *testing.T) {
	q := JobListParams{}.Normalize("owner-1", 100)

	assert.Equal(t, "owner-1", q.OwnerID)
	assert.Nil(t, q.Status)
	assert.Nil(t, q.JobType)
	assert.Equal(t, SortOldest, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Offset())
}

func TestJobListParams_Normalize_Filters(t *testing.T) {
	q := JobListParams{Status: "all", JobType: "all", Search: "  go  "}.Normalize("o", 100)
	assert.Nil(t, q.Status)
	assert.Nil(t, q.JobType)
	assert.Equal(t, "go", q.Search)

	q = JobListParams{Status: "interview", JobType: "remote"}.Normalize("o", 100)
	require.NotNil(t, q.Status)
	require.NotNil(t, q.JobType)
	assert.Equal(t, JobStatusInterview, *q.Status)
	assert.Equal(t, JobTypeRemote, *q.JobType)
}

func TestJobListParams_Normalize_PagingClamp(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		max       int
		wantPage  int
		wantLimit int
	}{
		{name: "numeric", page: "2", limit: "5", max: 100, wantPage: 2, wantLimit: 5},
		{name: "zero", page: "0", limit: "0", max: 100, wantPage: 1, wantLimit: 10},
		{name: "negative", page: "-3", limit: "-7", max: 100, wantPage: 1, wantLimit: 10},
		{name: "non numeric", page: "two", limit: "many", max: 100, wantPage: 1, wantLimit: 10},
		{name: "capped", page: "1", limit: "5000", max: 100, wantPage: 1, wantLimit: 100},
		{name: "unset ceiling", page: "1", limit: "500", max: 0, wantPage: 1, wantLimit: DefaultMaxLimit},
		{name: "limit beyond int range", page: "1", limit: "99999999999999999999", max: 100, wantPage: 1, wantLimit: 100},
		{name: "offset would overflow", page: "922337203685477582", limit: "10", max: 100, wantPage: math.MaxInt / 10, wantLimit: 10},
		{name: "page beyond int range", page: "99999999999999999999", limit: "10", max: 100, wantPage: math.MaxInt / 10, wantLimit: 10},
		{name: "max page with limit one", page: "99999999999999999999", limit: "1", max: 100, wantPage: math.MaxInt, wantLimit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := JobListParams{Page: tt.page, Limit: tt.limit}.Normalize("o", tt.max)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.GreaterOrEqual(t, q.Offset(), 0)
		})
	}
}

func TestValidSearch(t *testing.T) {
	assert.True(t, ValidSearch(""))
	assert.True(t, ValidSearch("Backend (Go) ü"))
	assert.False(t, ValidSearch("\xff"))
	assert.False(t, ValidSearch("go\x00lang"))
}

func TestJobQuery_OffsetAndNumPages(t *testing.T) {
	q := JobQuery{Page: 2, Limit: 5}
	assert.Equal(t, 5, q.Offset())
	assert.Equal(t, 3, q.NumPages(12))
	assert.Equal(t, 2, q.NumPages(10))
	assert.Equal(t, 1, q.NumPages(1))
	assert.Equal(t, 0, q.NumPages(0))
}
