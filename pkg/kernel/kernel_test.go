package kernel

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PaginationOptions
		want PaginationOptions
	}{
		{"zero values", PaginationOptions{}, PaginationOptions{Page: 1, PageSize: 20}},
		{"too large", PaginationOptions{Page: 3, PageSize: 500}, PaginationOptions{Page: 3, PageSize: 20}},
		{"valid", PaginationOptions{Page: 2, PageSize: 50}, PaginationOptions{Page: 2, PageSize: 50}},
		{"huge page", PaginationOptions{Page: math.MaxInt64 / 10, PageSize: 20}, PaginationOptions{Page: MaxPage, PageSize: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestOffsetNeverNegative(t *testing.T) {
	for _, page := range []int{math.MaxInt64, 922337203685477581, MaxPage + 1} {
		opts := PaginationOptions{Page: page, PageSize: MaxPageSize}.Normalize()
		assert.Positive(t, opts.Offset(), "page %d", page)
	}
}

func TestNewPaginatedBeyondLastPage(t *testing.T) {
	opts := PaginationOptions{Page: 5, PageSize: 10}
	p := NewPaginated[string](nil, opts, 21)

	assert.Equal(t, 40, opts.Offset())
	assert.Equal(t, 3, p.Page.Pages)
	assert.Equal(t, 21, p.Page.Total)
	assert.True(t, p.Empty)
	assert.NotNil(t, p.Items)
}

func TestMapPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, PaginationOptions{Page: 1, PageSize: 2}, 4)
	out := MapPaginated(p, func(i int) string { return string(rune('a' + i)) })

	assert.Equal(t, []string{"b", "c"}, out.Items)
	assert.Equal(t, p.Page, out.Page)
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ana@example.com").IsValid())
	assert.False(t, Email("Ana <ana@example.com>").IsValid())
	assert.Equal(t, Email("ana@example.com"), Email("  Ana@Example.COM ").Normalize())
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-04-01"`), &d))
	assert.Equal(t, "2026-04-01", d.String())

	out, err := json.Marshal(NewDate(time.Date(2026, 4, 1, 22, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-04-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"01/04/2026"`), &d))
}
