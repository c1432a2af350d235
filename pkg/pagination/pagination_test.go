package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		params   Params
		want     []int
		wantMeta Meta
	}{
		{
			name:     "everything",
			params:   Params{},
			want:     []int{1, 2, 3, 4, 5},
			wantMeta: Meta{Page: 1, PageSize: 0, TotalItems: 5, TotalPages: 1},
		},
		{
			name:     "first page",
			params:   Params{Page: 1, PageSize: 2},
			want:     []int{1, 2},
			wantMeta: Meta{Page: 1, PageSize: 2, TotalItems: 5, TotalPages: 3},
		},
		{
			name:     "last partial page",
			params:   Params{Page: 3, PageSize: 2},
			want:     []int{5},
			wantMeta: Meta{Page: 3, PageSize: 2, TotalItems: 5, TotalPages: 3},
		},
		{
			name:     "past the end",
			params:   Params{Page: 4, PageSize: 2},
			want:     []int{},
			wantMeta: Meta{Page: 4, PageSize: 2, TotalItems: 5, TotalPages: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Page(items, tt.params)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}

	t.Run("empty", func(t *testing.T) {
		got, meta := Page([]string{}, Params{})
		assert.Empty(t, got)
		assert.Equal(t, 0, meta.TotalPages)
	})
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    Params
		wantErr bool
	}{
		{name: "defaults", query: "", want: Params{Page: 1, PageSize: 0}},
		{name: "both", query: "page=3&pageSize=25", want: Params{Page: 3, PageSize: 25}},
		{name: "zero page size", query: "pageSize=0", want: Params{Page: 1, PageSize: 0}},
		{name: "page zero", query: "page=0", wantErr: true},
		{name: "negative size", query: "pageSize=-1", wantErr: true},
		{name: "not a number", query: "page=two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := FromQuery(q)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
