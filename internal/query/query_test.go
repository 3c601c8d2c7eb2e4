package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklibrary/internal/apperr"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Params
		want    Params
		wantErr bool
	}{
		{name: "valid", in: Params{Page: 2, PerPage: 20}, want: Params{Page: 2, PerPage: 20}},
		{name: "default per_page", in: Params{Page: 1}, want: Params{Page: 1, PerPage: 10}},
		{name: "clamped per_page", in: Params{Page: 1, PerPage: 500}, want: Params{Page: 1, PerPage: 100}},
		{name: "page zero", in: Params{Page: 0, PerPage: 10}, wantErr: true},
		{name: "negative page", in: Params{Page: -3, PerPage: 10}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize(10, 100)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	page1, meta1 := Paginate(items, Params{Page: 1, PerPage: 10})
	assert.Len(t, page1, 10)
	assert.Equal(t, 25, meta1.Total)
	assert.Equal(t, 3, meta1.TotalPages)
	assert.True(t, meta1.HasNext)
	assert.False(t, meta1.HasPrev)

	page3, meta3 := Paginate(items, Params{Page: 3, PerPage: 10})
	assert.Len(t, page3, 5)
	assert.False(t, meta3.HasNext)
	assert.True(t, meta3.HasPrev)
	assert.Equal(t, 21, page3[0])

	beyond, metaBeyond := Paginate(items, Params{Page: 10, PerPage: 10})
	assert.Empty(t, beyond)
	assert.Equal(t, 25, metaBeyond.Total)
}

func TestValidateSearch(t *testing.T) {
	q, err := ValidateSearch("  gatsby  ", 2, 100)
	require.NoError(t, err)
	assert.Equal(t, "gatsby", q)

	_, err = ValidateSearch("a", 2, 100)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = ValidateSearch("   ", 2, 100)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err = ValidateSearch(string(long), 2, 100)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestValidateSearchCountsRunes(t *testing.T) {
	// 100 runes but 200 bytes: at the character limit, not over it
	q, err := ValidateSearch(strings.Repeat("é", 100), 2, 100)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 100), q)

	// one rune is below the two-character minimum
	_, err = ValidateSearch("é", 2, 100)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
