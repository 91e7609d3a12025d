package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testColumns = []Meta{
	{Field: "id", Header: "ID"},
	{Field: "title", Header: "Title"},
	{Field: "genre", Header: "Genre"},
	{Field: "author", Header: "Author"},
}

func TestRegistry_Select(t *testing.T) {
	r := NewRegistry(testColumns, "id", "title")

	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{name: "canonical order kept", selected: []string{"author", "id", "genre"}, want: []string{"id", "genre", "author"}},
		{name: "empty selection", selected: nil, want: []string{}},
		{name: "unknown fields ignored", selected: []string{"price", "title"}, want: []string{"title"}},
		{name: "duplicates collapse", selected: []string{"title", "title", "id"}, want: []string{"id", "title"}},
		{name: "everything", selected: []string{"genre", "author", "title", "id"}, want: []string{"id", "title", "genre", "author"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fields(r.Select(tt.selected)))
		})
	}
}

func TestRegistry_SelectEveryPermutation(t *testing.T) {
	r := NewRegistry(testColumns)
	fields := Fields(testColumns)

	// every subset, in reverse order, must come back in canonical order
	for mask := 0; mask < 1<<len(fields); mask++ {
		var picked []string
		for i := len(fields) - 1; i >= 0; i-- {
			if mask&(1<<i) != 0 {
				picked = append(picked, fields[i])
			}
		}
		got := Fields(r.Select(picked))
		assert.Len(t, got, len(picked))
		assert.ElementsMatch(t, picked, got)
		for i := 1; i < len(got); i++ {
			assert.Less(t, indexOf(fields, got[i-1]), indexOf(fields, got[i]))
		}
	}
}

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry(testColumns, "author", "missing", "id")

	assert.Equal(t, []string{"id", "author"}, Fields(r.Defaults()))
	assert.Equal(t, "Genre", r.Header("genre"))
	assert.Equal(t, "unknown", r.Header("unknown"))
	assert.True(t, r.Has("title"))
	assert.False(t, r.Has("price"))
}

func TestRegistry_CanonicalIsCopy(t *testing.T) {
	r := NewRegistry(testColumns)
	c := r.Canonical()
	c[0].Header = "changed"
	assert.Equal(t, "ID", r.Canonical()[0].Header)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
