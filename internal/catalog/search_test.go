package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAnyTerm(t *testing.T) {
	entries := []Entry{
		{Class: "10", Subject: "Mathematics", Year: "2023", Path: "a"},
		{Class: "10", Subject: "Science", Year: "2022", Path: "b"},
		{Class: "12", Subject: "Physics", Year: "2021", Path: "c"},
	}

	got := Search(entries, "PHYSICS", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Path)

	got = Search(entries, "math 2022", 10)
	require.Len(t, got, 2, "terms are OR-ed")
	assert.Equal(t, "a", got[0].Path)
	assert.Equal(t, "b", got[1].Path)

	got = Search(entries, "class 10", 10)
	assert.Len(t, got, 3, "the literal word class matches every entry")

	assert.Empty(t, Search(entries, "chemistry", 10))
	assert.Empty(t, Search(entries, "   ", 10))
}

func TestSearchLimitKeepsCatalogOrder(t *testing.T) {
	var entries []Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, Entry{Class: "10", Subject: "Science", Year: fmt.Sprint(2000 + i), Path: fmt.Sprint(i)})
	}
	got := Search(entries, "science", DefaultSearchLimit)
	require.Len(t, got, DefaultSearchLimit)
	for i, e := range got {
		assert.Equal(t, fmt.Sprint(i), e.Path)
	}
	assert.Len(t, Search(entries, "science", 0), 25)
}

func TestStoreSearch(t *testing.T) {
	s := NewStore(DefaultEntries()...)
	got := s.Search("economics 2022", DefaultSearchLimit)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), DefaultSearchLimit)
	assert.Equal(t, "6", got[0].Class, "first match follows catalog insertion order")
}
