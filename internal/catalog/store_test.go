package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOrdering(t *testing.T) {
	s := NewStore(
		Entry{Class: "9", Subject: "Science", Year: "2022", Path: "a"},
		Entry{Class: "10", Subject: "Mathematics", Year: "2022", Path: "b"},
		Entry{Class: "10", Subject: "English", Year: "2021", Path: "c"},
		Entry{Class: "10", Subject: "Mathematics", Year: "2023", Path: "d"},
		Entry{Class: "10", Subject: "Mathematics", Year: "2019", Path: "e"},
	)

	assert.Equal(t, []string{"10", "9"}, s.Classes(), "classes sort lexicographically")

	subjects, ok := s.Subjects("10")
	require.True(t, ok)
	assert.Equal(t, []string{"Mathematics", "English"}, subjects, "subjects keep insertion order")

	years, ok := s.Years("10", "Mathematics")
	require.True(t, ok)
	assert.Equal(t, []string{"2023", "2022", "2019"}, years, "years are most recent first")

	entries := s.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, "a", entries[0].Path)
	assert.Equal(t, []string{"b", "d", "e"}, []string{entries[1].Path, entries[2].Path, entries[3].Path})
	assert.Equal(t, 5, s.Len())
}

func TestStoreLookupMisses(t *testing.T) {
	s := NewStore(Entry{Class: "10", Subject: "Mathematics", Year: "2023", Path: "p"})

	_, ok := s.Lookup("11", "Mathematics", "2023")
	assert.False(t, ok)
	_, ok = s.Lookup("10", "Physics", "2023")
	assert.False(t, ok)
	_, ok = s.Lookup("10", "Mathematics", "2020")
	assert.False(t, ok)
	_, ok = s.Subjects("11")
	assert.False(t, ok)
	_, ok = s.Years("10", "Physics")
	assert.False(t, ok)

	empty := NewStore()
	assert.Empty(t, empty.Classes())
	assert.Empty(t, empty.Entries())
	assert.Zero(t, empty.Len())
}

func TestStorePutOverwrites(t *testing.T) {
	s := NewStore(Entry{Class: "10", Subject: "Mathematics", Year: "2023", Path: "old.pdf"})

	assert.True(t, s.Put(Entry{Class: "10", Subject: "Mathematics", Year: "2023", Path: "new.pdf"}))
	assert.True(t, s.Put(Entry{Class: "10", Subject: "Mathematics", Year: "2023", Path: "new.pdf"}))

	path, ok := s.Lookup("10", "Mathematics", "2023")
	require.True(t, ok)
	assert.Equal(t, "new.pdf", path)
	assert.Equal(t, 1, s.Len())
}

func TestStorePutCreatesLevels(t *testing.T) {
	s := NewStore(Entry{Class: "10", Subject: "Mathematics", Year: "2023", Path: "class10/math/2023.pdf"})

	assert.False(t, s.Put(Entry{Class: "10", Subject: "Mathematics", Year: "2024", Path: "class10/math/2024.pdf"}))
	assert.False(t, s.Put(Entry{Class: "13", Subject: "Art", Year: "2024", Path: "class13/art/2024.pdf"}))

	path, ok := s.Lookup("10", "Mathematics", "2023")
	require.True(t, ok)
	assert.Equal(t, "class10/math/2023.pdf", path)
	path, ok = s.Lookup("10", "Mathematics", "2024")
	require.True(t, ok)
	assert.Equal(t, "class10/math/2024.pdf", path)
	assert.Contains(t, s.Classes(), "13")
}

func TestStoreSummary(t *testing.T) {
	s := NewStore(
		Entry{Class: "9", Subject: "Hindi", Year: "2023", Path: "x"},
		Entry{Class: "10", Subject: "Science", Year: "2023", Path: "x"},
		Entry{Class: "10", Subject: "Science", Year: "2021", Path: "x"},
		Entry{Class: "10", Subject: "Art", Year: "2022", Path: "x"},
	)
	summary := s.Summary()
	require.Len(t, summary, 2)
	assert.Equal(t, "10", summary[0].Class)
	require.Len(t, summary[0].Subjects, 2)
	assert.Equal(t, SubjectSummary{Subject: "Science", Years: []string{"2021", "2023"}}, summary[0].Subjects[0])
	assert.Equal(t, "Art", summary[0].Subjects[1].Subject)
}

func TestDefaultEntries(t *testing.T) {
	s := NewStore(DefaultEntries()...)
	assert.Equal(t, []string{"10", "11", "12", "6", "7", "8", "9"}, s.Classes())

	subjects, ok := s.Subjects("9")
	require.True(t, ok)
	assert.Equal(t, []string{"Mathematics", "Science", "English", "Hindi", "Social Science"}, subjects)

	path, ok := s.Lookup("10", "Mathematics", "2023")
	require.True(t, ok)
	assert.Equal(t, "class10/math/2023.pdf", path)
	assert.Equal(t, 68, s.Len())

	for _, e := range DefaultEntries() {
		assert.NoError(t, e.Validate(), e)
	}
}

func TestParseEntry(t *testing.T) {
	e, err := ParseEntry("10|Mathematics|2024|class10/math/2024.pdf")
	require.NoError(t, err)
	assert.Equal(t, Entry{Class: "10", Subject: "Mathematics", Year: "2024", Path: "class10/math/2024.pdf"}, e)

	e, err = ParseEntry(" 10 | Social Science |2024|p ")
	require.NoError(t, err)
	assert.Equal(t, " 10 ", e.Class, "fields are stored verbatim")
	assert.Equal(t, " Social Science ", e.Subject)
	assert.Equal(t, "p ", e.Path)

	e, err = ParseEntry("10|Social_Science|2024|p")
	require.NoError(t, err, "subjects may contain underscores")
	assert.Equal(t, "Social_Science", e.Subject)

	for _, raw := range []string{
		"",
		"10|Mathematics|2024",
		"10|Mathematics|2024|a|b",
		"10_A|Mathematics|2024|a",
		"10|Mathematics|2024_25|a",
	} {
		_, err := ParseEntry(raw)
		assert.Truef(t, errors.Is(err, ErrMalformedEntry), "%q: %v", raw, err)
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t, "https://x/papers/class10/math/2023.pdf", URL("https://x/papers", "class10/math/2023.pdf"))
	assert.Equal(t, "https://x/a b.pdf", URL("https://x", "a b.pdf"), "paths are not escaped")
}
