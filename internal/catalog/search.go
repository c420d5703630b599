package catalog

import (
	"fmt"
	"strings"
)

// DefaultSearchLimit caps the number of search results shown to a user.
const DefaultSearchLimit = 10

// Normalize lower-cases a query the way Search matches it.
func Normalize(query string) string {
	return strings.ToLower(query)
}

// searchText is the string a query term is matched against.
func searchText(e Entry) string {
	return strings.ToLower(fmt.Sprintf("%s %s class %s", e.Subject, e.Year, e.Class))
}

// Search returns entries where at least one whitespace-separated term of the
// query is a substring of "{subject} {year} class {class}". Results keep the
// order of entries and are not ranked. A limit <= 0 means no cap.
func Search(entries []Entry, query string, limit int) []Entry {
	terms := strings.Fields(Normalize(query))
	if len(terms) == 0 {
		return nil
	}
	var out []Entry
	for _, e := range entries {
		text := searchText(e)
		for _, term := range terms {
			if strings.Contains(text, term) {
				out = append(out, e)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Search runs Search over the store in catalog order.
func (s *Store) Search(query string, limit int) []Entry {
	return Search(s.Entries(), query, limit)
}
