package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// FieldSeparator splits the fields of an admin entry line.
const FieldSeparator = "|"

// TokenSeparator joins the fields of navigation tokens. Subjects may contain
// it; class ids and years may not, since tokens locate them by position.
const TokenSeparator = "_"

// ErrMalformedEntry is returned for entries that cannot be stored: a line
// without exactly four fields, or a class or year containing TokenSeparator.
var ErrMalformedEntry = errors.New("catalog: malformed entry")

// ParseEntry parses "Class|Subject|Year|Path". Fields are kept verbatim,
// surrounding whitespace included.
func ParseEntry(raw string) (Entry, error) {
	parts := strings.Split(raw, FieldSeparator)
	if len(parts) != 4 {
		return Entry{}, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformedEntry, len(parts))
	}
	e := Entry{Class: parts[0], Subject: parts[1], Year: parts[2], Path: parts[3]}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate reports whether e can be reached through navigation tokens.
func (e Entry) Validate() error {
	switch {
	case strings.Contains(e.Class, TokenSeparator):
		return fmt.Errorf("%w: class %q contains %q", ErrMalformedEntry, e.Class, TokenSeparator)
	case strings.Contains(e.Year, TokenSeparator):
		return fmt.Errorf("%w: year %q contains %q", ErrMalformedEntry, e.Year, TokenSeparator)
	}
	return nil
}

// URL joins the public base URL and a resource path without escaping.
func URL(base, path string) string {
	return base + "/" + path
}
