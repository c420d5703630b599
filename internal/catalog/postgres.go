package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const selectPapers = `SELECT class, subject, year, path FROM papers ORDER BY id`

// LoadPostgres reads the papers table in insertion order.
func LoadPostgres(ctx context.Context, db *sqlx.DB) ([]Entry, error) {
	var out []Entry
	if err := db.SelectContext(ctx, &out, selectPapers); err != nil {
		return nil, fmt.Errorf("catalog: load papers: %w", err)
	}
	for _, e := range out {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: load papers: %w", err)
		}
	}
	return out, nil
}
