package ports

import (
	"context"

	"legumedash/domain/nutrient"
)

// TableStore provides read-only access to the nutrient dataset.
// Load is idempotent: repeated calls return content-equal tables.
type TableStore interface {
	Load(ctx context.Context) (*nutrient.Table, error)
}
