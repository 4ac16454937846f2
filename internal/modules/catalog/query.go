package catalog

import "github.com/google/uuid"

// ProductQuery is an immutable query spec executed by Repository.Find.
// A zero value matches the whole catalog. Photo bytes are never part of the
// projection; IncludeCategory controls whether the category reference is
// resolved into a full Category or left as an id-only stub.
type ProductQuery struct {
	// Categories restricts results to products in any of the given
	// categories. Empty means no category clause.
	Categories []uuid.UUID

	// PriceMin/PriceMax bound the price range. A nil bound is open.
	PriceMin *float64
	PriceMax *float64

	// Search matches name or description, case-insensitive substring.
	Search string

	// ExcludeID drops one product from the result set (uuid.Nil = none).
	ExcludeID uuid.UUID

	// Limit caps the result count; zero means unbounded.
	Limit int

	// Offset skips rows after sorting, for page navigation.
	Offset int

	// NewestFirst sorts by createdAt descending.
	NewestFirst bool

	// IncludeCategory resolves the full category record per product.
	IncludeCategory bool
}
