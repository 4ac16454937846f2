package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the store adapter for products and categories. Every
// method is a single round trip; failures surface to the caller unretried.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// Update rewrites the product's fields. The stored photo is replaced
	// only when updatePhoto is set; otherwise it is left untouched.
	Update(ctx context.Context, p *Product, updatePhoto bool) error

	// DeleteByID removes the product and its photo payload.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// GetBySlug returns the product without its photo, category resolved.
	// A slug that matches nothing yields (nil, nil).
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// Find executes a query spec. Photo bytes are never fetched.
	Find(ctx context.Context, q ProductQuery) ([]*Product, error)

	// Count returns the total number of products in the catalog.
	Count(ctx context.Context) (int, error)

	// GetPhoto fetches only the photo projection. A product without a
	// photo (or no product at all) yields (nil, "", nil).
	GetPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error)

	// GetCategoryBySlug resolves a category; (nil, nil) when absent.
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
}
