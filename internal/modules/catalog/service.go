package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Page sizes are part of the client contract.
const (
	defaultListLimit = 12
	perPage          = 6
	relatedLimit     = 3
)

// ValidationError is a submission rejection. It never reaches the store and
// handlers report it differently from store failures.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// ProductSubmission carries the raw form fields of a create/update request.
// Values arrive as strings from the multipart form and are parsed only after
// the presence checks pass.
type ProductSubmission struct {
	Name        string
	Description string
	Price       string
	Category    string
	Quantity    string
	Shipping    string
}

// PhotoUpload describes an attached photo. Bytes are read only after the
// size check passes.
type PhotoUpload struct {
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Service defines catalog business logic: the ingestion validation pipeline
// and the query/filter/search surface.
type Service interface {
	CreateProduct(ctx context.Context, sub ProductSubmission, photo *PhotoUpload) (*Product, error)
	UpdateProduct(ctx context.Context, id string, sub ProductSubmission, photo *PhotoUpload) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]*Product, int, error)
	ListPage(ctx context.Context, page int) ([]*Product, error)
	GetBySlug(ctx context.Context, productSlug string) (*Product, error)
	Filter(ctx context.Context, categoryIDs []string, priceRange []float64) ([]*Product, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, keyword string) ([]*Product, error)
	Related(ctx context.Context, productID, categoryID string) ([]*Product, error)
	ByCategory(ctx context.Context, categorySlug string) (*Category, []*Product, error)
	Photo(ctx context.Context, productID string) ([]byte, string, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// validate applies the fixed-order presence and size checks. It returns on
// the first failure; a missing photo is not a failure.
func validate(sub ProductSubmission, photo *PhotoUpload) *ValidationError {
	switch {
	case strings.TrimSpace(sub.Name) == "":
		return &ValidationError{Reason: "Name is Required"}
	case strings.TrimSpace(sub.Description) == "":
		return &ValidationError{Reason: "Description is Required"}
	case strings.TrimSpace(sub.Price) == "":
		return &ValidationError{Reason: "Price is Required"}
	case strings.TrimSpace(sub.Category) == "":
		return &ValidationError{Reason: "Category is Required"}
	case strings.TrimSpace(sub.Quantity) == "":
		return &ValidationError{Reason: "Quantity is Required"}
	case photo != nil && photo.Size > MaxPhotoBytes:
		return &ValidationError{Reason: "photo is Required and should be less then 1mb"}
	}
	return nil
}

// normalize parses the validated submission into a product record. Parse
// failures happen after validation and report as generic errors, the way a
// store cast failure would.
func normalize(sub ProductSubmission, photo *PhotoUpload) (*Product, error) {
	price, err := strconv.ParseFloat(sub.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", sub.Price, err)
	}
	quantity, err := strconv.Atoi(sub.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", sub.Quantity, err)
	}
	categoryID, err := uuid.Parse(sub.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category %q: %w", sub.Category, err)
	}
	shipping, _ := strconv.ParseBool(sub.Shipping)

	p := &Product{
		Name:        sub.Name,
		Slug:        slug.Make(sub.Name),
		Description: sub.Description,
		Price:       price,
		Category:    &Category{ID: categoryID},
		Quantity:    quantity,
		Shipping:    shipping,
	}
	if photo != nil {
		rc, err := photo.Open()
		if err != nil {
			return nil, fmt.Errorf("reading photo: %w", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading photo: %w", err)
		}
		p.Photo = data
		p.PhotoType = photo.ContentType
	}
	return p, nil
}

func (s *service) CreateProduct(ctx context.Context, sub ProductSubmission, photo *PhotoUpload) (*Product, error) {
	if verr := validate(sub, photo); verr != nil {
		return nil, verr
	}
	p, err := normalize(sub, photo)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, sub ProductSubmission, photo *PhotoUpload) (*Product, error) {
	if verr := validate(sub, photo); verr != nil {
		return nil, verr
	}
	p, err := normalize(sub, photo)
	if err != nil {
		return nil, err
	}
	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", id, err)
	}
	// An omitted photo leaves the stored one unchanged.
	if err := s.repo.Update(ctx, p, photo != nil); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", id, err)
	}
	return s.repo.DeleteByID(ctx, pid)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, int, error) {
	products, err := s.repo.Find(ctx, ProductQuery{
		Limit:           defaultListLimit,
		NewestFirst:     true,
		IncludeCategory: true,
	})
	if err != nil {
		return nil, 0, err
	}
	// Total count is an independent query; it need not be consistent with
	// the page fetch.
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *service) ListPage(ctx context.Context, page int) ([]*Product, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.Find(ctx, ProductQuery{
		Limit:       perPage,
		Offset:      (page - 1) * perPage,
		NewestFirst: true,
	})
}

func (s *service) GetBySlug(ctx context.Context, productSlug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, productSlug)
}

func (s *service) Filter(ctx context.Context, categoryIDs []string, priceRange []float64) ([]*Product, error) {
	q := ProductQuery{}
	for _, raw := range categoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q: %w", raw, err)
		}
		q.Categories = append(q.Categories, id)
	}
	if len(priceRange) == 2 {
		q.PriceMin = &priceRange[0]
		q.PriceMax = &priceRange[1]
	}
	return s.repo.Find(ctx, q)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) Search(ctx context.Context, keyword string) ([]*Product, error) {
	return s.repo.Find(ctx, ProductQuery{Search: keyword})
}

func (s *service) Related(ctx context.Context, productID, categoryID string) ([]*Product, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", productID, err)
	}
	cid, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", categoryID, err)
	}
	return s.repo.Find(ctx, ProductQuery{
		Categories:      []uuid.UUID{cid},
		ExcludeID:       pid,
		Limit:           relatedLimit,
		IncludeCategory: true,
	})
}

func (s *service) ByCategory(ctx context.Context, categorySlug string) (*Category, []*Product, error) {
	category, err := s.repo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, fmt.Errorf("category %q not found", categorySlug)
	}
	products, err := s.repo.Find(ctx, ProductQuery{
		Categories:      []uuid.UUID{category.ID},
		IncludeCategory: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

func (s *service) Photo(ctx context.Context, productID string) ([]byte, string, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid product id %q: %w", productID, err)
	}
	return s.repo.GetPhoto(ctx, pid)
}
