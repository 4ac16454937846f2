package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created      []*Product
	createErr    error
	updated      []*Product
	updatedPhoto []bool
	updateErr    error
	deleted      []uuid.UUID
	deleteErr    error

	lastQuery  ProductQuery
	findCalls  int
	findResult []*Product
	findErr    error

	countResult int
	countErr    error

	slugProduct *Product
	slugErr     error

	photoData []byte
	photoType string
	photoErr  error

	category    *Category
	categoryErr error
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Product, updatePhoto bool) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, p)
	f.updatedPhoto = append(f.updatedPhoto, updatePhoto)
	return nil
}

func (f *fakeRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return f.slugProduct, f.slugErr
}

func (f *fakeRepo) Find(ctx context.Context, q ProductQuery) ([]*Product, error) {
	f.findCalls++
	f.lastQuery = q
	return f.findResult, f.findErr
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return f.countResult, f.countErr
}

func (f *fakeRepo) GetPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	return f.photoData, f.photoType, f.photoErr
}

func (f *fakeRepo) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return f.category, f.categoryErr
}

func validSubmission() ProductSubmission {
	return ProductSubmission{
		Name:        "Test Product Name",
		Description: "test description",
		Price:       "10",
		Category:    uuid.NewString(),
		Quantity:    "10",
		Shipping:    "true",
	}
}

func photoUpload(size int64, data []byte) *PhotoUpload {
	return &PhotoUpload{
		Size:        size,
		ContentType: "image/png",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func TestCreateProductRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProductSubmission)
		reason string
	}{
		{"missing name", func(s *ProductSubmission) { s.Name = "" }, "Name is Required"},
		{"missing description", func(s *ProductSubmission) { s.Description = "" }, "Description is Required"},
		{"missing price", func(s *ProductSubmission) { s.Price = "" }, "Price is Required"},
		{"missing category", func(s *ProductSubmission) { s.Category = "" }, "Category is Required"},
		{"missing quantity", func(s *ProductSubmission) { s.Quantity = "" }, "Quantity is Required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo)

			sub := validSubmission()
			tc.mutate(&sub)

			_, err := svc.CreateProduct(context.Background(), sub, nil)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.reason, verr.Reason)
			require.Empty(t, repo.created, "a rejected submission must leave no trace")
		})
	}
}

func TestCreateProductRejectsOversizedPhoto(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.CreateProduct(context.Background(), validSubmission(), photoUpload(2000000, nil))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "photo is Required and should be less then 1mb", verr.Reason)
	require.Empty(t, repo.created)
}

func TestCreateProductWithoutPhoto(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	p, err := svc.CreateProduct(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.Equal(t, "test-product-name", p.Slug)
	require.Equal(t, 10.0, p.Price)
	require.Equal(t, 10, p.Quantity)
	require.True(t, p.Shipping)
	require.Nil(t, p.Photo)
	require.Empty(t, p.PhotoType)
}

func TestCreateProductWithPhoto(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	data := []byte("image data")

	p, err := svc.CreateProduct(context.Background(), validSubmission(), photoUpload(int64(len(data)), data))
	require.NoError(t, err)
	require.Equal(t, data, p.Photo)
	require.Equal(t, "image/png", p.PhotoType)
	require.Len(t, repo.created, 1)
}

func TestCreateProductStoreFailure(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("database error")}
	svc := NewService(repo)

	_, err := svc.CreateProduct(context.Background(), validSubmission(), nil)
	require.Error(t, err)
	var verr *ValidationError
	require.False(t, errors.As(err, &verr), "a store failure must not masquerade as a rejection")
}

func TestUpdateProductKeepsPhotoWhenOmitted(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	id := uuid.NewString()

	_, err := svc.UpdateProduct(context.Background(), id, validSubmission(), nil)
	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	require.False(t, repo.updatedPhoto[0])

	data := []byte("new image")
	_, err = svc.UpdateProduct(context.Background(), id, validSubmission(), photoUpload(int64(len(data)), data))
	require.NoError(t, err)
	require.True(t, repo.updatedPhoto[1])
	require.Equal(t, data, repo.updated[1].Photo)
}

func TestUpdateProductRevalidates(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	sub := validSubmission()
	sub.Description = ""
	_, err := svc.UpdateProduct(context.Background(), uuid.NewString(), sub, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Description is Required", verr.Reason)
	require.Empty(t, repo.updated)
}

func TestListProducts(t *testing.T) {
	repo := &fakeRepo{
		findResult:  []*Product{{Name: "a"}, {Name: "b"}},
		countResult: 42,
	}
	svc := NewService(repo)

	products, total, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, 42, total)

	q := repo.lastQuery
	require.Equal(t, 12, q.Limit)
	require.True(t, q.NewestFirst)
	require.True(t, q.IncludeCategory)
	require.Zero(t, q.Offset)
	require.Empty(t, q.Categories)
}

func TestListPageSkipsPriorPages(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.ListPage(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 6, repo.lastQuery.Limit)
	require.Equal(t, 12, repo.lastQuery.Offset)
	require.True(t, repo.lastQuery.NewestFirst)
}

func TestFilterBuildsPredicates(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	cid := uuid.New()
	_, err := svc.Filter(context.Background(), []string{cid.String()}, []float64{20, 39})
	require.NoError(t, err)

	q := repo.lastQuery
	require.Equal(t, []uuid.UUID{cid}, q.Categories)
	require.NotNil(t, q.PriceMin)
	require.NotNil(t, q.PriceMax)
	require.Equal(t, 20.0, *q.PriceMin)
	require.Equal(t, 39.0, *q.PriceMax)
	require.Zero(t, q.Limit)
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Filter(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, ProductQuery{}, repo.lastQuery)
}

func TestSearchQuery(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Search(context.Background(), "shirt")
	require.NoError(t, err)
	require.Equal(t, "shirt", repo.lastQuery.Search)
	require.Zero(t, repo.lastQuery.Limit)
}

func TestRelatedExcludesProductAndCaps(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	pid, cid := uuid.New(), uuid.New()
	_, err := svc.Related(context.Background(), pid.String(), cid.String())
	require.NoError(t, err)

	q := repo.lastQuery
	require.Equal(t, []uuid.UUID{cid}, q.Categories)
	require.Equal(t, pid, q.ExcludeID)
	require.Equal(t, 3, q.Limit)
	require.True(t, q.IncludeCategory)
}

func TestByCategory(t *testing.T) {
	cat := &Category{ID: uuid.New(), Name: "Books", Slug: "books"}
	repo := &fakeRepo{category: cat, findResult: []*Product{{Name: "a"}}}
	svc := NewService(repo)

	got, products, err := svc.ByCategory(context.Background(), "books")
	require.NoError(t, err)
	require.Equal(t, cat, got)
	require.Len(t, products, 1)
	require.Equal(t, []uuid.UUID{cat.ID}, repo.lastQuery.Categories)
}

func TestByCategoryUnknownSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, _, err := svc.ByCategory(context.Background(), "nope")
	require.Error(t, err)
	require.Zero(t, repo.findCalls)
}

func TestGetBySlugMissIsNotAnError(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	p, err := svc.GetBySlug(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestDeleteProduct(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	id := uuid.New()

	require.NoError(t, svc.DeleteProduct(context.Background(), id.String()))
	require.Equal(t, []uuid.UUID{id}, repo.deleted)

	require.Error(t, svc.DeleteProduct(context.Background(), "not-a-uuid"))
	require.Len(t, repo.deleted, 1)
}
