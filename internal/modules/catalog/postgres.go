package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, slug, description, price, category_id, quantity, shipping, photo, photo_content_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.Slug, p.Description, p.Price,
		p.Category.ID, p.Quantity, p.Shipping, p.Photo, p.PhotoType)
	return err
}

func (r *postgresRepo) Update(ctx context.Context, p *Product, updatePhoto bool) error {
	if updatePhoto {
		_, err := r.db.ExecContext(ctx, `
			UPDATE products
			SET name=$1, slug=$2, description=$3, price=$4, category_id=$5,
			    quantity=$6, shipping=$7, photo=$8, photo_content_type=$9
			WHERE id=$10`,
			p.Name, p.Slug, p.Description, p.Price, p.Category.ID,
			p.Quantity, p.Shipping, p.Photo, p.PhotoType, p.ID)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, slug=$2, description=$3, price=$4, category_id=$5,
		    quantity=$6, shipping=$7
		WHERE id=$8`,
		p.Name, p.Slug, p.Description, p.Price, p.Category.ID,
		p.Quantity, p.Shipping, p.ID)
	return err
}

func (r *postgresRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func scanProduct(populated bool, scan func(...interface{}) error) (*Product, error) {
	p := &Product{Category: &Category{}}
	dest := []interface{}{
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.Category.ID, &p.Quantity, &p.Shipping, &p.CreatedAt,
	}
	var catName, catSlug sql.NullString
	if populated {
		dest = append(dest, &catName, &catSlug)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	p.Category.Name = catName.String
	p.Category.Slug = catSlug.String
	return p, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.slug, p.description, p.price,
		       p.category_id, p.quantity, p.shipping, p.created_at,
		       c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug=$1`, slug)
	p, err := scanProduct(true, row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *postgresRepo) Find(ctx context.Context, q ProductQuery) ([]*Product, error) {
	cols := `p.id, p.name, p.slug, p.description, p.price,
	         p.category_id, p.quantity, p.shipping, p.created_at`
	if q.IncludeCategory {
		cols += `, c.name, c.slug`
	}
	query := `SELECT ` + cols + ` FROM products p`
	if q.IncludeCategory {
		query += ` LEFT JOIN categories c ON c.id = p.category_id`
	}
	query += ` WHERE 1=1`

	args := []interface{}{}
	n := 1
	if len(q.Categories) > 0 {
		ids := make([]string, len(q.Categories))
		for i, id := range q.Categories {
			ids[i] = id.String()
		}
		query += fmt.Sprintf(` AND p.category_id = ANY($%d::uuid[])`, n)
		args = append(args, pq.Array(ids))
		n++
	}
	if q.PriceMin != nil {
		query += fmt.Sprintf(` AND p.price >= $%d`, n)
		args = append(args, *q.PriceMin)
		n++
	}
	if q.PriceMax != nil {
		query += fmt.Sprintf(` AND p.price <= $%d`, n)
		args = append(args, *q.PriceMax)
		n++
	}
	if q.Search != "" {
		query += fmt.Sprintf(` AND (p.name ILIKE $%d OR p.description ILIKE $%d)`, n, n)
		args = append(args, "%"+q.Search+"%")
		n++
	}
	if q.ExcludeID != uuid.Nil {
		query += fmt.Sprintf(` AND p.id <> $%d`, n)
		args = append(args, q.ExcludeID)
		n++
	}
	if q.NewestFirst {
		query += ` ORDER BY p.created_at DESC`
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, n)
		args = append(args, q.Limit)
		n++
	}
	if q.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, n)
		args = append(args, q.Offset)
		n++
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(q.IncludeCategory, rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total)
	return total, err
}

func (r *postgresRepo) GetPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	var photo []byte
	var contentType sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT photo, photo_content_type FROM products WHERE id=$1`, id).
		Scan(&photo, &contentType)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return photo, contentType.String, nil
}

func (r *postgresRepo) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug FROM categories WHERE slug=$1`, slug).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
