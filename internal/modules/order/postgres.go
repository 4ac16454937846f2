package order

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	ids := make([]string, len(o.Products))
	for i, id := range o.Products {
		ids[i] = id.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, products, payment, buyer, status)
		VALUES ($1,$2::uuid[],$3,$4,$5)`,
		o.ID, pq.Array(ids), []byte(o.Payment), o.Buyer, o.Status)
	return err
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyer uuid.UUID) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, products, payment, buyer, status, created_at
		FROM orders WHERE buyer=$1
		ORDER BY created_at DESC`, buyer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		var ids pq.StringArray
		var payment []byte
		if err := rows.Scan(&o.ID, &ids, &payment, &o.Buyer, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		for _, raw := range ids {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, err
			}
			o.Products = append(o.Products, id)
		}
		o.Payment = payment
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
