package repository

import (
	"context"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository persists fallback-provider payment audit records.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts an audit record. The order id is unique, so a replayed
// callback does not produce a second row.
func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (order_id, payment_id, signature)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (order_id) DO NOTHING`,
		p.OrderID, p.PaymentID, p.Signature,
	)
	return err
}
