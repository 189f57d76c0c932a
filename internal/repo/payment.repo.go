package repo

import (
	"context"
	"database/sql"
	"errors"

	"payment-gateway/internal/domain"

	"github.com/google/uuid"
)

// PaymentRepo is an append-only store of finalized payments. Implementations
// must be safe for concurrent use.
type PaymentRepo interface {
	// CreatePayment inserts p. Inserting an id that already exists is a no-op.
	CreatePayment(ctx context.Context, p *domain.Payment) error
	// FindById returns nil, nil when no payment has the given id.
	FindById(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
}

type paymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, status, card_number_last_four, expiry_month, expiry_year, currency, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(
		ctx, query, p.ID, p.Status, p.CardNumberLastFour, p.ExpiryMonth, p.ExpiryYear, p.Currency, p.Amount, p.CreatedAt,
	)
	return err
}

func (r *paymentRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT id, status, card_number_last_four, expiry_month, expiry_year, currency, amount, created_at
		FROM payments WHERE id = $1
	`
	var p domain.Payment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Status,
		&p.CardNumberLastFour,
		&p.ExpiryMonth,
		&p.ExpiryYear,
		&p.Currency,
		&p.Amount,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
