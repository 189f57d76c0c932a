package repo

import (
	"context"
	"sync"

	"payment-gateway/internal/domain"

	"github.com/google/uuid"
)

type memoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]domain.Payment
}

// NewMemoryPaymentRepo returns a process-local store. Its contents are lost
// when the process exits.
func NewMemoryPaymentRepo() PaymentRepo {
	return &memoryPaymentRepo{payments: make(map[uuid.UUID]domain.Payment)}
}

func (r *memoryPaymentRepo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; !exists {
		r.payments[p.ID] = *p
	}
	return nil
}

func (r *memoryPaymentRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
