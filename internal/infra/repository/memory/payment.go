package memory

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// PaymentRepository keeps payments keyed by reference.
type PaymentRepository struct {
	mu   sync.Mutex
	rows map[string]models.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{rows: map[string]models.Payment{}}
}

func (r *PaymentRepository) CreatePayment(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.Reference] = *p
	return nil
}

func (r *PaymentRepository) GetPaymentByReference(_ context.Context, reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[reference]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) UpdatePayment(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.Reference] = *p
	return nil
}

// Len reports how many payments are stored.
func (r *PaymentRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

var _ domain.Repository = (*PaymentRepository)(nil)
