package payment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

var ErrNotFound = errors.New("payment not found")

// ===============================
// Status / Method
// ===============================

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

const (
	MethodCheckout = "checkout"
	MethodDirect   = "direct"
)

// ===============================
// Gateway
// ===============================

type CheckoutRequest struct {
	Reference  string
	Title      string
	Amount     float64
	Currency   string
	PayerEmail string
}

type CheckoutResult struct {
	ProviderID  string
	CheckoutURL string
}

type ChargeRequest struct {
	Reference       string
	Description     string
	Amount          float64
	PaymentMethodID string
	Token           string
	Installments    int
	PayerEmail      string
}

type ChargeResult struct {
	ProviderPaymentID string
	Status            string
	StatusDetail      string
}

// Gateway is the payment provider.
type Gateway interface {
	Name() string

	// Checkout opens a hosted checkout the payer is redirected to.
	Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error)

	// Charge pays immediately with the given payment method.
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)

	// Lookup fetches the latest state of a payment. providerPaymentID may be
	// empty for checkouts the payer has not completed; reference is used then.
	Lookup(ctx context.Context, reference, providerPaymentID string) (ChargeResult, error)
}

// ===============================
// Repository
// ===============================

type Repository interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
}

// IsFinal reports whether the provider will not move the payment any further.
func IsFinal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}
