package payment

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// VerifyPayment refreshes a payment from the provider. Final states are
// served from the store without a provider call.
type VerifyPayment struct {
	payments domain.Repository
	gateway  domain.Gateway
}

func NewVerifyPayment(payments domain.Repository, gateway domain.Gateway) *VerifyPayment {
	return &VerifyPayment{payments: payments, gateway: gateway}
}

func (uc *VerifyPayment) Execute(
	ctx context.Context,
	reference string,
) (*models.Payment, error) {

	p, err := uc.payments.GetPaymentByReference(ctx, reference)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("payment")
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	if domain.IsFinal(p.Status) {
		return p, nil
	}
	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	res, err := uc.gateway.Lookup(ctx, p.Reference, p.ProviderPaymentID)
	if err != nil {
		return nil, fmt.Errorf("lookup payment: %w", err)
	}

	if res.ProviderPaymentID != "" {
		p.ProviderPaymentID = res.ProviderPaymentID
	}
	p.Status = res.Status
	if res.StatusDetail != "" {
		p.StatusDetail = res.StatusDetail
	}

	if err := uc.payments.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	return p, nil
}
