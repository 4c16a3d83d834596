package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
)

// MercadoPago implements domain.Gateway on top of the official SDK.
type MercadoPago struct {
	payments        mppayment.Client
	preferences     preference.Client
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		payments:        mppayment.NewClient(cfg),
		preferences:     preference.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (g *MercadoPago) Name() string {
	return "mercadopago"
}

func (g *MercadoPago) Checkout(
	ctx context.Context,
	req domain.CheckoutRequest,
) (domain.CheckoutResult, error) {

	res, err := g.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: req.Currency,
		}},
		Payer:             &preference.PayerRequest{Email: req.PayerEmail},
		ExternalReference: req.Reference,
		NotificationURL:   g.notificationURL,
	})
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("create preference: %w", err)
	}

	return domain.CheckoutResult{
		ProviderID:  res.ID,
		CheckoutURL: res.InitPoint,
	}, nil
}

func (g *MercadoPago) Charge(
	ctx context.Context,
	req domain.ChargeRequest,
) (domain.ChargeResult, error) {

	res, err := g.payments.Create(ctx, mppayment.Request{
		TransactionAmount: req.Amount,
		Description:       req.Description,
		PaymentMethodID:   req.PaymentMethodID,
		Token:             req.Token,
		Installments:      req.Installments,
		ExternalReference: req.Reference,
		NotificationURL:   g.notificationURL,
		Payer:             &mppayment.PayerRequest{Email: req.PayerEmail},
	})
	if err != nil {
		return domain.ChargeResult{}, fmt.Errorf("create payment: %w", err)
	}

	return toResult(res), nil
}

func (g *MercadoPago) Lookup(
	ctx context.Context,
	reference string,
	providerPaymentID string,
) (domain.ChargeResult, error) {

	if providerPaymentID != "" {
		id, err := strconv.Atoi(providerPaymentID)
		if err != nil {
			return domain.ChargeResult{}, fmt.Errorf("invalid provider payment id %q: %w", providerPaymentID, err)
		}
		res, err := g.payments.Get(ctx, id)
		if err != nil {
			return domain.ChargeResult{}, fmt.Errorf("get payment: %w", err)
		}
		return toResult(res), nil
	}

	found, err := g.payments.Search(ctx, mppayment.SearchRequest{
		Filters: map[string]string{"external_reference": reference},
	})
	if err != nil {
		return domain.ChargeResult{}, fmt.Errorf("search payments: %w", err)
	}
	if len(found.Results) == 0 {
		// payer has not finished the checkout yet
		return domain.ChargeResult{Status: domain.StatusPending}, nil
	}

	latest := found.Results[len(found.Results)-1]
	return toResult(&latest), nil
}

func toResult(res *mppayment.Response) domain.ChargeResult {
	return domain.ChargeResult{
		ProviderPaymentID: strconv.Itoa(res.ID),
		Status:            normalizeStatus(res.Status),
		StatusDetail:      res.StatusDetail,
	}
}

// normalizeStatus folds the provider's intermediate states into pending.
func normalizeStatus(s string) string {
	switch s {
	case "approved":
		return domain.StatusApproved
	case "rejected":
		return domain.StatusRejected
	case "cancelled":
		return domain.StatusCancelled
	case "refunded", "charged_back":
		return domain.StatusRefunded
	}
	return domain.StatusPending
}

var _ domain.Gateway = (*MercadoPago)(nil)
