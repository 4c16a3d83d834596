package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	appointment "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// CheckoutAppointment opens a hosted checkout for the consultation fee.
type CheckoutAppointment struct {
	appointments appointment.Repository
	payments     domain.Repository
	gateway      domain.Gateway
	currency     string
	audit        *audit.Dispatcher
	log          *zap.Logger
}

func NewCheckoutAppointment(
	appointments appointment.Repository,
	payments domain.Repository,
	gateway domain.Gateway,
	currency string,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CheckoutAppointment {
	return &CheckoutAppointment{
		appointments: appointments,
		payments:     payments,
		gateway:      gateway,
		currency:     currency,
		audit:        audit,
		log:          log,
	}
}

func (uc *CheckoutAppointment) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
	actorID *uuid.UUID,
) (*models.Payment, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	ap, err := payable(ctx, uc.appointments, appointmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persist the attempt first so it is traceable
	// --------------------------------------------------
	p := &models.Payment{
		ID:            uuid.New(),
		AppointmentID: ap.ID,
		Provider:      uc.gateway.Name(),
		Method:        domain.MethodCheckout,
		Reference:     uuid.NewString(),
		Amount:        ap.Doctor.ConsultationFee,
		Currency:      uc.currency,
		Status:        domain.StatusPending,
		PayerEmail:    ap.Patient.User.Email,
	}
	if err := uc.payments.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	res, err := uc.gateway.Checkout(ctx, domain.CheckoutRequest{
		Reference:  p.Reference,
		Title:      title(ap),
		Amount:     p.Amount,
		Currency:   p.Currency,
		PayerEmail: p.PayerEmail,
	})
	if err != nil {
		markFailed(ctx, uc.payments, uc.log, p)
		return nil, fmt.Errorf("open checkout: %w", err)
	}

	p.CheckoutURL = res.CheckoutURL
	p.StatusDetail = "preference:" + res.ProviderID
	if err := uc.payments.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "payment_checkout_opened",
		Entity:   "payment",
		EntityID: p.Reference,
		Metadata: map[string]any{"appointment_id": ap.ID.String(), "amount": p.Amount},
	})

	return p, nil
}

// markFailed records a gateway failure on the attempt; the caller still
// reports the original error.
func markFailed(ctx context.Context, repo domain.Repository, log *zap.Logger, p *models.Payment) {
	p.Status = domain.StatusRejected
	p.StatusDetail = "gateway_error"
	if err := repo.UpdatePayment(ctx, p); err != nil {
		log.Warn("failed to mark payment as failed",
			zap.String("reference", p.Reference),
			zap.Error(err),
		)
	}
}
