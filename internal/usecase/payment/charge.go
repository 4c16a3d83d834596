package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	appointment "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type ChargeInput struct {
	AppointmentID   uuid.UUID
	PaymentMethodID string
	Token           string
	Installments    int

	ActorID *uuid.UUID
}

// ChargeAppointment pays the consultation fee directly.
type ChargeAppointment struct {
	appointments appointment.Repository
	payments     domain.Repository
	gateway      domain.Gateway
	currency     string
	audit        *audit.Dispatcher
	log          *zap.Logger
}

func NewChargeAppointment(
	appointments appointment.Repository,
	payments domain.Repository,
	gateway domain.Gateway,
	currency string,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ChargeAppointment {
	return &ChargeAppointment{
		appointments: appointments,
		payments:     payments,
		gateway:      gateway,
		currency:     currency,
		audit:        audit,
		log:          log,
	}
}

func (uc *ChargeAppointment) Execute(
	ctx context.Context,
	in ChargeInput,
) (*models.Payment, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	method := strings.TrimSpace(in.PaymentMethodID)
	if method == "" {
		return nil, httperr.ErrValidation("invalid_payment_method")
	}
	if in.Installments <= 0 {
		in.Installments = 1
	}

	ap, err := payable(ctx, uc.appointments, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		ID:            uuid.New(),
		AppointmentID: ap.ID,
		Provider:      uc.gateway.Name(),
		Method:        domain.MethodDirect,
		Reference:     uuid.NewString(),
		Amount:        ap.Doctor.ConsultationFee,
		Currency:      uc.currency,
		Status:        domain.StatusPending,
		PayerEmail:    ap.Patient.User.Email,
	}
	if err := uc.payments.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	res, err := uc.gateway.Charge(ctx, domain.ChargeRequest{
		Reference:       p.Reference,
		Description:     title(ap),
		Amount:          p.Amount,
		PaymentMethodID: method,
		Token:           in.Token,
		Installments:    in.Installments,
		PayerEmail:      p.PayerEmail,
	})
	if err != nil {
		markFailed(ctx, uc.payments, uc.log, p)
		return nil, fmt.Errorf("charge: %w", err)
	}

	p.ProviderPaymentID = res.ProviderPaymentID
	p.Status = res.Status
	p.StatusDetail = res.StatusDetail
	if err := uc.payments.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "payment_charged",
		Entity:   "payment",
		EntityID: p.Reference,
		Metadata: map[string]any{"appointment_id": ap.ID.String(), "status": p.Status},
	})

	return p, nil
}
