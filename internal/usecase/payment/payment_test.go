package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type fakeGateway struct {
	checkouts []domain.CheckoutRequest
	charges   []domain.ChargeRequest
	lookups   int

	err    error
	lookup domain.ChargeResult
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) Checkout(_ context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	g.checkouts = append(g.checkouts, req)
	if g.err != nil {
		return domain.CheckoutResult{}, g.err
	}
	return domain.CheckoutResult{ProviderID: "pref-1", CheckoutURL: "https://pay.example.com/pref-1"}, nil
}

func (g *fakeGateway) Charge(_ context.Context, req domain.ChargeRequest) (domain.ChargeResult, error) {
	g.charges = append(g.charges, req)
	if g.err != nil {
		return domain.ChargeResult{}, g.err
	}
	return domain.ChargeResult{ProviderPaymentID: "42", Status: domain.StatusApproved, StatusDetail: "accredited"}, nil
}

func (g *fakeGateway) Lookup(context.Context, string, string) (domain.ChargeResult, error) {
	g.lookups++
	return g.lookup, g.err
}

type fixture struct {
	appointments *memory.AppointmentRepository
	payments     *memory.PaymentRepository
	gateway      *fakeGateway
	appointment  models.Appointment
}

func newFixture(t *testing.T, fee float64, status string) fixture {
	t.Helper()

	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")
	d.ConsultationFee = fee
	repo.PutDoctor(d)
	p := repo.AddPatient("ada", "Lovelace")

	ap := models.Appointment{
		ID:        uuid.New(),
		DoctorID:  d.ID,
		PatientID: p.ID,
		Date:      time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		Time:      "09:00",
		Status:    status,
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), &ap))

	return fixture{
		appointments: repo,
		payments:     memory.NewPaymentRepository(),
		gateway:      &fakeGateway{},
		appointment:  ap,
	}
}

func (f fixture) checkout() *CheckoutAppointment {
	return NewCheckoutAppointment(f.appointments, f.payments, f.gateway, "BRL", nil, zap.NewNop())
}

func (f fixture) charge() *ChargeAppointment {
	return NewChargeAppointment(f.appointments, f.payments, f.gateway, "BRL", nil, zap.NewNop())
}

func TestCheckout_PersistsPendingPaymentWithURL(t *testing.T) {
	f := newFixture(t, 250, "scheduled")

	p, err := f.checkout().Execute(context.Background(), f.appointment.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, p.Status)
	assert.Equal(t, "https://pay.example.com/pref-1", p.CheckoutURL)
	assert.Equal(t, 250.0, p.Amount)
	assert.Equal(t, "BRL", p.Currency)
	assert.Equal(t, "ada@example.com", p.PayerEmail)

	require.Len(t, f.gateway.checkouts, 1)
	assert.Equal(t, p.Reference, f.gateway.checkouts[0].Reference)
	assert.Contains(t, f.gateway.checkouts[0].Title, "Gregory House")

	stored, err := f.payments.GetPaymentByReference(context.Background(), p.Reference)
	require.NoError(t, err)
	assert.Equal(t, p.CheckoutURL, stored.CheckoutURL)
}

func TestCheckout_Rejections(t *testing.T) {
	t.Run("no fee", func(t *testing.T) {
		f := newFixture(t, 0, "scheduled")
		_, err := f.checkout().Execute(context.Background(), f.appointment.ID, nil)
		assert.True(t, httperr.IsBusiness(err, "payment_amount_invalid"))
	})

	t.Run("cancelled appointment", func(t *testing.T) {
		f := newFixture(t, 100, "cancelled")
		_, err := f.checkout().Execute(context.Background(), f.appointment.ID, nil)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t, 100, "scheduled")
		_, err := f.checkout().Execute(context.Background(), uuid.New(), nil)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("payments disabled", func(t *testing.T) {
		f := newFixture(t, 100, "scheduled")
		uc := NewCheckoutAppointment(f.appointments, f.payments, nil, "BRL", nil, zap.NewNop())
		_, err := uc.Execute(context.Background(), f.appointment.ID, nil)
		assert.True(t, httperr.IsBusiness(err, "payments_disabled"))
	})
}

func TestCheckout_GatewayFailureMarksAttempt(t *testing.T) {
	f := newFixture(t, 100, "scheduled")
	f.gateway.err = errors.New("provider down")

	_, err := f.checkout().Execute(context.Background(), f.appointment.ID, nil)
	require.Error(t, err)
	_, isBusiness := httperr.As(err)
	assert.False(t, isBusiness)

	require.Equal(t, 1, f.payments.Len())
	ref := f.gateway.checkouts[0].Reference
	stored, err := f.payments.GetPaymentByReference(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, stored.Status)
	assert.Equal(t, "gateway_error", stored.StatusDetail)
}

func TestCharge_StoresProviderResult(t *testing.T) {
	f := newFixture(t, 180, "scheduled")

	p, err := f.charge().Execute(context.Background(), ChargeInput{
		AppointmentID:   f.appointment.ID,
		PaymentMethodID: "pix",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, p.Status)
	assert.Equal(t, "42", p.ProviderPaymentID)
	assert.Equal(t, domain.MethodDirect, p.Method)
	require.Len(t, f.gateway.charges, 1)
	assert.Equal(t, 1, f.gateway.charges[0].Installments)
}

func TestCharge_RequiresMethod(t *testing.T) {
	f := newFixture(t, 180, "scheduled")

	_, err := f.charge().Execute(context.Background(), ChargeInput{AppointmentID: f.appointment.ID, PaymentMethodID: " "})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_method"))
	assert.Empty(t, f.gateway.charges)
}

func TestVerify_RefreshesPendingOnly(t *testing.T) {
	f := newFixture(t, 100, "scheduled")
	p, err := f.checkout().Execute(context.Background(), f.appointment.ID, nil)
	require.NoError(t, err)

	uc := NewVerifyPayment(f.payments, f.gateway)

	f.gateway.lookup = domain.ChargeResult{ProviderPaymentID: "77", Status: domain.StatusApproved, StatusDetail: "accredited"}
	got, err := uc.Execute(context.Background(), p.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "77", got.ProviderPaymentID)
	assert.Equal(t, 1, f.gateway.lookups)

	// approved is final; no second provider call
	_, err = uc.Execute(context.Background(), p.Reference)
	require.NoError(t, err)
	assert.Equal(t, 1, f.gateway.lookups)

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, "payment_not_found"))
}
