package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	ucPayment "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	checkout *ucPayment.CheckoutAppointment
	charge   *ucPayment.ChargeAppointment
	verify   *ucPayment.VerifyPayment
	log      *zap.Logger
}

func NewPaymentHandler(
	checkout *ucPayment.CheckoutAppointment,
	charge *ucPayment.ChargeAppointment,
	verify *ucPayment.VerifyPayment,
	log *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		checkout: checkout,
		charge:   charge,
		verify:   verify,
		log:      log,
	}
}

type ChargeRequest struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	Token           string `json:"token"`
	Installments    int    `json:"installments" binding:"gte=0"`
}

// Checkout returns the hosted checkout URL and the transaction reference.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	p, err := h.checkout.Execute(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *PaymentHandler) Charge(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	p, err := h.charge.Execute(c.Request.Context(), ucPayment.ChargeInput{
		AppointmentID:   id,
		PaymentMethodID: req.PaymentMethodID,
		Token:           req.Token,
		Installments:    req.Installments,
		ActorID:         middleware.CurrentUserID(c),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	p, err := h.verify.Execute(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, p)
}
