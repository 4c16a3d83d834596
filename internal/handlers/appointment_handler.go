package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/dto"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book     *ucAppointment.BookAppointment
	edit     *ucAppointment.EditAppointment
	cancel   *ucAppointment.CancelAppointment
	complete *ucAppointment.CompleteAppointment
	remove   *ucAppointment.DeleteAppointment
	list     *ucAppointment.ListAppointments
	log      *zap.Logger
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	edit *ucAppointment.EditAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	remove *ucAppointment.DeleteAppointment,
	list *ucAppointment.ListAppointments,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:     book,
		edit:     edit,
		cancel:   cancel,
		complete: complete,
		remove:   remove,
		list:     list,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID  string `json:"doctor_id" binding:"required"`
	PatientID string `json:"patient_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Duration  string `json:"duration"`
	Type      string `json:"type" binding:"required"`
}

// EditAppointmentRequest: absent fields are kept.
type EditAppointmentRequest struct {
	DoctorID *string `json:"doctor_id"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Type     *string `json:"type"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	doctorID, err := parseID(req.DoctorID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	patientID, err := parseID(req.PatientID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		Type:      req.Type,
		ActorID:   middleware.CurrentUserID(c),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(*ap))
}

// ======================================================
// EDIT / STATE
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := ucAppointment.EditAppointmentInput{
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		Type:          req.Type,
		ActorID:       middleware.CurrentUserID(c),
	}
	if req.DoctorID != nil {
		doctorID, err := parseID(*req.DoctorID)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		in.DoctorID = &doctorID
	}

	ap, err := h.edit.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := paramID(c, "appointmentId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	out, err := h.list.All(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	h.listBy(c, "doctorId", h.list.ByDoctor)
}

func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	h.listBy(c, "patientId", h.list.ByPatient)
}

func (h *AppointmentHandler) listBy(
	c *gin.Context,
	param string,
	query func(ctx context.Context, id uuid.UUID) ([]dto.AppointmentDTO, error),
) {
	id, err := paramID(c, param)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out, err := query(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}
