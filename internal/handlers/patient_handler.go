package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type PatientHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPatientHandler(db *gorm.DB, log *zap.Logger) *PatientHandler {
	return &PatientHandler{db: db, log: log}
}

// ======================================================
// LIST PATIENTS (DOCTOR / ADMIN)
// ======================================================
func (h *PatientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Joins("User")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			`LOWER("User".first_name || ' ' || "User".last_name) LIKE ? OR "User".phone LIKE ? OR LOWER("User".email) LIKE ?`,
			like, like, like,
		)
	}

	var patients []models.Patient
	if err := q.
		Order(`"User".last_name ASC`).
		Limit(200).
		Find(&patients).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := paramID(c, "patientId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var patient models.Patient
	err = h.db.WithContext(c.Request.Context()).
		Preload("User").
		First(&patient, "patients.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, httperr.ErrNotFound("patient"))
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if !isSelfOrAdmin(c, patient.UserID) && !isDoctor(c) {
		httperr.Respond(c, h.log, httperr.ErrForbidden("forbidden"))
		return
	}

	httpresp.OK(c, patient)
}
