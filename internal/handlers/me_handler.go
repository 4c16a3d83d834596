package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMeHandler(db *gorm.DB, log *zap.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

// GetMe returns the caller with its doctor or patient profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Not authenticated.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var user models.User
	err := db.First(&user, "id = ?", *userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out := gin.H{"user": user}

	switch user.Role {
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := db.Preload("Availabilities").
			First(&doctor, "user_id = ?", user.ID).Error; err == nil {
			out["doctor"] = doctor
		}
	case models.RolePatient:
		var patient models.Patient
		if err := db.First(&patient, "user_id = ?", user.ID).Error; err == nil {
			out["patient"] = patient
		}
	}

	c.JSON(http.StatusOK, out)
}
