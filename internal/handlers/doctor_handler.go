package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/appointment"
	ucDoctor "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/doctor"
)

const maxAvatarBytes = 5 << 20

type DoctorHandler struct {
	profile *ucDoctor.GetDoctor
	windows *ucDoctor.ListAvailabilities
	replace *ucDoctor.ReplaceAvailabilities
	avatar  *ucDoctor.UploadAvatar
	slots   *ucAppointment.GetFreeSlots
	log     *zap.Logger
}

func NewDoctorHandler(
	profile *ucDoctor.GetDoctor,
	windows *ucDoctor.ListAvailabilities,
	replace *ucDoctor.ReplaceAvailabilities,
	avatar *ucDoctor.UploadAvatar,
	slots *ucAppointment.GetFreeSlots,
	log *zap.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		profile: profile,
		windows: windows,
		replace: replace,
		avatar:  avatar,
		slots:   slots,
		log:     log,
	}
}

type AvailabilityWindow struct {
	Day       string `json:"day" binding:"required,weekday"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}

type ReplaceAvailabilitiesRequest struct {
	Windows []AvailabilityWindow `json:"windows" binding:"dive"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *DoctorHandler) Get(c *gin.Context) {
	id, err := paramID(c, "doctorId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	doctor, err := h.profile.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, doctor)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *DoctorHandler) ListAvailabilities(c *gin.Context) {
	id, err := paramID(c, "doctorId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	rows, err := h.windows.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *DoctorHandler) ReplaceAvailabilities(c *gin.Context) {
	id, err := paramID(c, "doctorId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req ReplaceAvailabilitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if !h.authorize(c, id) {
		return
	}

	in := make([]ucDoctor.WindowInput, 0, len(req.Windows))
	for _, w := range req.Windows {
		in = append(in, ucDoctor.WindowInput{Day: w.Day, StartTime: w.StartTime, EndTime: w.EndTime})
	}

	rows, err := h.replace.Execute(c.Request.Context(), id, in, middleware.CurrentUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// SLOTS
// ======================================================

func (h *DoctorHandler) FreeSlots(c *gin.Context) {
	id, err := paramID(c, "doctorId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	dur, err := domain.ParseDuration(c.Query("duration"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.SlotsInput{
		DoctorID: id,
		Date:     date,
		Duration: dur,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format(domain.DateLayout),
		"slots": slots,
	})
}

// ======================================================
// AVATAR
// ======================================================

func (h *DoctorHandler) UploadAvatar(c *gin.Context) {
	id, err := paramID(c, "doctorId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if !h.authorize(c, id) {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", httperr.MessageFor("invalid_image"))
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	defer f.Close()

	url, err := h.avatar.Execute(c.Request.Context(), id, f, middleware.CurrentUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}

// authorize lets the doctor itself or an admin through; it writes the
// error response otherwise.
func (h *DoctorHandler) authorize(c *gin.Context, doctorID uuid.UUID) bool {
	doctor, err := h.profile.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return false
	}
	if !isSelfOrAdmin(c, doctor.UserID) {
		httperr.Respond(c, h.log, httperr.ErrForbidden("forbidden"))
		return false
	}
	return true
}
