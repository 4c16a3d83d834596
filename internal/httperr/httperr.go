package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	"doctor_not_found":         "Doctor not found.",
	"patient_not_found":        "Patient not found.",
	"appointment_not_found":    "Appointment not found.",
	"payment_not_found":        "Payment not found.",
	"doctor_unavailable":       "Doctor is not available at that day and time.",
	"time_conflict":            "Doctor has an appointment at that day and time.",
	"invalid_state":            "Appointment can no longer change state.",
	"invalid_date":             "Invalid date, expected YYYY-MM-DD.",
	"invalid_time":             "Invalid time, expected HH:MM within the day.",
	"invalid_duration":         "Invalid duration.",
	"invalid_day":              "Invalid day of week.",
	"invalid_window":           "Availability start must be before its end.",
	"invalid_appointment_type": "Invalid appointment type, expected online or in_person.",
	"invalid_id":               "Invalid id.",
	"no_fields_to_update":      "No fields to update.",
	"payment_amount_invalid":   "Appointment has no amount to charge.",
	"payments_disabled":        "Payments are not configured.",
	"storage_disabled":         "Object storage is not configured.",
	"invalid_image":            "Unsupported image, send a JPEG, PNG, GIF or WebP file.",
	"invalid_payment_method":   "A payment method is required.",
	"user_not_found":           "User not found.",
	"invalid_role":             "Invalid role, expected patient, doctor or admin.",
	"cannot_delete_self":       "You cannot delete your own account.",
	"forbidden":                "Not allowed.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// Respond maps err onto a status code. Business failures are 4xx; anything
// else is logged and reported as 500.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	be, ok := As(err)
	if !ok {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	status := http.StatusBadRequest
	switch be.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindUnavailable:
		status = http.StatusUnprocessableEntity
	case KindConflict:
		status = http.StatusConflict
	case KindForbidden:
		status = http.StatusForbidden
	}
	Write(c, status, be.Code, MessageFor(be.Code))
}
