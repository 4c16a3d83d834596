package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// payable loads an appointment that can still be paid for, with the doctor
// and patient preloaded.
func payable(
	ctx context.Context,
	repo domain.Repository,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment")
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	if ap.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	if ap.Doctor.ConsultationFee <= 0 {
		return nil, httperr.ErrBusiness("payment_amount_invalid")
	}

	return ap, nil
}

func title(ap *models.Appointment) string {
	name := ap.Doctor.User.FullName()
	if name == "" {
		return "Consultation " + ap.Date.Format(domain.DateLayout)
	}
	return "Consultation with " + name + " on " + ap.Date.Format(domain.DateLayout)
}
