package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) ListUsers(
	ctx context.Context,
	role string,
) ([]models.User, error) {

	q := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserGormRepository) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Profile, error) {

	db := r.db.WithContext(ctx)

	var p domain.Profile
	if err := db.First(&p.User, "id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}

	var doctor models.Doctor
	err := db.Preload("Availabilities").First(&doctor, "user_id = ?", userID).Error
	switch {
	case err == nil:
		p.Doctor = &doctor
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("get doctor profile: %w", err)
	}

	var patient models.Patient
	err = db.First(&patient, "user_id = ?", userID).Error
	switch {
	case err == nil:
		p.Patient = &patient
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("get patient profile: %w", err)
	}

	return &p, nil
}

func (r *UserGormRepository) DeleteUser(
	ctx context.Context,
	userID uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, "id = ?", userID).Error; err != nil {
			return notFound(err)
		}

		doctors := tx.Model(&models.Doctor{}).Select("id").Where("user_id = ?", userID)
		patients := tx.Model(&models.Patient{}).Select("id").Where("user_id = ?", userID)
		appointments := tx.Model(&models.Appointment{}).Select("id").
			Where("doctor_id IN (?) OR patient_id IN (?)", doctors, patients)

		steps := []struct {
			name string
			run  func() error
		}{
			{"payments", func() error {
				return tx.Where("appointment_id IN (?)", appointments).Delete(&models.Payment{}).Error
			}},
			{"appointments", func() error {
				return tx.Where("doctor_id IN (?) OR patient_id IN (?)", doctors, patients).
					Delete(&models.Appointment{}).Error
			}},
			{"availabilities", func() error {
				return tx.Where("doctor_id IN (?)", doctors).Delete(&models.Availability{}).Error
			}},
			{"doctor", func() error {
				return tx.Where("user_id = ?", userID).Delete(&models.Doctor{}).Error
			}},
			{"patient", func() error {
				return tx.Where("user_id = ?", userID).Delete(&models.Patient{}).Error
			}},
			{"user", func() error {
				return tx.Delete(&models.User{}, "id = ?", userID).Error
			}},
		}

		for _, s := range steps {
			if err := s.run(); err != nil {
				return fmt.Errorf("delete %s: %w", s.name, err)
			}
		}
		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
