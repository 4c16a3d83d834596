package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

func (r *DoctorGormRepository) GetDoctor(
	ctx context.Context,
	id uuid.UUID,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Availabilities").
		First(&doctor, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &doctor, nil
}

func (r *DoctorGormRepository) SetAvatarURL(
	ctx context.Context,
	id uuid.UUID,
	url string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("avatar_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DoctorGormRepository) ListAvailabilities(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]models.Availability, error) {
	return NewAppointmentGormRepository(r.db).ListAvailabilities(ctx, doctorID)
}

func (r *DoctorGormRepository) ReplaceAvailabilities(
	ctx context.Context,
	doctorID uuid.UUID,
	rows []models.Availability,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).
			Delete(&models.Availability{}).Error; err != nil {
			return fmt.Errorf("clear availabilities: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].DoctorID = doctorID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("create availabilities: %w", err)
		}
		return nil
	})
}

var _ domain.Repository = (*DoctorGormRepository)(nil)
