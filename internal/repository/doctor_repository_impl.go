package repository

import (
	"context"
	"errors"

	"clinic-accounts/internal/domain/entity"
	domainRepo "clinic-accounts/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations).Create(doctor).Error)
}

// Update writes the account and profile columns. The approval flag is left
// to UpdateActive.
func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations, "created_at", "slug", "active").Save(doctor).Error)
}

func (r *doctorRepository) UpdateActive(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Model(doctor).UpdateColumns(map[string]interface{}{
		"active":     doctor.Active,
		"updated_at": doctor.UpdatedAt,
	}).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Preload("Specialization").Preload("Profile").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *doctorRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Preload("Specialization").Preload("Profile").Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Doctor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AccountFilter) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := db.WithContext(ctx).Preload("Specialization")
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	err := query.Order("created_at DESC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) CountBySpecialization(ctx context.Context, db *gorm.DB, specializationID int) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Doctor{}).Where("specialization_id = ?", specializationID).Count(&count).Error
	return count, err
}

func (r *doctorRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, translateDeleteError(result.Error)
}
