package repository

import (
	"context"
	"errors"

	"clinic-accounts/internal/domain/entity"
	domainRepo "clinic-accounts/internal/domain/repository"

	"gorm.io/gorm"
)

type specializationRepository struct{}

func NewSpecializationRepository() domainRepo.SpecializationRepository {
	return &specializationRepository{}
}

func (r *specializationRepository) Create(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error {
	return translateWriteError(db.WithContext(ctx).Create(specialization).Error)
}

// Update only writes the name; the slug keeps the value from the first save.
func (r *specializationRepository) Update(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error {
	err := db.WithContext(ctx).Model(specialization).Update("name", specialization.Name).Error
	return translateWriteError(err)
}

func (r *specializationRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Specialization, error) {
	var specialization entity.Specialization
	err := db.WithContext(ctx).Where("id = ?", id).First(&specialization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialization, nil
}

func (r *specializationRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialization, error) {
	var specializations []entity.Specialization
	err := db.WithContext(ctx).Order("created_at DESC").Find(&specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

func (r *specializationRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Specialization{})
	return result.RowsAffected, translateDeleteError(result.Error)
}
