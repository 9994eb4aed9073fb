package repository

import (
	"context"

	"clinic-accounts/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecializationRepository interface {
	Create(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error
	Update(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Specialization, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialization, error)
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
