package repository

import (
	"context"

	"clinic-accounts/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	UpdateActive(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error)
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.AccountFilter) ([]entity.Doctor, error)
	CountBySpecialization(ctx context.Context, db *gorm.DB, specializationID int) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
