package repository

import (
	"context"

	"clinic-accounts/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PharmacistRepository interface {
	Create(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error
	Update(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error
	UpdateActive(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pharmacist, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pharmacist, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Pharmacist, error)
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.AccountFilter) ([]entity.Pharmacist, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
