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

type pharmacistRepository struct{}

func NewPharmacistRepository() domainRepo.PharmacistRepository {
	return &pharmacistRepository{}
}

func (r *pharmacistRepository) Create(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations).Create(pharmacist).Error)
}

// Update writes the account and profile columns. The approval flag is left
// to UpdateActive.
func (r *pharmacistRepository) Update(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations, "created_at", "slug", "active").Save(pharmacist).Error)
}

func (r *pharmacistRepository) UpdateActive(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error {
	return db.WithContext(ctx).Model(pharmacist).UpdateColumns(map[string]interface{}{
		"active":     pharmacist.Active,
		"updated_at": pharmacist.UpdatedAt,
	}).Error
}

func (r *pharmacistRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pharmacist, error) {
	var pharmacist entity.Pharmacist
	err := db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&pharmacist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacist, nil
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *pharmacistRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pharmacist, error) {
	var pharmacist entity.Pharmacist
	err := db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&pharmacist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacist, nil
}

func (r *pharmacistRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Pharmacist, error) {
	var pharmacist entity.Pharmacist
	err := db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&pharmacist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacist, nil
}

func (r *pharmacistRepository) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Pharmacist{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *pharmacistRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AccountFilter) ([]entity.Pharmacist, error) {
	var pharmacists []entity.Pharmacist
	query := db.WithContext(ctx)
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	err := query.Order("created_at DESC").Find(&pharmacists).Error
	if err != nil {
		return nil, err
	}
	return pharmacists, nil
}

func (r *pharmacistRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Pharmacist{})
	return result.RowsAffected, translateDeleteError(result.Error)
}
