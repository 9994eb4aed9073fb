package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands usecases a handle for reads and runs writes inside a
// single transaction. fn's error rolls the transaction back.
type Transactor interface {
	DB(ctx context.Context) *gorm.DB
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
