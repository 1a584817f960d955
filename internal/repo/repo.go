// Package repo is the persistence layer over GORM. Entity validation runs as
// an explicit step before any insert, so callers can tell a validation
// failure from a storage failure.
package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrValidation      = errors.New("validation") // 400
	ErrNotFound        = errors.New("not found")  // 404
	ErrDuplicateReview = errors.New("user has already reviewed this product")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
