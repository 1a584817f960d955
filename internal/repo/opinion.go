package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/mswiatek/web_shop/internal/models"
	"gorm.io/gorm"
)

// CreateOpinion inserts a review. Uniqueness per (product, user) is enforced
// by the composite unique index, so the check is atomic with the insert:
// of two concurrent first reviews for the same pair, exactly one wins.
func (r *GormRepo) CreateOpinion(ctx context.Context, op *models.Opinion) (*models.Opinion, error) {
	if err := r.DB.WithContext(ctx).Create(op).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return op, nil
}

func (r *GormRepo) ListProductOpinions(ctx context.Context, productID uint) ([]models.Opinion, error) {
	var ops []models.Opinion
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *GormRepo) DeleteOpinion(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Opinion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isDuplicateKey also matches on the raw message for drivers that do not
// implement GORM's error translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
