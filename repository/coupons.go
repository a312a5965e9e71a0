package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CouponRepository stores the single coupon a user may hold.
type CouponRepository interface {
	Find(ctx context.Context, userID string) (*models.Coupon, error)
	// Activate stores coupon unless the user holds one activated after
	// expiredBy, in which case it fails with apperrors.ErrConflict.
	Activate(ctx context.Context, coupon *models.Coupon, expiredBy time.Time) error
	Delete(ctx context.Context, userID string) error
}

type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) CouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Find(ctx context.Context, userID string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("no coupon for user %s", userID))
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Activate upserts in one statement; the DO UPDATE only fires over an
// expired row, so of two racing activations exactly one wins.
func (r *GormCouponRepository) Activate(ctx context.Context, coupon *models.Coupon, expiredBy time.Time) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "activated_at", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Lte{Column: clause.Column{Table: "coupons", Name: "activated_at"}, Value: expiredBy},
			}},
		}).
		Create(coupon)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.Wrap(apperrors.ErrConflict, fmt.Errorf("user %s already holds an active coupon", coupon.UserID))
	}
	return nil
}

func (r *GormCouponRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("no coupon for user %s", userID))
	}
	return nil
}
