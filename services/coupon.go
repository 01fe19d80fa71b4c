package services

import (
	"academy/models"
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrInvalidCoupon       = errors.New("Invalid coupon code")
	ErrCouponNotApplicable = errors.New("This coupon is not valid for this course")
	ErrCouponExhausted     = errors.New("This coupon has reached its maximum uses")
	ErrCouponExpired       = errors.New("This coupon has expired")
)

type CouponService struct {
	db *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// Validate looks up an active coupon by code (case-insensitive) and checks it
// against the given course, its usage cap and its validity window.
// valid_from is deliberately not checked; only valid_until gates redemption.
func (s *CouponService) Validate(code, courseID string) (*models.CouponCode, error) {
	var coupon models.CouponCode
	err := s.db.
		Where("code = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}

	if len(coupon.ApplicableCourses) > 0 {
		applicable := false
		for _, id := range coupon.ApplicableCourses {
			if id == courseID {
				applicable = true
				break
			}
		}
		if !applicable {
			return nil, ErrCouponNotApplicable
		}
	}

	if coupon.MaxUses != nil && coupon.CurrentUses >= *coupon.MaxUses {
		return nil, ErrCouponExhausted
	}

	if coupon.ValidUntil != nil && coupon.ValidUntil.Before(time.Now()) {
		return nil, ErrCouponExpired
	}

	return &coupon, nil
}

// CalculateDiscount computes the discount a coupon grants on a price.
// Percentage discounts round to 2 decimals; fixed discounts never exceed
// the price, so the final price floors at 0.
func CalculateDiscount(coupon *models.CouponCode, originalPrice float64) float64 {
	if coupon == nil {
		return 0
	}

	if coupon.DiscountType == models.DiscountPercentage {
		return math.Round(originalPrice*(coupon.DiscountValue/100)*100) / 100
	}
	return math.Min(coupon.DiscountValue, originalPrice)
}

// Redeem increments a coupon's usage counter inside the caller's transaction.
// The WHERE clause keeps current_uses from overshooting max_uses when two
// redemptions race.
func Redeem(tx *gorm.DB, couponID uint) error {
	res := tx.Model(&models.CouponCode{}).
		Where("id = ? AND (max_uses IS NULL OR current_uses < max_uses)", couponID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponExhausted
	}
	return nil
}
