package services

import (
	"academy/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func intPtr(v int) *int              { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func seedCoupon(t *testing.T, db *gorm.DB, coupon models.CouponCode) models.CouponCode {
	t.Helper()
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func TestCouponValidate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	seedCoupon(t, db, models.CouponCode{
		Code:          "EARLYBIRD",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
	})
	seedCoupon(t, db, models.CouponCode{
		Code:              "IOT-ONLY",
		DiscountType:      models.DiscountFixed,
		DiscountValue:     500,
		IsActive:          true,
		ApplicableCourses: datatypes.NewJSONSlice([]string{"iot-robotics"}),
	})
	seedCoupon(t, db, models.CouponCode{
		Code:          "USEDUP",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		IsActive:      true,
		MaxUses:       intPtr(1),
		CurrentUses:   1,
	})
	seedCoupon(t, db, models.CouponCode{
		Code:          "LASTYEAR",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		IsActive:      true,
		ValidUntil:    timePtr(time.Now().Add(-24 * time.Hour)),
	})
	seedCoupon(t, db, models.CouponCode{
		Code:          "DISABLED",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		IsActive:      false,
	})

	tests := []struct {
		name     string
		code     string
		courseID string
		wantErr  error
	}{
		{name: "valid coupon", code: "EARLYBIRD", courseID: "iot-robotics"},
		{name: "case insensitive lookup", code: "earlybird", courseID: "iot-robotics"},
		{name: "unknown code", code: "NOPE", courseID: "iot-robotics", wantErr: ErrInvalidCoupon},
		{name: "inactive code", code: "DISABLED", courseID: "iot-robotics", wantErr: ErrInvalidCoupon},
		{name: "applicable course", code: "IOT-ONLY", courseID: "iot-robotics"},
		{name: "wrong course", code: "IOT-ONLY", courseID: "web-development", wantErr: ErrCouponNotApplicable},
		{name: "exhausted", code: "USEDUP", courseID: "iot-robotics", wantErr: ErrCouponExhausted},
		{name: "expired", code: "LASTYEAR", courseID: "iot-robotics", wantErr: ErrCouponExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon, err := svc.Validate(tt.code, tt.courseID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, coupon)
		})
	}
}

// A coupon whose start date is in the future still validates; only the end
// date gates redemption.
func TestCouponValidateIgnoresStartDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	seedCoupon(t, db, models.CouponCode{
		Code:          "FUTURE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		IsActive:      true,
		ValidFrom:     time.Now().Add(24 * time.Hour),
	})

	_, err := svc.Validate("FUTURE", "iot-robotics")
	assert.NoError(t, err)
}

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name   string
		coupon *models.CouponCode
		price  float64
		want   float64
	}{
		{name: "nil coupon", coupon: nil, price: 100, want: 0},
		{
			name:   "ten percent",
			coupon: &models.CouponCode{DiscountType: models.DiscountPercentage, DiscountValue: 10},
			price:  100,
			want:   10,
		},
		{
			name:   "percentage rounds to cents",
			coupon: &models.CouponCode{DiscountType: models.DiscountPercentage, DiscountValue: 15},
			price:  24999,
			want:   3749.85,
		},
		{
			name:   "fixed amount",
			coupon: &models.CouponCode{DiscountType: models.DiscountFixed, DiscountValue: 500},
			price:  1000,
			want:   500,
		},
		{
			name:   "fixed capped at price",
			coupon: &models.CouponCode{DiscountType: models.DiscountFixed, DiscountValue: 5000},
			price:  1000,
			want:   1000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateDiscount(tt.coupon, tt.price), 0.0001)
		})
	}
}

func TestRedeemIncrementsUsage(t *testing.T) {
	db := setupTestDB(t)

	coupon := seedCoupon(t, db, models.CouponCode{
		Code:          "EARLYBIRD",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		MaxUses:       intPtr(2),
	})

	require.NoError(t, Redeem(db, coupon.ID))
	require.NoError(t, Redeem(db, coupon.ID))

	// Cap reached; the guarded update refuses a third redemption
	assert.ErrorIs(t, Redeem(db, coupon.ID), ErrCouponExhausted)

	var got models.CouponCode
	require.NoError(t, db.First(&got, coupon.ID).Error)
	assert.Equal(t, 2, got.CurrentUses)
}

func TestRedeemUnlimited(t *testing.T) {
	db := setupTestDB(t)

	coupon := seedCoupon(t, db, models.CouponCode{
		Code:          "FOREVER",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		IsActive:      true,
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, Redeem(db, coupon.ID))
	}

	var got models.CouponCode
	require.NoError(t, db.First(&got, coupon.ID).Error)
	assert.Equal(t, 5, got.CurrentUses)
}
