package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Discount types
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type CouponCode struct {
	gorm.Model
	Code          string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	DiscountType  string     `gorm:"size:20;not null" json:"discount_type"` // percentage, fixed
	DiscountValue float64    `gorm:"not null" json:"discount_value"`
	MaxUses       *int       `json:"max_uses"` // nil means unlimited
	CurrentUses   int        `gorm:"default:0" json:"current_uses"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	// No column default: false must survive Create, so callers set it explicitly
	IsActive bool `json:"is_active"`
	// Empty list means the coupon applies to every course
	ApplicableCourses datatypes.JSONSlice[string] `json:"applicable_courses"`
}
