package models

import (
	"gorm.io/gorm"
)

type Registration struct {
	gorm.Model
	Name            string  `gorm:"not null" json:"name"`
	Email           string  `gorm:"not null" json:"email"`
	Phone           string  `gorm:"size:15;not null" json:"phone"`
	Course          string  `gorm:"size:100;index;not null" json:"course"`
	UserID          uint    `gorm:"index;not null" json:"user_id"`
	CouponCode      string  `gorm:"size:50" json:"coupon_code"`
	DiscountAmount  float64 `gorm:"default:0" json:"discount_amount"`
	FinalPrice      float64 `gorm:"not null" json:"final_price"`
	TermsAccepted   bool    `gorm:"not null" json:"terms_accepted"`
	PaymentSlipURL  string  `json:"payment_slip_url"`
	PaymentVerified bool    `gorm:"default:false" json:"payment_verified"`
	User            User    `gorm:"foreignKey:UserID" json:"-"`
}
