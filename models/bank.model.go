package models

import (
	"gorm.io/gorm"
)

// BankAccount holds the academy accounts shown to students for bank transfers
type BankAccount struct {
	gorm.Model
	BankName      string `gorm:"not null" json:"bank_name"`
	AccountName   string `gorm:"not null" json:"account_name"`
	AccountNumber string `gorm:"not null" json:"account_number"`
	Branch        string `gorm:"default:''" json:"branch"`
	IsActive      bool   `json:"is_active"`
	DisplayOrder  int    `gorm:"default:0" json:"display_order"`
}
