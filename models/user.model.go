package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name             string    `gorm:"default:''"`
	Email            string    `gorm:"unique;not null"`
	Mobile           string    `gorm:"size:15;index"`
	Role             string    `gorm:"default:'USER'"` // USER, ADMIN
	Password         string    `gorm:"not null" json:"-"`
	ProfileImage     string    `gorm:"default:''"`
	IsMobileVerified bool      `gorm:"default:false"`
	LastLogin        time.Time `gorm:"default:NULL"`
	IsDeleted        bool      `gorm:"default:false"`
}
