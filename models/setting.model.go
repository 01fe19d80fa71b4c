package models

import (
	"gorm.io/gorm"
)

// Setting keys
const (
	SettingAdminMobile = "admin_mobile_number"
)

type AppSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `json:"value"`
}
