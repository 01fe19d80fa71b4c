package models

import (
	"time"

	"gorm.io/datatypes"
)

type CurriculumItem struct {
	Week   int      `json:"week"`
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

type ScheduleItem struct {
	Day   string `json:"day"`
	Time  string `json:"time"`
	Topic string `json:"topic"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Course is keyed by its public slug (e.g. "iot-robotics")
type Course struct {
	ID               string                              `gorm:"primaryKey;size:100" json:"id"`
	Title            string                              `gorm:"not null" json:"title"`
	Description      string                              `json:"description"`
	Price            float64                             `gorm:"not null" json:"price"`
	Duration         string                              `json:"duration"`
	AgeGroup         string                              `json:"age_group"`
	Highlights       datatypes.JSONSlice[string]         `json:"highlights"`
	Curriculum       datatypes.JSONSlice[CurriculumItem] `json:"curriculum"`
	Schedule         datatypes.JSONSlice[ScheduleItem]   `json:"schedule"`
	FAQ              datatypes.JSONSlice[FAQItem]        `json:"faq"`
	StartDate        *time.Time                          `json:"start_date"`
	IsUpcoming       bool                                `gorm:"default:false" json:"is_upcoming"`
	RegistrationOpen bool                                `json:"registration_open"`
	CardImageURL     string                              `gorm:"default:''" json:"card_image_url"`
	HeroImageURL     string                              `gorm:"default:''" json:"hero_image_url"`
	CreatedAt        time.Time                           `json:"created_at"`
	UpdatedAt        time.Time                           `json:"updated_at"`
	IsDeleted        bool                                `gorm:"default:false" json:"-"`
}
