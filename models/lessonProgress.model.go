package models

import (
	"gorm.io/gorm"
)

type LessonProgress struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex:idx_user_course_week;not null" json:"user_id"`
	CourseID         string `gorm:"size:100;uniqueIndex:idx_user_course_week;not null" json:"course_id"`
	WeekNumber       int    `gorm:"uniqueIndex:idx_user_course_week;not null" json:"week_number"`
	IsCompleted      bool   `gorm:"default:false" json:"is_completed"`
	TimeSpentMinutes int    `gorm:"default:0" json:"time_spent_minutes"`
}
