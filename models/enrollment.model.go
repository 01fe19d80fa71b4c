package models

import (
	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentPending    = "pending"
	EnrollmentEnrolled   = "enrolled"
	EnrollmentInProgress = "in_progress"
	EnrollmentCompleted  = "completed"
)

type Enrollment struct {
	gorm.Model
	UserID         uint         `gorm:"uniqueIndex:idx_user_course;not null" json:"user_id"`
	CourseID       string       `gorm:"size:100;uniqueIndex:idx_user_course;not null" json:"course_id"`
	RegistrationID uint         `gorm:"index;not null" json:"registration_id"`
	Status         string       `gorm:"size:20;default:'pending'" json:"status"`
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course         Course       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course"`
	Registration   Registration `gorm:"foreignKey:RegistrationID" json:"-"`
}
