package courseController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUserEnrollments lists the learner's enrollments with progress totals
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", userID).Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var progress []models.LessonProgress
	if err := db.Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		log.Printf("Error fetching lesson progress for user %d: %v", userID, err)
	}

	completedWeeks := make(map[string]int)
	totalMinutes := 0
	for _, p := range progress {
		if p.IsCompleted {
			completedWeeks[p.CourseID]++
		}
		totalMinutes += p.TimeSpentMinutes
	}

	list := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		list = append(list, fiber.Map{
			"enrollment":      e,
			"completed_weeks": completedWeeks[e.CourseID],
			"total_weeks":     len(e.Course.Curriculum),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments":        list,
		"total_time_minutes": totalMinutes,
	})
}

// GetCourseProgress returns the learner's per-week progress for one course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(string)

	var progress []models.LessonProgress
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("week_number asc").
		Find(&progress).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// UpdateLessonProgress upserts one week's progress. Content stays locked
// while the enrollment is still pending payment verification.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(string)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		WeekNumber       int  `json:"week_number" validate:"required,min=1"`
		IsCompleted      bool `json:"is_completed"`
		TimeSpentMinutes int  `json:"time_spent_minutes" validate:"min=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}
	if enrollment.Status == models.EnrollmentPending {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course content unlocks after payment verification.", nil)
	}

	var record models.LessonProgress
	err := db.Where("user_id = ? AND course_id = ? AND week_number = ?", userID, courseID, reqData.WeekNumber).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		record = models.LessonProgress{
			UserID:           userID,
			CourseID:         courseID,
			WeekNumber:       reqData.WeekNumber,
			IsCompleted:      reqData.IsCompleted,
			TimeSpentMinutes: reqData.TimeSpentMinutes,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("Error creating lesson progress for user %d: %v", userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	} else {
		record.IsCompleted = reqData.IsCompleted
		record.TimeSpentMinutes += reqData.TimeSpentMinutes
		if err := db.Save(&record).Error; err != nil {
			log.Printf("Error updating lesson progress for user %d: %v", userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	// First progress on an enrolled course moves it to in_progress
	if enrollment.Status == models.EnrollmentEnrolled {
		enrollment.Status = models.EnrollmentInProgress
		if err := db.Save(&enrollment).Error; err != nil {
			log.Printf("Error updating enrollment status for user %d: %v", userID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", record)
}
