package courseController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

type courseCounts struct {
	Course   string
	Total    int64
	Verified int64
}

// registrationCounts aggregates registered/verified totals per course slug
func registrationCounts(courseIDs ...string) map[string]courseCounts {
	db := database.Database.Db

	var regs []models.Registration
	query := db.Select("course", "payment_verified")
	if len(courseIDs) > 0 {
		query = query.Where("course IN ?", courseIDs)
	}
	if err := query.Find(&regs).Error; err != nil {
		log.Printf("Error counting registrations: %v", err)
		return nil
	}

	counts := make(map[string]courseCounts)
	for _, reg := range regs {
		entry := counts[reg.Course]
		entry.Course = reg.Course
		entry.Total++
		if reg.PaymentVerified {
			entry.Verified++
		}
		counts[reg.Course] = entry
	}
	return counts
}

// GetAllCourses lists the public catalog with per-course registration counts
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	counts := registrationCounts()

	list := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		list = append(list, fiber.Map{
			"course":           course,
			"registered_count": counts[course.ID].Total,
			"verified_count":   counts[course.ID].Verified,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", list)
}

// GetCourseDetails returns one course by slug
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	counts := registrationCounts(courseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":           course,
		"registered_count": counts[courseID].Total,
		"verified_count":   counts[courseID].Verified,
	})
}

// GetUpcomingCourse returns the next course flagged as upcoming, if any
func GetUpcomingCourse(c *fiber.Ctx) error {
	var course models.Course
	err := database.Database.Db.
		Where("is_upcoming = ? AND is_deleted = ?", true, false).
		Order("start_date asc").
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No upcoming course.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upcoming course fetched successfully!", fiber.Map{
		"id":         course.ID,
		"title":      course.Title,
		"start_date": course.StartDate,
	})
}

// GetPaymentAccounts lists the active bank accounts shown on the payment step
func GetPaymentAccounts(c *fiber.Ctx) error {
	var accounts []models.BankAccount
	err := database.Database.Db.
		Where("is_active = ?", true).
		Order("display_order asc").
		Find(&accounts).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment accounts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment accounts fetched successfully!", accounts)
}
