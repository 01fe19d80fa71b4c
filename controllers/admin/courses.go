package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type coursePayload struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Price            *float64                `json:"price"`
	Duration         string                  `json:"duration"`
	AgeGroup         string                  `json:"age_group"`
	Highlights       []string                `json:"highlights"`
	Curriculum       []models.CurriculumItem `json:"curriculum"`
	Schedule         []models.ScheduleItem   `json:"schedule"`
	FAQ              []models.FAQItem        `json:"faq"`
	StartDate        *time.Time              `json:"start_date"`
	IsUpcoming       *bool                   `json:"is_upcoming"`
	RegistrationOpen *bool                   `json:"registration_open"`
	CardImageURL     string                  `json:"card_image_url"`
	HeroImageURL     string                  `json:"hero_image_url"`
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Empty sub-records from the builder UI are dropped on save

func filterHighlights(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func filterCurriculum(items []models.CurriculumItem) []models.CurriculumItem {
	out := make([]models.CurriculumItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" && len(item.Topics) == 0 {
			continue
		}
		topics := make([]string, 0, len(item.Topics))
		for _, t := range item.Topics {
			if strings.TrimSpace(t) != "" {
				topics = append(topics, t)
			}
		}
		item.Topics = topics
		out = append(out, item)
	}
	return out
}

func filterSchedule(items []models.ScheduleItem) []models.ScheduleItem {
	out := make([]models.ScheduleItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Day) == "" && strings.TrimSpace(item.Time) == "" && strings.TrimSpace(item.Topic) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func filterFAQ(items []models.FAQItem) []models.FAQItem {
	out := make([]models.FAQItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Question) == "" && strings.TrimSpace(item.Answer) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// AdminCreateCourse creates a new course under its public slug
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData := new(coursePayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.ID == "" || reqData.Title == "" || reqData.Price == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"course": "id, title and price are required!",
		})
	}
	if !slugRe.MatchString(reqData.ID) {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"id": "Course ID must be a lowercase slug like iot-robotics!",
		})
	}
	if *reqData.Price < 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"price": "Price cannot be negative!",
		})
	}

	db := database.Database.Db

	if err := db.Where("id = ?", reqData.ID).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this ID already exists!", nil)
	}

	course := models.Course{
		ID:               reqData.ID,
		Title:            reqData.Title,
		Description:      reqData.Description,
		Price:            *reqData.Price,
		Duration:         reqData.Duration,
		AgeGroup:         reqData.AgeGroup,
		Highlights:       datatypes.NewJSONSlice(filterHighlights(reqData.Highlights)),
		Curriculum:       datatypes.NewJSONSlice(filterCurriculum(reqData.Curriculum)),
		Schedule:         datatypes.NewJSONSlice(filterSchedule(reqData.Schedule)),
		FAQ:              datatypes.NewJSONSlice(filterFAQ(reqData.FAQ)),
		StartDate:        reqData.StartDate,
		RegistrationOpen: true,
		CardImageURL:     reqData.CardImageURL,
		HeroImageURL:     reqData.HeroImageURL,
	}
	if reqData.IsUpcoming != nil {
		course.IsUpcoming = *reqData.IsUpcoming
	}
	if reqData.RegistrationOpen != nil {
		course.RegistrationOpen = *reqData.RegistrationOpen
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course %s: %v", reqData.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course; edits go live immediately
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	reqData := new(coursePayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Price != nil && *reqData.Price >= 0 {
		course.Price = *reqData.Price
	}
	if reqData.Duration != "" {
		course.Duration = reqData.Duration
	}
	if reqData.AgeGroup != "" {
		course.AgeGroup = reqData.AgeGroup
	}
	if reqData.Highlights != nil {
		course.Highlights = datatypes.NewJSONSlice(filterHighlights(reqData.Highlights))
	}
	if reqData.Curriculum != nil {
		course.Curriculum = datatypes.NewJSONSlice(filterCurriculum(reqData.Curriculum))
	}
	if reqData.Schedule != nil {
		course.Schedule = datatypes.NewJSONSlice(filterSchedule(reqData.Schedule))
	}
	if reqData.FAQ != nil {
		course.FAQ = datatypes.NewJSONSlice(filterFAQ(reqData.FAQ))
	}
	if reqData.StartDate != nil {
		course.StartDate = reqData.StartDate
	}
	if reqData.IsUpcoming != nil {
		course.IsUpcoming = *reqData.IsUpcoming
	}
	if reqData.RegistrationOpen != nil {
		course.RegistrationOpen = *reqData.RegistrationOpen
	}
	if reqData.CardImageURL != "" {
		course.CardImageURL = reqData.CardImageURL
	}
	if reqData.HeroImageURL != "" {
		course.HeroImageURL = reqData.HeroImageURL
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %s: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminToggleRegistration opens or closes registration for a course
func AdminToggleRegistration(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.RegistrationOpen = !course.RegistrationOpen
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Registration is now closed for this course."
	if course.RegistrationOpen {
		message = "Registration is now open for this course."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}
