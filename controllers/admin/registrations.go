package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AdminListRegistrations pages through registrations, newest first, with an
// optional search over name/email/course
func AdminListRegistrations(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page   *int   `json:"page"`
		Limit  *int   `json:"limit"`
		Search string `json:"search"`
	})

	page := 1
	limit := 20
	search := ""
	if ok {
		if reqData.Page != nil && *reqData.Page > 0 {
			page = *reqData.Page
		}
		if reqData.Limit != nil && *reqData.Limit > 0 {
			limit = *reqData.Limit
		}
		search = reqData.Search
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Registration{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ? OR course ILIKE ?", like, like, like)
	}

	var total int64
	db.Count(&total)

	var pending int64
	database.Database.Db.Model(&models.Registration{}).Where("payment_verified = ?", false).Count(&pending)

	var registrations []models.Registration
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&registrations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registrations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registrations fetched successfully!", fiber.Map{
		"registrations": registrations,
		"pending_count": pending,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminVerifyPayment flips payment_verified and keeps the linked enrollment
// status in step. Verification optionally pings the student; unverifying
// quietly drops them back to pending.
func AdminVerifyPayment(c *fiber.Ctx) error {
	registrationID := c.Locals("registrationID").(uint)

	reqData, ok := c.Locals("validatedVerify").(*struct {
		Verified   *bool `json:"verified" validate:"required"`
		NotifyUser bool  `json:"notify_user"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	verified := *reqData.Verified

	db := database.Database.Db

	var registration models.Registration
	if err := db.Where("id = ?", registrationID).First(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Registration not found!", nil)
	}

	registration.PaymentVerified = verified
	if err := db.Save(&registration).Error; err != nil {
		log.Printf("Error updating registration %d: %v", registrationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update registration!", nil)
	}

	// Keep the enrollment in step
	status := models.EnrollmentPending
	if verified {
		status = models.EnrollmentEnrolled
	}
	err := db.Model(&models.Enrollment{}).
		Where("registration_id = ?", registrationID).
		Update("status", status).Error
	if err != nil {
		log.Printf("Error updating enrollment for registration %d: %v", registrationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	if verified && reqData.NotifyUser {
		var course models.Course
		courseTitle := registration.Course
		if err := db.Where("id = ?", registration.Course).First(&course).Error; err == nil {
			courseTitle = course.Title
		}

		go utils.NotifyUserPaymentVerified(registration.Name, registration.Phone, courseTitle)
		go func(name, email, title string) {
			if err := utils.SendPaymentVerifiedEmail(name, email, title); err != nil {
				log.Printf("Error sending payment-verified email to %s: %v", email, err)
			}
		}(registration.Name, registration.Email, courseTitle)
	}

	message := "Payment unverified."
	if verified {
		message = "Payment verified."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, registration)
}

// AdminGetSlipURL hands out a short-lived signed link to a payment slip
func AdminGetSlipURL(c *fiber.Ctx) error {
	registrationID := c.Locals("registrationID").(uint)

	var registration models.Registration
	if err := database.Database.Db.Where("id = ?", registrationID).First(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Registration not found!", nil)
	}

	if registration.PaymentSlipURL == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No payment slip uploaded for this registration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signed URL generated successfully!", fiber.Map{
		"url": utils.SignedSlipURL(registration.PaymentSlipURL),
	})
}
