package courseController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/services"
	"academy/utils"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ValidateCoupon checks a coupon code against a course and prices the discount
func ValidateCoupon(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon code is required!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	coupon, err := services.NewCouponService(db).Validate(code, courseID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCoupon) || errors.Is(err, services.ErrCouponNotApplicable) ||
			errors.Is(err, services.ErrCouponExhausted) || errors.Is(err, services.ErrCouponExpired) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		log.Printf("Error validating coupon %s: %v", code, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate coupon!", nil)
	}

	discount := services.CalculateDiscount(coupon, course.Price)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon applied successfully!", fiber.Map{
		"coupon":          coupon,
		"discount_amount": discount,
		"final_price":     course.Price - discount,
	})
}

var allowedSlipExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

const maxSlipSize = 5 * 1024 * 1024 // 5MB

// RegisterForCourse runs the registration workflow: slip upload, then one
// transaction covering registration insert, pending enrollment and coupon
// redemption, then best-effort email and admin SMS.
func RegisterForCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(string)

	reqData, ok := c.Locals("validatedRegistration").(*struct {
		Name       string `json:"name" validate:"required,min=2,max=100"`
		Email      string `json:"email" validate:"required,email,max=255"`
		Phone      string `json:"phone" validate:"required,max=20"`
		CouponCode string `json:"coupon_code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if !course.RegistrationOpen {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Registration is closed for this course!", nil)
	}

	// Double-submit guard
	var existingEnrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already registered for this course!", nil)
	}

	// Payment slip: image or PDF, max 5MB
	file, err := c.FormFile("payment_slip")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment slip is required!", nil)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedSlipExtensions[ext] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment slip must be an image or PDF!", nil)
	}
	if file.Size > maxSlipSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment slip must be 5MB or smaller!", nil)
	}

	// Price the registration, revalidating any coupon server-side
	var coupon *models.CouponCode
	if reqData.CouponCode != "" {
		coupon, err = services.NewCouponService(db).Validate(reqData.CouponCode, courseID)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCoupon) || errors.Is(err, services.ErrCouponNotApplicable) ||
				errors.Is(err, services.ErrCouponExhausted) || errors.Is(err, services.ErrCouponExpired) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
			}
			log.Printf("Error validating coupon %s: %v", reqData.CouponCode, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate coupon!", nil)
		}
	}
	discount := services.CalculateDiscount(coupon, course.Price)

	slipPath, err := utils.SaveUploadedFile(file, utils.SlipDir(userID))
	if err != nil {
		log.Printf("Error saving payment slip for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload payment slip!", nil)
	}

	registration := models.Registration{
		Name:           reqData.Name,
		Email:          reqData.Email,
		Phone:          reqData.Phone,
		Course:         courseID,
		UserID:         userID,
		CouponCode:     strings.ToUpper(reqData.CouponCode),
		DiscountAmount: discount,
		FinalPrice:     course.Price - discount,
		TermsAccepted:  true,
		PaymentSlipURL: slipPath,
	}

	var enrollment models.Enrollment

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		enrollment = models.Enrollment{
			UserID:         userID,
			CourseID:       courseID,
			RegistrationID: registration.ID,
			Status:         models.EnrollmentPending,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			// Idempotent against a racing double-submit
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}

		if coupon != nil {
			if err := services.Redeem(tx, coupon.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Compensating cleanup for the orphaned upload
		if rmErr := os.Remove(slipPath); rmErr != nil {
			log.Printf("Error removing orphaned slip %s: %v", slipPath, rmErr)
		}
		if errors.Is(err, services.ErrCouponExhausted) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		log.Printf("Error saving registration for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Registration failed. Please try again.", nil)
	}

	// Confirmation email and admin SMS are fire-and-forget
	go func(name, email, phone, courseTitle string) {
		if err := utils.SendRegistrationEmail(name, email, phone, courseTitle); err != nil {
			log.Printf("Error sending registration email to %s: %v", email, err)
		}
	}(reqData.Name, reqData.Email, reqData.Phone, course.Title)

	go utils.NotifyAdminNewPayment(db, reqData.Name, reqData.Email, reqData.Phone, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registration submitted successfully! We will verify your payment shortly.", fiber.Map{
		"registration": registration,
		"enrollment":   enrollment,
	})
}
