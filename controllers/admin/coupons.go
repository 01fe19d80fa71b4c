package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type couponPayload struct {
	Code              string     `json:"code"`
	DiscountType      string     `json:"discount_type"`
	DiscountValue     *float64   `json:"discount_value"`
	MaxUses           *int       `json:"max_uses"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
	IsActive          *bool      `json:"is_active"`
	ApplicableCourses []string   `json:"applicable_courses"`
}

func validateCouponPayload(reqData *couponPayload, forCreate bool) map[string]string {
	errors := make(map[string]string)

	if forCreate {
		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Coupon code is required!"
		}
		if reqData.DiscountValue == nil {
			errors["discount_value"] = "Discount value is required!"
		}
	}
	if forCreate || reqData.DiscountType != "" {
		if reqData.DiscountType != models.DiscountPercentage && reqData.DiscountType != models.DiscountFixed {
			errors["discount_type"] = "Discount type must be percentage or fixed!"
		}
	}
	if reqData.DiscountValue != nil {
		if *reqData.DiscountValue <= 0 {
			errors["discount_value"] = "Discount value must be greater than 0!"
		} else if reqData.DiscountType == models.DiscountPercentage && *reqData.DiscountValue > 100 {
			errors["discount_value"] = "Percentage discount cannot exceed 100!"
		}
	}
	if reqData.MaxUses != nil && *reqData.MaxUses < 1 {
		errors["max_uses"] = "Max uses must be at least 1!"
	}

	return errors
}

// AdminCreateCoupon creates a discount code; codes are stored upper-cased
func AdminCreateCoupon(c *fiber.Ctx) error {
	reqData := new(couponPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := validateCouponPayload(reqData, true); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	code := strings.ToUpper(strings.TrimSpace(reqData.Code))

	if err := db.Where("code = ?", code).First(&models.CouponCode{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A coupon with this code already exists!", nil)
	}

	coupon := models.CouponCode{
		Code:              code,
		DiscountType:      reqData.DiscountType,
		DiscountValue:     *reqData.DiscountValue,
		MaxUses:           reqData.MaxUses,
		ValidUntil:        reqData.ValidUntil,
		IsActive:          true,
		ApplicableCourses: datatypes.NewJSONSlice(reqData.ApplicableCourses),
	}
	if reqData.ValidFrom != nil {
		coupon.ValidFrom = *reqData.ValidFrom
	} else {
		coupon.ValidFrom = time.Now()
	}
	if reqData.IsActive != nil {
		coupon.IsActive = *reqData.IsActive
	}

	if err := db.Create(&coupon).Error; err != nil {
		log.Printf("Error creating coupon %s: %v", code, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Coupon created successfully!", coupon)
}

// AdminListCoupons lists all coupons with usage counters
func AdminListCoupons(c *fiber.Ctx) error {
	var coupons []models.CouponCode
	if err := database.Database.Db.Order("created_at desc").Find(&coupons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch coupons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupons fetched successfully!", coupons)
}

// AdminUpdateCoupon updates a coupon; current_uses is never writable here
func AdminUpdateCoupon(c *fiber.Ctx) error {
	couponID := c.Locals("couponID").(uint)

	reqData := new(couponPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := validateCouponPayload(reqData, false); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db

	var coupon models.CouponCode
	if err := db.Where("id = ?", couponID).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	if reqData.DiscountType != "" {
		coupon.DiscountType = reqData.DiscountType
	}
	if reqData.DiscountValue != nil {
		coupon.DiscountValue = *reqData.DiscountValue
	}
	if reqData.MaxUses != nil {
		coupon.MaxUses = reqData.MaxUses
	}
	if reqData.ValidFrom != nil {
		coupon.ValidFrom = *reqData.ValidFrom
	}
	if reqData.ValidUntil != nil {
		coupon.ValidUntil = reqData.ValidUntil
	}
	if reqData.IsActive != nil {
		coupon.IsActive = *reqData.IsActive
	}
	if reqData.ApplicableCourses != nil {
		coupon.ApplicableCourses = datatypes.NewJSONSlice(reqData.ApplicableCourses)
	}

	if err := db.Save(&coupon).Error; err != nil {
		log.Printf("Error updating coupon %d: %v", couponID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon updated successfully!", coupon)
}

// AdminDeleteCoupon removes a coupon from circulation
func AdminDeleteCoupon(c *fiber.Ctx) error {
	couponID := c.Locals("couponID").(uint)

	var coupon models.CouponCode
	if err := database.Database.Db.Where("id = ?", couponID).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	// Hard delete: the code column keeps its unique index, so a soft-deleted
	// row would block the code from ever being issued again
	if err := database.Database.Db.Unscoped().Delete(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon deleted successfully!", nil)
}
