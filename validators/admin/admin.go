package adminValidator

import (
	"academy/middleware"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// uintParam parses a numeric path parameter and stores it under localKey
func uintParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params(param)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" id!", nil)
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func RegistrationID() fiber.Handler {
	return uintParam("id", "registrationID", "registration")
}

func CouponID() fiber.Handler {
	return uintParam("id", "couponID", "coupon")
}

func BankAccountID() fiber.Handler {
	return uintParam("id", "bankAccountID", "bank account")
}

func TargetUserID() fiber.Handler {
	return uintParam("id", "targetUserID", "user")
}

// ListQuery validates pagination and search parameters shared by the admin
// list endpoints. Accepts both query string and JSON body values.
func ListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Search string `json:"search"`
		})

		if page, err := strconv.Atoi(c.Query("page")); err == nil {
			reqData.Page = &page
		}
		if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
			reqData.Limit = &limit
		}
		reqData.Search = c.Query("search")

		if reqData.Page != nil && *reqData.Page < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Page must be at least 1!", nil)
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Limit must be between 1 and 100!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// VerifyPayment validates the payment verification body
func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Verified   *bool `json:"verified" validate:"required"`
			NotifyUser bool  `json:"notify_user"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"verified": "verified is required!"})
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
