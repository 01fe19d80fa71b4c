package authValidator

import (
	"academy/middleware"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Mobile numbers arrive in international format without the plus, e.g. 9471XXXXXXX
var mobileRe = regexp.MustCompile(`^\d{9,15}$`)

func isValidMobile(mobile string) bool {
	return mobileRe.MatchString(mobile)
}

// fieldErrors flattens validator.ValidationErrors into a field -> message map
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				errors[field] = field + " is required!"
			case "email":
				errors[field] = "Invalid email!"
			case "min":
				errors[field] = field + " must be at least " + fe.Param() + " characters long!"
			case "len":
				errors[field] = field + " must be exactly " + fe.Param() + " characters!"
			case "oneof":
				errors[field] = field + " must be one of: " + fe.Param()
			default:
				errors[field] = field + " is invalid!"
			}
		}
	} else {
		errors["request"] = "Invalid request body!"
	}
	return errors
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name" validate:"required,min=2,max=100"`
			Email    string `json:"email" validate:"required,email,max=255"`
			Mobile   string `json:"mobile" validate:"required"`
			Password string `json:"password" validate:"required,min=8"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if !isValidMobile(reqData.Mobile) {
			return middleware.ValidationErrorResponse(c, map[string]string{"mobile": "Invalid mobile number!"})
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNumber string `json:"mobile_number" validate:"required"`
			Purpose      string `json:"purpose" validate:"required,oneof=registration password_reset"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if !isValidMobile(reqData.MobileNumber) {
			return middleware.ValidationErrorResponse(c, map[string]string{"mobile_number": "Invalid mobile number!"})
		}

		c.Locals("validatedSendOTP", reqData)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNumber string `json:"mobile_number" validate:"required"`
			OTP          string `json:"otp" validate:"required,len=6,numeric"`
			Purpose      string `json:"purpose" validate:"required,oneof=registration password_reset"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedVerifyOTP", reqData)
		return c.Next()
	}
}

// ResetPassword validator middleware
func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNumber string `json:"mobile_number" validate:"required"`
			NewPassword  string `json:"new_password" validate:"required,min=8"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if !isValidMobile(reqData.MobileNumber) {
			return middleware.ValidationErrorResponse(c, map[string]string{"mobile_number": "Invalid mobile number!"})
		}

		c.Locals("validatedResetPassword", reqData)
		return c.Next()
	}
}
