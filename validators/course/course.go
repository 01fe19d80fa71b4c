package courseValidator

import (
	"academy/middleware"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Course IDs are URL slugs like "iot-robotics"
var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

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
				errors[field] = field + " must be at least " + fe.Param() + "!"
			case "max":
				errors[field] = field + " must be at most " + fe.Param() + "!"
			default:
				errors[field] = field + " is invalid!"
			}
		}
	} else {
		errors["request"] = "Invalid request body!"
	}
	return errors
}

// CourseID validates the :id path parameter as a course slug
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.ToLower(strings.TrimSpace(c.Params("id")))
		if id == "" || len(id) > 100 || !slugRe.MatchString(id) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// Register validates the multipart registration form. The payment slip file
// itself is checked in the controller; terms must be accepted before anything
// is written.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.FormValue("terms_accepted") != "true" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You must accept the terms and conditions!", nil)
		}

		reqData := &struct {
			Name       string `json:"name" validate:"required,min=2,max=100"`
			Email      string `json:"email" validate:"required,email,max=255"`
			Phone      string `json:"phone" validate:"required,max=20"`
			CouponCode string `json:"coupon_code"`
		}{
			Name:       strings.TrimSpace(c.FormValue("name")),
			Email:      strings.TrimSpace(c.FormValue("email")),
			Phone:      strings.TrimSpace(c.FormValue("phone")),
			CouponCode: strings.TrimSpace(c.FormValue("coupon_code")),
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedRegistration", reqData)
		return c.Next()
	}
}

// Progress validates a lesson progress update
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WeekNumber       int  `json:"week_number" validate:"required,min=1"`
			IsCompleted      bool `json:"is_completed"`
			TimeSpentMinutes int  `json:"time_spent_minutes" validate:"min=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
