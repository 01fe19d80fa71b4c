package authController

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/services"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email,max=255"`
		Mobile   string `json:"mobile" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if mobile already exists
	if err := db.Where("mobile = ? AND is_deleted = ?", reqData.Mobile, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Mobile number is already registered!", nil)
	}

	// Signup requires a mobile verified through the OTP flow first
	otpSvc := services.NewOTPService(db)
	otpRecord, err := otpSvc.LatestVerified(reqData.Mobile, models.OtpPurposeRegistration)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please verify your mobile number first", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:             reqData.Name,
		Email:            reqData.Email,
		Mobile:           reqData.Mobile,
		Password:         string(hashedPassword),
		IsMobileVerified: true,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	// The verified OTP row is spent now
	if err := otpSvc.Consume(otpRecord); err != nil {
		log.Printf("Error consuming OTP record: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Update last login time
	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	// Generate JWT token
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, user.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func SendOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendOTP").(*struct {
		MobileNumber string `json:"mobile_number" validate:"required"`
		Purpose      string `json:"purpose" validate:"required,oneof=registration password_reset"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Password resets only make sense for an existing account
	if reqData.Purpose == models.OtpPurposePasswordReset {
		var user models.User
		if err := database.Database.Db.Where("mobile = ? AND is_deleted = ?", reqData.MobileNumber, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found with this mobile number", nil)
		}
	}

	otpSvc := services.NewOTPService(database.Database.Db)
	if err := otpSvc.Send(reqData.MobileNumber, reqData.Purpose); err != nil {
		log.Printf("Error sending OTP to %s: %v", reqData.MobileNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to mobile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*struct {
		MobileNumber string `json:"mobile_number" validate:"required"`
		OTP          string `json:"otp" validate:"required,len=6,numeric"`
		Purpose      string `json:"purpose" validate:"required,oneof=registration password_reset"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	otpSvc := services.NewOTPService(database.Database.Db)
	err := otpSvc.Verify(reqData.MobileNumber, reqData.OTP, reqData.Purpose)
	if err != nil {
		if errors.Is(err, services.ErrOTPNotFound) || errors.Is(err, services.ErrOTPMismatch) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		log.Printf("Error verifying OTP for %s: %v", reqData.MobileNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*struct {
		MobileNumber string `json:"mobile_number" validate:"required"`
		NewPassword  string `json:"new_password" validate:"required,min=8"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// A verified password-reset OTP must exist for this number
	otpSvc := services.NewOTPService(db)
	otpRecord, err := otpSvc.LatestVerified(reqData.MobileNumber, models.OtpPurposePasswordReset)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please verify your mobile number first", nil)
	}

	var user models.User
	if err := db.Where("mobile = ? AND is_deleted = ?", reqData.MobileNumber, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found with this mobile number", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password", nil)
	}

	user.Password = string(hashedPassword)
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password", nil)
	}

	// Clean up used OTP
	if err := otpSvc.Consume(otpRecord); err != nil {
		log.Printf("Error consuming OTP record: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully", nil)
}
