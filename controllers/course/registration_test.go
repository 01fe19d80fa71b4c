package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	adminRoutes "academy/routers/adminRoutes"
	courseRoutes "academy/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:       "3000",
		JWTKey:     "test-secret",
		SaltRound:  10,
		AppName:    "IO Builds Academy",
		UploadDir:  t.TempDir(),
		SlipURLTTL: 300,
	}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func seedUser(t *testing.T, role string) (models.User, string) {
	t.Helper()
	user := models.User{
		Name:             "Kasun Perera",
		Email:            fmt.Sprintf("%s@test.test", role),
		Mobile:           "94711234567",
		Role:             role,
		Password:         "not-a-real-hash",
		IsMobileVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, user.Mobile)
	require.NoError(t, err)
	return user, token
}

func seedCourse(t *testing.T, open bool) models.Course {
	t.Helper()
	course := models.Course{
		ID:               "iot-robotics",
		Title:            "IoT & Robotics",
		Description:      "Hands-on electronics and robotics",
		Price:            24999,
		Duration:         "12 weeks",
		RegistrationOpen: open,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func registrationForm(t *testing.T, coupon string, withSlip bool, terms string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Kasun Perera"))
	require.NoError(t, writer.WriteField("email", "kasun@test.test"))
	require.NoError(t, writer.WriteField("phone", "94711234567"))
	require.NoError(t, writer.WriteField("terms_accepted", terms))
	if coupon != "" {
		require.NoError(t, writer.WriteField("coupon_code", coupon))
	}
	if withSlip {
		part, err := writer.CreateFormFile("payment_slip", "slip.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestRegistrationAndVerificationFlow(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	_, studentToken := seedUser(t, "USER")
	_, adminToken := seedUser(t, "ADMIN")
	seedCourse(t, true)

	maxUses := 10
	require.NoError(t, db.Create(&models.CouponCode{
		Code:          "EARLYBIRD",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		MaxUses:       &maxUses,
		IsActive:      true,
	}).Error)

	// Student submits the registration with a coupon and a payment slip
	body, contentType := registrationForm(t, "earlybird", true, "true")
	req := httptest.NewRequest(http.MethodPost, "/courses/iot-robotics/register", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var registration models.Registration
	require.NoError(t, db.First(&registration).Error)
	assert.Equal(t, "EARLYBIRD", registration.CouponCode)
	assert.InDelta(t, 2499.90, registration.DiscountAmount, 0.0001)
	assert.InDelta(t, 22499.10, registration.FinalPrice, 0.0001)
	assert.False(t, registration.PaymentVerified)
	assert.NotEmpty(t, registration.PaymentSlipURL)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentPending, enrollment.Status)
	assert.Equal(t, registration.ID, enrollment.RegistrationID)

	var coupon models.CouponCode
	require.NoError(t, db.Where("code = ?", "EARLYBIRD").First(&coupon).Error)
	assert.Equal(t, 1, coupon.CurrentUses)

	// Double submit is rejected
	body, contentType = registrationForm(t, "", true, "true")
	req = httptest.NewRequest(http.MethodPost, "/courses/iot-robotics/register", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, _ = doRequest(t, app, req)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Admin verifies the payment; the enrollment follows
	verifyBody := bytes.NewBufferString(`{"verified": true, "notify_user": false}`)
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/registrations/%d/verify", registration.ID), verifyBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, _ = doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&registration, registration.ID).Error)
	assert.True(t, registration.PaymentVerified)

	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
}

// A racing double-submit slips past the pre-check and hits the unique
// (user, course) index; the insert error must surface as ErrDuplicatedKey so
// the workflow can treat it as an idempotent success.
func TestDuplicateEnrollmentTranslatesToDuplicatedKey(t *testing.T) {
	setupApp(t)
	db := database.Database.Db

	user, _ := seedUser(t, "USER")
	seedCourse(t, true)

	require.NoError(t, db.Create(&models.Enrollment{
		UserID:         user.ID,
		CourseID:       "iot-robotics",
		RegistrationID: 1,
		Status:         models.EnrollmentPending,
	}).Error)

	err := db.Create(&models.Enrollment{
		UserID:         user.ID,
		CourseID:       "iot-robotics",
		RegistrationID: 2,
		Status:         models.EnrollmentPending,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRegistrationRequiresTerms(t *testing.T) {
	app := setupApp(t)

	_, studentToken := seedUser(t, "USER")
	seedCourse(t, true)

	body, contentType := registrationForm(t, "", true, "false")
	req := httptest.NewRequest(http.MethodPost, "/courses/iot-robotics/register", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Nothing was written
	var count int64
	require.NoError(t, database.Database.Db.Model(&models.Registration{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRegistrationRequiresSlip(t *testing.T) {
	app := setupApp(t)

	_, studentToken := seedUser(t, "USER")
	seedCourse(t, true)

	body, contentType := registrationForm(t, "", false, "true")
	req := httptest.NewRequest(http.MethodPost, "/courses/iot-robotics/register", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, parsed := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Payment slip is required!", parsed["message"])
}

func TestRegistrationClosedCourse(t *testing.T) {
	app := setupApp(t)

	_, studentToken := seedUser(t, "USER")
	seedCourse(t, false)

	body, contentType := registrationForm(t, "", true, "true")
	req := httptest.NewRequest(http.MethodPost, "/courses/iot-robotics/register", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRegistrationRequiresAuth(t *testing.T) {
	app := setupApp(t)
	seedCourse(t, true)

	body, contentType := registrationForm(t, "", true, "true")
	req := httptest.NewRequest(http.MethodPost, "/courses/iot-robotics/register", body)
	req.Header.Set("Content-Type", contentType)

	resp, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminEndpointsRejectStudents(t *testing.T) {
	app := setupApp(t)

	_, studentToken := seedUser(t, "USER")

	req := httptest.NewRequest(http.MethodGet, "/admin/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCouponValidationEndpoint(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	seedCourse(t, true)
	require.NoError(t, db.Create(&models.CouponCode{
		Code:          "FLAT500",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 500,
		IsActive:      true,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/courses/iot-robotics/coupon?code=FLAT500", nil)
	resp, parsed := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.InDelta(t, 500, data["discount_amount"].(float64), 0.0001)
	assert.InDelta(t, 24499, data["final_price"].(float64), 0.0001)

	req = httptest.NewRequest(http.MethodGet, "/courses/iot-robotics/coupon?code=NOPE", nil)
	resp, _ = doRequest(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
