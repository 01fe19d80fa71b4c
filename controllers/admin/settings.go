package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminGetSettings returns all app settings as a key/value map
func AdminGetSettings(c *fiber.Ctx) error {
	var settings []models.AppSetting
	if err := database.Database.Db.Find(&settings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully!", out)
}

// AdminPutSetting upserts a single setting
func AdminPutSetting(c *fiber.Ctx) error {
	reqData := new(struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if strings.TrimSpace(reqData.Key) == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"key": "Setting key is required!"})
	}

	db := database.Database.Db

	var setting models.AppSetting
	err := db.Where("key = ?", reqData.Key).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update setting!", nil)
		}
		setting = models.AppSetting{Key: reqData.Key, Value: reqData.Value}
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("Error creating setting %s: %v", reqData.Key, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update setting!", nil)
		}
	} else {
		setting.Value = reqData.Value
		if err := db.Save(&setting).Error; err != nil {
			log.Printf("Error updating setting %s: %v", reqData.Key, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update setting!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting updated successfully!", setting)
}
