package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers pages through user accounts
func AdminListUsers(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminChangeUserRole promotes or demotes a user
func AdminChangeUserRole(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Role != "USER" && reqData.Role != "ADMIN" {
		return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role must be USER or ADMIN!"})
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = reqData.Role
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error changing role for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role updated successfully!", user)
}
