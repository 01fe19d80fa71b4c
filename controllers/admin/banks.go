package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type bankPayload struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Branch        string `json:"branch"`
	IsActive      *bool  `json:"is_active"`
	DisplayOrder  *int   `json:"display_order"`
}

// AdminCreateBankAccount adds a bank account to show on the payment step
func AdminCreateBankAccount(c *fiber.Ctx) error {
	reqData := new(bankPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if strings.TrimSpace(reqData.BankName) == "" || strings.TrimSpace(reqData.AccountName) == "" ||
		strings.TrimSpace(reqData.AccountNumber) == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"account": "bank_name, account_name and account_number are required!",
		})
	}

	account := models.BankAccount{
		BankName:      reqData.BankName,
		AccountName:   reqData.AccountName,
		AccountNumber: reqData.AccountNumber,
		Branch:        reqData.Branch,
		IsActive:      true,
	}
	if reqData.IsActive != nil {
		account.IsActive = *reqData.IsActive
	}
	if reqData.DisplayOrder != nil {
		account.DisplayOrder = *reqData.DisplayOrder
	}

	if err := database.Database.Db.Create(&account).Error; err != nil {
		log.Printf("Error creating bank account: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create bank account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bank account created successfully!", account)
}

// AdminListBankAccounts lists every account, active or not
func AdminListBankAccounts(c *fiber.Ctx) error {
	var accounts []models.BankAccount
	if err := database.Database.Db.Order("display_order asc").Find(&accounts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank accounts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank accounts fetched successfully!", accounts)
}

// AdminUpdateBankAccount updates account details or toggles visibility
func AdminUpdateBankAccount(c *fiber.Ctx) error {
	accountID := c.Locals("bankAccountID").(uint)

	reqData := new(bankPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var account models.BankAccount
	if err := database.Database.Db.Where("id = ?", accountID).First(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
	}

	if reqData.BankName != "" {
		account.BankName = reqData.BankName
	}
	if reqData.AccountName != "" {
		account.AccountName = reqData.AccountName
	}
	if reqData.AccountNumber != "" {
		account.AccountNumber = reqData.AccountNumber
	}
	if reqData.Branch != "" {
		account.Branch = reqData.Branch
	}
	if reqData.IsActive != nil {
		account.IsActive = *reqData.IsActive
	}
	if reqData.DisplayOrder != nil {
		account.DisplayOrder = *reqData.DisplayOrder
	}

	if err := database.Database.Db.Save(&account).Error; err != nil {
		log.Printf("Error updating bank account %d: %v", accountID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update bank account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank account updated successfully!", account)
}

// AdminDeleteBankAccount removes an account from the list
func AdminDeleteBankAccount(c *fiber.Ctx) error {
	accountID := c.Locals("bankAccountID").(uint)

	var account models.BankAccount
	if err := database.Database.Db.Where("id = ?", accountID).First(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
	}

	if err := database.Database.Db.Delete(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete bank account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank account deleted successfully!", nil)
}
