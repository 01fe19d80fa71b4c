package filesController

import (
	"academy/config"
	"academy/middleware"
	"academy/utils"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ServeSlip streams a payment slip after checking the link's expiry and HMAC.
// Slips never get a permanent public URL; admins fetch a fresh signed link
// each time they open one.
func ServeSlip(c *fiber.Ctx) error {
	path := c.Query("path")
	expires := c.Query("expires")
	sig := c.Query("sig")

	if path == "" || expires == "" || sig == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing signature parameters!", nil)
	}

	if !utils.VerifySlipSignature(path, expires, sig) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Link is invalid or has expired!", nil)
	}

	// Signed paths always point inside the slip directory
	slipRoot := filepath.Join(config.AppConfig.UploadDir, "slips")
	cleaned := filepath.Clean(path)
	if !strings.HasPrefix(cleaned, filepath.Clean(slipRoot)+string(filepath.Separator)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Link is invalid or has expired!", nil)
	}

	return c.SendFile(cleaned)
}
