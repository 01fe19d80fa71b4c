package utils

import (
	"academy/config"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under destDir with a
// timestamped, collision-free name and returns the path on disk
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + "-" + uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// SlipDir returns the payment-slip directory for a user
func SlipDir(userID uint) string {
	return filepath.Join(config.AppConfig.UploadDir, "slips", strconv.FormatUint(uint64(userID), 10))
}

// AvatarDir returns the avatar directory for a user
func AvatarDir(userID uint) string {
	return filepath.Join(config.AppConfig.UploadDir, "avatars", strconv.FormatUint(uint64(userID), 10))
}

func signPath(path string, expires int64) string {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.JWTKey))
	fmt.Fprintf(mac, "%s:%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedSlipURL builds a short-lived link to a stored payment slip. The
// expiry and signature travel as query parameters and are checked on fetch.
func SignedSlipURL(path string) string {
	expires := time.Now().Add(time.Duration(config.AppConfig.SlipURLTTL) * time.Second).Unix()
	return fmt.Sprintf("/files/slip?path=%s&expires=%d&sig=%s", path, expires, signPath(path, expires))
}

// VerifySlipSignature checks a signed slip link's expiry and HMAC
func VerifySlipSignature(path, expiresStr, sig string) bool {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil || time.Now().Unix() > expires {
		return false
	}
	expected := signPath(path, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}
