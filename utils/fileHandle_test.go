package utils

import (
	"academy/config"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     "test-secret",
		UploadDir:  t.TempDir(),
		SlipURLTTL: 300,
	}
}

func TestSignedSlipURLRoundTrip(t *testing.T) {
	setTestConfig(t)

	path := SlipDir(42) + "/1693000000-abc.jpg"
	signed := SignedSlipURL(path)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "/files/slip", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, path, q.Get("path"))
	assert.True(t, VerifySlipSignature(q.Get("path"), q.Get("expires"), q.Get("sig")))
}

func TestVerifySlipSignatureRejectsTampering(t *testing.T) {
	setTestConfig(t)

	path := SlipDir(42) + "/1693000000-abc.jpg"
	signed := SignedSlipURL(path)
	q, err := url.Parse(signed)
	require.NoError(t, err)
	params := q.Query()

	// Swapping the path invalidates the signature
	other := SlipDir(7) + "/secret.jpg"
	assert.False(t, VerifySlipSignature(other, params.Get("expires"), params.Get("sig")))

	// So does stretching the expiry
	later := strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)
	assert.False(t, VerifySlipSignature(path, later, params.Get("sig")))

	// And a garbage signature
	assert.False(t, VerifySlipSignature(path, params.Get("expires"), "deadbeef"))
}

func TestVerifySlipSignatureRejectsExpired(t *testing.T) {
	setTestConfig(t)
	config.AppConfig.SlipURLTTL = -10

	path := SlipDir(42) + "/1693000000-abc.jpg"
	signed := SignedSlipURL(path)
	q, err := url.Parse(signed)
	require.NoError(t, err)
	params := q.Query()

	// Signature is genuine but the link is already past its expiry
	assert.False(t, VerifySlipSignature(params.Get("path"), params.Get("expires"), params.Get("sig")))
}

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.Equal(t, "", strings.Trim(code, "0123456789"))
		seen[code] = true
	}
	// 50 draws from a million-code space should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestOTPMessage(t *testing.T) {
	config.AppConfig = &config.Config{AppName: "IO Builds Academy"}

	msg := OTPMessage("registration", "123456")
	assert.Contains(t, msg, "123456")
	assert.Contains(t, msg, "IO Builds Academy")
}
