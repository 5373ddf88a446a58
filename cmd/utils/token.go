package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// GenerateJWT signs an HS256 access token whose subject is the user ID.
func GenerateJWT(userID uint, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   fmt.Sprint(userID),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("SECRET_KEY")))
	return signed, expiresAt, err
}

// GenerateRefreshToken builds an opaque token from a random ID tied to the
// user with an HMAC signature. It is validated by lookup against the stored
// copy, never parsed.
func GenerateRefreshToken(userID uint) (string, error) {
	id := uuid.New()

	mac := hmac.New(sha256.New, []byte(os.Getenv("SECRET_KEY")))
	mac.Write([]byte(fmt.Sprintf("%d", userID)))
	mac.Write(id[:])

	signature := mac.Sum(nil)
	return fmt.Sprintf("%d_%s_%x", userID, id.String(), signature), nil
}
