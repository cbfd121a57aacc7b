package authUtils

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL bounds the JWT expiry and the auth_token cookie lifetime; the
// two must stay in sync or the cookie outlives (or undercuts) the session.
const TokenTTL = 72 * time.Hour

// GenerateAndSetToken generates a signed JWT for the given user ID
func GenerateAndSetToken(userID string) (string, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretStr))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
