package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ReviewerTTL is how long a remembered reviewer name stays valid.
const ReviewerTTL = 30 * 24 * time.Hour

// GenerateReviewerToken signs the reviewer's display name.
func GenerateReviewerToken(name string, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": name,
		"exp": now.Add(ReviewerTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseReviewerToken verifies tokenString and returns the reviewer name it carries.
func ParseReviewerToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	name, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.New("token has no subject")
	}
	return name, nil
}
