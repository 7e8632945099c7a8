package auth

import (
	"net/http"

	"gamereviews/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName holds the signed reviewer name.
	CookieName = "reviewer"
	// ContextKey is where ReviewerMiddleware stores the remembered name.
	ContextKey = "reviewer"
)

// ReviewerMiddleware inspects the reviewer cookie and sets the reviewer name if
// the token is valid, but does not fail if the cookie is missing or invalid.
func ReviewerMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
			if name, err := jwt.ParseReviewerToken(raw, secret); err == nil {
				c.Set(ContextKey, name)
			}
		}
		c.Next()
	}
}

// Reviewer returns the remembered reviewer name, or "" when there is none.
func Reviewer(c *gin.Context) string {
	return c.GetString(ContextKey)
}

// RememberReviewer sets the signed reviewer cookie on the response.
func RememberReviewer(c *gin.Context, name string, secret []byte, secure bool) error {
	token, err := jwt.GenerateReviewerToken(name, secret)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(jwt.ReviewerTTL.Seconds()), "/", "", secure, true)
	return nil
}
