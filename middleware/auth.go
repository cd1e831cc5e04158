package middleware

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"admin-console/models"
	"admin-console/services"
)

// SessionRequired guards console routes: without a stored session the
// browser is sent back to login with a 401. When the access token is a
// parsable JWT that has expired and no refresh token remains, the dead
// session is cleared up front instead of failing on the first backend call.
func SessionRequired(store *services.SessionStore) gin.HandlerFunc {
	parser := jwt.NewParser()

	return func(c *gin.Context) {
		access, refresh := store.Tokens()
		if access == "" && refresh == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Oturum bulunamadı, lütfen giriş yapın"})
			c.Abort()
			return
		}

		if access != "" && refresh == "" {
			claims := jwt.MapClaims{}
			if _, _, err := parser.ParseUnverified(access, claims); err == nil {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
					if clearErr := store.Clear(); clearErr != nil {
						log.WithError(clearErr).Error("failed to clear session")
					}
					c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Oturum süresi doldu, lütfen tekrar giriş yapın"})
					c.Abort()
					return
				}
			}
		}

		c.Next()
	}
}
