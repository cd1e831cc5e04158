package handlers

import (
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"admin-console/models"
	"admin-console/services"
)

// respondError translates a backend client error into the console's error
// taxonomy: 401 surfaced as a session problem, 403 as an authorization
// message, 4xx validation detail verbatim, everything else generic.
func respondError(c *gin.Context, err error, fallback string) {
	var apiErr *services.APIError
	if !errors.As(err, &apiErr) {
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: fallback})
		return
	}

	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Oturum geçersiz, lütfen tekrar giriş yapın"})
	case apiErr.StatusCode == http.StatusForbidden:
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Bu işlem için yetkiniz yok"})
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.Detail != "":
		c.JSON(apiErr.StatusCode, models.ErrorResponse{Error: apiErr.Detail})
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		c.JSON(apiErr.StatusCode, models.ErrorResponse{Error: fallback})
	default:
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: fallback})
	}
}
