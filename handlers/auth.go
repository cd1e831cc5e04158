package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"admin-console/models"
	"admin-console/services"
)

// AuthHandlers serves login, logout, registration and profile routes.
type AuthHandlers struct {
	client   *services.Client
	sessions *services.SessionStore
}

// NewAuthHandlers creates the auth handlers.
func NewAuthHandlers(client *services.Client, sessions *services.SessionStore) *AuthHandlers {
	return &AuthHandlers{client: client, sessions: sessions}
}

// Login authenticates against the backend and installs the issued token pair
// into the session store.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	pair, err := h.client.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Giriş yapılamadı")
		return
	}

	if err := h.sessions.SetTokens(pair.Access, pair.Refresh); err != nil {
		log.WithError(err).Error("failed to persist session")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Oturum kaydedilemedi"})
		return
	}

	user, err := h.client.Me(c.Request.Context())
	if err != nil {
		// Tokens are installed; the profile fetch failing is not fatal.
		log.WithError(err).Warn("profile fetch after login failed")
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Giriş başarılı"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout clears the stored session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.sessions.Clear(); err != nil {
		log.WithError(err).Error("failed to clear session")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Oturum kapatılamadı"})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Çıkış yapıldı"})
}

// Register forwards account creation to the backend.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.client.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Kayıt oluşturulamadı")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me returns the signed-in user's profile.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, err := h.client.Me(c.Request.Context())
	if err != nil {
		respondError(c, err, "Profil yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe patches the signed-in user's profile.
func (h *AuthHandlers) UpdateMe(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.client.UpdateMe(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Profil güncellenemedi")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword changes the signed-in user's password.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.client.ChangePassword(c.Request.Context(), req); err != nil {
		respondError(c, err, "Şifre değiştirilemedi")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Şifre güncellendi"})
}
