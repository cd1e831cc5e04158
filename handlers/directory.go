package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"admin-console/models"
	"admin-console/services"
)

// DirectoryHandlers serves the admin pages for categories, teams and users.
type DirectoryHandlers struct {
	client *services.Client
}

// NewDirectoryHandlers creates the directory handlers.
func NewDirectoryHandlers(client *services.Client) *DirectoryHandlers {
	return &DirectoryHandlers{client: client}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz kayıt numarası"})
		return 0, false
	}
	return id, true
}

// Categories

func (h *DirectoryHandlers) ListCategories(c *gin.Context) {
	categories, err := h.client.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Kategoriler yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *DirectoryHandlers) CreateCategory(c *gin.Context) {
	var payload models.CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	category, err := h.client.CreateCategory(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err, "Kategori oluşturulamadı")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *DirectoryHandlers) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload models.CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	category, err := h.client.UpdateCategory(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err, "Kategori güncellenemedi")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *DirectoryHandlers) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.client.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err, "Kategori silinemedi")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Kategori silindi"})
}

// Teams

func (h *DirectoryHandlers) ListTeams(c *gin.Context) {
	teams, err := h.client.Teams(c.Request.Context())
	if err != nil {
		respondError(c, err, "Ekipler yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *DirectoryHandlers) CreateTeam(c *gin.Context) {
	var payload models.TeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.client.CreateTeam(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err, "Ekip oluşturulamadı")
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *DirectoryHandlers) UpdateTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload models.TeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.client.UpdateTeam(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err, "Ekip güncellenemedi")
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *DirectoryHandlers) DeleteTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.client.DeleteTeam(c.Request.Context(), id); err != nil {
		respondError(c, err, "Ekip silinemedi")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Ekip silindi"})
}

// Users

func (h *DirectoryHandlers) ListUsers(c *gin.Context) {
	users, err := h.client.Users(c.Request.Context())
	if err != nil {
		respondError(c, err, "Kullanıcılar yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *DirectoryHandlers) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.client.User(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Kullanıcı yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *DirectoryHandlers) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.client.UpdateUser(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err, "Kullanıcı güncellenemedi")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *DirectoryHandlers) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.client.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err, "Kullanıcı silinemedi")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Kullanıcı silindi"})
}

func (h *DirectoryHandlers) SetUserRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.client.SetUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err, "Rol atanamadı")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *DirectoryHandlers) SetUserTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Team *int64 `json:"team"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.client.SetUserTeam(c.Request.Context(), id, req.Team)
	if err != nil {
		respondError(c, err, "Ekip atanamadı")
		return
	}
	c.JSON(http.StatusOK, user)
}
