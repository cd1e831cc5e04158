package handlers

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"admin-console/models"
	"admin-console/services"
)

// ReportHandlers serves the report list, detail, creation and comment pages.
type ReportHandlers struct {
	client *services.Client
}

// NewReportHandlers creates the report handlers.
func NewReportHandlers(client *services.Client) *ReportHandlers {
	return &ReportHandlers{client: client}
}

// List returns reports for the requested scope, with the list page's
// client-side search, status/priority filters and creation-time sort applied
// over the fetched set.
func (h *ReportHandlers) List(c *gin.Context) {
	scope := services.ReportScope(c.Query("scope"))
	if scope == services.ScopeAll {
		scope = ""
	}

	reports, err := h.client.Reports(c.Request.Context(), scope, false)
	if err != nil {
		respondError(c, err, "Bildirimler yüklenemedi")
		return
	}

	reports = filterReports(reports,
		c.Query("q"),
		models.ReportStatus(c.Query("status")),
		models.Priority(c.Query("priority")))

	if c.DefaultQuery("order", "desc") == "asc" {
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].CreatedAt.Before(reports[j].CreatedAt)
		})
	} else {
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		})
	}

	c.JSON(http.StatusOK, reports)
}

// filterReports applies the list page's free-text and enum filters.
func filterReports(reports []models.Report, query string, status models.ReportStatus, priority models.Priority) []models.Report {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" && status == "" && priority == "" {
		return reports
	}

	filtered := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if status != "" && r.Status != status {
			continue
		}
		if priority != "" && r.Priority != priority {
			continue
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesQuery(r models.Report, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	if r.Category != nil && strings.Contains(strings.ToLower(r.Category.Name), q) {
		return true
	}
	reporter := r.Reporter.Username
	if reporter == "" {
		reporter = r.Reporter.Email
	}
	return strings.Contains(strings.ToLower(reporter), q)
}

// Detail returns a single report with media and comments.
func (h *ReportHandlers) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz bildirim numarası"})
		return
	}

	detail, err := h.client.Report(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Bildirim yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create accepts the browser's multipart form and forwards it to the backend.
func (h *ReportHandlers) Create(c *gin.Context) {
	input := services.CreateReportInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
	}

	categoryID, err := strconv.ParseInt(c.PostForm("category"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Kategori seçimi zorunludur"})
		return
	}
	input.CategoryID = categoryID

	if raw := c.PostForm("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz enlem değeri"})
			return
		}
		input.Latitude = &lat
	}
	if raw := c.PostForm("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz boylam değeri"})
			return
		}
		input.Longitude = &lng
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fileHeader := range form.File["media_files"] {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Fotoğraf okunamadı"})
				return
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Fotoğraf okunamadı"})
				return
			}
			input.MediaFiles = append(input.MediaFiles, services.MediaUpload{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}

	report, err := h.client.CreateReport(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Bildirim oluşturulamadı")
		return
	}
	c.JSON(http.StatusCreated, report)
}

type reportUpdateRequest struct {
	Status       *models.ReportStatus `json:"status"`
	AssignedTeam *int64               `json:"assigned_team"`
	ClearTeam    bool                 `json:"clear_team"`
}

// Update patches a report's status and/or team assignment.
func (h *ReportHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz bildirim numarası"})
		return
	}

	var req reportUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	update := services.ReportUpdate{Status: req.Status}
	if req.AssignedTeam != nil || req.ClearTeam {
		update.AssignedTeam = req.AssignedTeam
		update.SetTeam = true
	}

	report, err := h.client.UpdateReport(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err, "Bildirim güncellenemedi")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Comments lists the comments of a report.
func (h *ReportHandlers) Comments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz bildirim numarası"})
		return
	}

	comments, err := h.client.Comments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Yorumlar yüklenemedi")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment appends a comment to a report.
func (h *ReportHandlers) AddComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz bildirim numarası"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.client.AddComment(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, err, "Yorum eklenemedi")
		return
	}
	c.JSON(http.StatusCreated, comment)
}
