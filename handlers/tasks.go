package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"admin-console/models"
	"admin-console/services"
)

// TaskHandlers serves the task view.
type TaskHandlers struct {
	tasks *services.TaskService
}

// NewTaskHandlers creates the task handlers.
func NewTaskHandlers(tasks *services.TaskService) *TaskHandlers {
	return &TaskHandlers{tasks: tasks}
}

// List returns the task rows, optionally filtered by the task page's
// free-text search over title, category and reporter.
func (h *TaskHandlers) List(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, "Görevler yüklenemedi")
		return
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.ReportTitle), q) ||
				strings.Contains(strings.ToLower(t.CategoryName), q) ||
				strings.Contains(strings.ToLower(t.ReporterName), q) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateStatus changes a task's status through the report projection.
func (h *TaskHandlers) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz görev numarası"})
		return
	}

	var req struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if _, mapErr := models.ToReportStatus(req.Status); mapErr != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz görev durumu"})
			return
		}
		respondError(c, err, "Durum güncellenemedi")
		return
	}
	c.JSON(http.StatusOK, task)
}

// AssignTeam changes a task's team assignment; null clears it.
func (h *TaskHandlers) AssignTeam(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Geçersiz görev numarası"})
		return
	}

	var req struct {
		Team *int64 `json:"team"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.tasks.AssignTaskTeam(c.Request.Context(), id, req.Team)
	if err != nil {
		respondError(c, err, "Ekip ataması yapılamadı")
		return
	}
	c.JSON(http.StatusOK, task)
}
