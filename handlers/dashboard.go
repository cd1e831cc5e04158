package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"admin-console/services"
)

// DashboardHandlers serves the derived-metrics dashboard.
type DashboardHandlers struct {
	client *services.Client
}

// NewDashboardHandlers creates the dashboard handlers.
func NewDashboardHandlers(client *services.Client) *DashboardHandlers {
	return &DashboardHandlers{client: client}
}

// Metrics fetches the report list for the requested scope and computes the
// full metrics record for the requested window.
func (h *DashboardHandlers) Metrics(c *gin.Context) {
	window := services.Window(c.DefaultQuery("window", "30"))
	switch window {
	case services.Window7, services.Window30, services.Window90, services.WindowAll:
	default:
		window = services.Window30
	}

	scope := services.ReportScope(c.Query("scope"))
	if scope == services.ScopeAll {
		// The backend treats a missing scope as the role default; "all" is
		// only meaningful for staff and matches the SPA behavior.
		scope = ""
	}

	reports, err := h.client.Reports(c.Request.Context(), scope, false)
	if err != nil {
		respondError(c, err, "İstatistikler yüklenemedi")
		return
	}

	metrics := services.ComputeMetrics(reports, window, time.Now())
	c.JSON(http.StatusOK, metrics)
}
