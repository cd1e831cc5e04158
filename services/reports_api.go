package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"admin-console/models"
)

// ReportScope restricts which reports the backend returns for the caller.
type ReportScope string

const (
	ScopeAll      ReportScope = "all"
	ScopeMine     ReportScope = "mine"
	ScopeAssigned ReportScope = "assigned"
)

// Reports returns the report list for the given scope. An empty scope lets
// the backend apply its role default. tasksOnly asks for the task-view subset.
func (c *Client) Reports(ctx context.Context, scope ReportScope, tasksOnly bool) ([]models.Report, error) {
	query := url.Values{}
	if scope != "" {
		query.Set("scope", string(scope))
	}
	if tasksOnly {
		query.Set("tasks_only", "true")
	}

	var reports []models.Report
	err := c.getJSON(ctx, "/reports/", query, &reports)
	return reports, err
}

// Report returns the detail view of a single report.
func (c *Client) Report(ctx context.Context, id int64) (models.ReportDetail, error) {
	var detail models.ReportDetail
	err := c.getJSON(ctx, fmt.Sprintf("/reports/%d/", id), nil, &detail)
	return detail, err
}

// MediaUpload is one photo attached to a new report.
type MediaUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// CreateReportInput is the multipart payload for report creation. Only the
// first media file is sent, matching the single-photo submission flow.
type CreateReportInput struct {
	Title       string
	Description string
	CategoryID  int64
	Location    string
	Latitude    *float64
	Longitude   *float64
	MediaFiles  []MediaUpload
}

// CreateReport submits a new report as multipart/form-data.
func (c *Client) CreateReport(ctx context.Context, input CreateReportInput) (models.Report, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"category":    strconv.FormatInt(input.CategoryID, 10),
	}
	if input.Location != "" {
		fields["location"] = input.Location
	}
	if input.Latitude != nil {
		fields["latitude"] = strconv.FormatFloat(*input.Latitude, 'f', -1, 64)
	}
	if input.Longitude != nil {
		fields["longitude"] = strconv.FormatFloat(*input.Longitude, 'f', -1, 64)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return models.Report{}, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if len(input.MediaFiles) > 0 {
		media := input.MediaFiles[0]
		part, err := w.CreateFormFile("media_files", media.Filename)
		if err != nil {
			return models.Report{}, fmt.Errorf("failed to create media part: %w", err)
		}
		if _, err := part.Write(media.Content); err != nil {
			return models.Report{}, fmt.Errorf("failed to write media content: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return models.Report{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var report models.Report
	err := c.do(ctx, &apiRequest{
		method:      http.MethodPost,
		path:        "/reports/",
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	}, &report)
	return report, err
}

// ReportUpdate is the partial update payload for a report. SetTeam controls
// whether assigned_team is included, so the team can be cleared with an
// explicit null.
type ReportUpdate struct {
	Status       *models.ReportStatus
	AssignedTeam *int64
	SetTeam      bool
}

func (u ReportUpdate) payload() map[string]any {
	payload := map[string]any{}
	if u.Status != nil {
		payload["status"] = *u.Status
	}
	if u.SetTeam {
		payload["assigned_team"] = u.AssignedTeam
	}
	return payload
}

// UpdateReport patches a report's status and/or team assignment.
func (c *Client) UpdateReport(ctx context.Context, id int64, update ReportUpdate) (models.Report, error) {
	var report models.Report
	err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/reports/%d/", id), update.payload(), &report)
	return report, err
}

// Comments returns the comments of a report.
func (c *Client) Comments(ctx context.Context, reportID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.getJSON(ctx, fmt.Sprintf("/reports/%d/comments/", reportID), nil, &comments)
	return comments, err
}

// AddComment appends a comment to a report.
func (c *Client) AddComment(ctx context.Context, reportID int64, content string) (models.Comment, error) {
	var comment models.Comment
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/reports/%d/comments/", reportID),
		map[string]string{"content": content}, &comment)
	return comment, err
}
