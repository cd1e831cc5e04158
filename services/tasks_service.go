package services

import (
	"context"
	"fmt"

	"admin-console/models"
)

// TaskService exposes the task view: reports relabeled into task space. Tasks
// are not a backend resource, so every operation translates statuses at the
// boundary in both directions.
type TaskService struct {
	client *Client
}

// NewTaskService creates a task service on top of the backend client.
func NewTaskService(client *Client) *TaskService {
	return &TaskService{client: client}
}

// ListTasks fetches the task-view reports and projects them into task rows.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	reports, err := s.client.Reports(ctx, "", true)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(reports))
	for _, r := range reports {
		task, err := models.ProjectTask(r)
		if err != nil {
			return nil, fmt.Errorf("failed to project report %d: %w", r.ID, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// UpdateTaskStatus translates the task status to its report status, patches
// the report, and maps the server's answer back. The round trip reproduces
// the requested task status when the server accepts the transition.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id int64, status models.TaskStatus) (models.Task, error) {
	reportStatus, err := models.ToReportStatus(status)
	if err != nil {
		return models.Task{}, err
	}

	updated, err := s.client.UpdateReport(ctx, id, ReportUpdate{Status: &reportStatus})
	if err != nil {
		return models.Task{}, err
	}
	return models.ProjectTask(updated)
}

// AssignTaskTeam changes the team assignment of the underlying report; a nil
// team clears it.
func (s *TaskService) AssignTaskTeam(ctx context.Context, id int64, team *int64) (models.Task, error) {
	updated, err := s.client.UpdateReport(ctx, id, ReportUpdate{AssignedTeam: team, SetTeam: true})
	if err != nil {
		return models.Task{}, err
	}
	return models.ProjectTask(updated)
}
