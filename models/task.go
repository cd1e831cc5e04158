package models

import "fmt"

// TaskStatus is the task-view relabeling of a report status. Tasks are not a
// separate backend resource; the mapping below is a total bijection over the
// four report statuses and must round-trip exactly.
type TaskStatus string

const (
	TaskAtandi      TaskStatus = "ATANDI"
	TaskDevamEdiyor TaskStatus = "DEVAM_EDIYOR"
	TaskTamamlandi  TaskStatus = "TAMAMLANDI"
	TaskIptal       TaskStatus = "IPTAL"
)

var reportToTaskStatus = map[ReportStatus]TaskStatus{
	StatusBeklemede:   TaskAtandi,
	StatusInceleniyor: TaskDevamEdiyor,
	StatusCozuldu:     TaskTamamlandi,
	StatusReddedildi:  TaskIptal,
}

var taskToReportStatus = map[TaskStatus]ReportStatus{
	TaskAtandi:      StatusBeklemede,
	TaskDevamEdiyor: StatusInceleniyor,
	TaskTamamlandi:  StatusCozuldu,
	TaskIptal:       StatusReddedildi,
}

// ToTaskStatus maps a report status into task space.
func ToTaskStatus(s ReportStatus) (TaskStatus, error) {
	ts, ok := reportToTaskStatus[s]
	if !ok {
		return "", fmt.Errorf("unknown report status %q", s)
	}
	return ts, nil
}

// ToReportStatus maps a task status back to the underlying report status.
func ToReportStatus(s TaskStatus) (ReportStatus, error) {
	rs, ok := taskToReportStatus[s]
	if !ok {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return rs, nil
}

// Task is the task-view projection of a report.
type Task struct {
	ID               int64      `json:"id"`
	ReportTitle      string     `json:"report_title"`
	CategoryName     string     `json:"category_name,omitempty"`
	ReporterName     string     `json:"reporter_name,omitempty"`
	AssignedTeamName *string    `json:"assigned_team_name"`
	Status           TaskStatus `json:"status"`
}

// ProjectTask builds the task-view row for a report.
func ProjectTask(r Report) (Task, error) {
	status, err := ToTaskStatus(r.Status)
	if err != nil {
		return Task{}, err
	}
	t := Task{
		ID:          r.ID,
		ReportTitle: r.Title,
		Status:      status,
	}
	if r.Category != nil {
		t.CategoryName = r.Category.Name
	}
	if r.Reporter.Username != "" {
		t.ReporterName = r.Reporter.Username
	} else {
		t.ReporterName = r.Reporter.Email
	}
	if r.AssignedTeam != nil {
		t.AssignedTeamName = &r.AssignedTeam.Name
	}
	return t, nil
}
