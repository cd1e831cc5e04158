package models

import "testing"

func TestStatusMappingRoundTrip(t *testing.T) {
	reportStatuses := []ReportStatus{StatusBeklemede, StatusInceleniyor, StatusCozuldu, StatusReddedildi}

	for _, rs := range reportStatuses {
		ts, err := ToTaskStatus(rs)
		if err != nil {
			t.Fatalf("ToTaskStatus(%s) returned error: %v", rs, err)
		}
		back, err := ToReportStatus(ts)
		if err != nil {
			t.Fatalf("ToReportStatus(%s) returned error: %v", ts, err)
		}
		if back != rs {
			t.Errorf("round trip %s -> %s -> %s, want %s", rs, ts, back, rs)
		}
	}

	taskStatuses := []TaskStatus{TaskAtandi, TaskDevamEdiyor, TaskTamamlandi, TaskIptal}
	for _, ts := range taskStatuses {
		rs, err := ToReportStatus(ts)
		if err != nil {
			t.Fatalf("ToReportStatus(%s) returned error: %v", ts, err)
		}
		back, err := ToTaskStatus(rs)
		if err != nil {
			t.Fatalf("ToTaskStatus(%s) returned error: %v", rs, err)
		}
		if back != ts {
			t.Errorf("round trip %s -> %s -> %s, want %s", ts, rs, back, ts)
		}
	}
}

func TestStatusMappingPairs(t *testing.T) {
	tests := []struct {
		report ReportStatus
		task   TaskStatus
	}{
		{StatusBeklemede, TaskAtandi},
		{StatusInceleniyor, TaskDevamEdiyor},
		{StatusCozuldu, TaskTamamlandi},
		{StatusReddedildi, TaskIptal},
	}

	for _, tt := range tests {
		got, err := ToTaskStatus(tt.report)
		if err != nil {
			t.Fatalf("ToTaskStatus(%s): %v", tt.report, err)
		}
		if got != tt.task {
			t.Errorf("ToTaskStatus(%s) = %s, want %s", tt.report, got, tt.task)
		}
	}
}

func TestStatusMappingUnknownValues(t *testing.T) {
	if _, err := ToTaskStatus("BILINMIYOR"); err == nil {
		t.Error("expected error for unknown report status")
	}
	if _, err := ToReportStatus("BILINMIYOR"); err == nil {
		t.Error("expected error for unknown task status")
	}
}

func TestProjectTask(t *testing.T) {
	teamName := "Saha Ekibi 1"
	r := Report{
		ID:       42,
		Title:    "Kaldırım çökmüş",
		Status:   StatusInceleniyor,
		Reporter: User{Username: "ayse", Email: "ayse@example.com"},
		Category: &Category{Name: "Yol"},
		AssignedTeam: &Team{
			Name: teamName,
		},
	}

	task, err := ProjectTask(r)
	if err != nil {
		t.Fatalf("ProjectTask returned error: %v", err)
	}
	if task.ID != 42 || task.ReportTitle != "Kaldırım çökmüş" {
		t.Errorf("unexpected projection: %+v", task)
	}
	if task.Status != TaskDevamEdiyor {
		t.Errorf("status = %s, want %s", task.Status, TaskDevamEdiyor)
	}
	if task.AssignedTeamName == nil || *task.AssignedTeamName != teamName {
		t.Errorf("assigned team name = %v, want %s", task.AssignedTeamName, teamName)
	}
	if task.ReporterName != "ayse" {
		t.Errorf("reporter name = %s, want ayse", task.ReporterName)
	}
}

func TestProjectTaskFallsBackToEmail(t *testing.T) {
	r := Report{Status: StatusBeklemede, Reporter: User{Email: "citizen@example.com"}}
	task, err := ProjectTask(r)
	if err != nil {
		t.Fatalf("ProjectTask returned error: %v", err)
	}
	if task.ReporterName != "citizen@example.com" {
		t.Errorf("reporter name = %s, want email fallback", task.ReporterName)
	}
	if task.AssignedTeamName != nil {
		t.Errorf("assigned team name = %v, want nil", task.AssignedTeamName)
	}
}
