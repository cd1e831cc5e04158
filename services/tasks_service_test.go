package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-console/models"
)

func TestUpdateTaskStatusRoundTrip(t *testing.T) {
	var gotBody map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/reports/5/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(models.Report{
			ID:     5,
			Title:  "Sokak lambası arızalı",
			Status: models.StatusCozuldu,
		})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("access", "refresh"))
	tasks := NewTaskService(client)

	task, err := tasks.UpdateTaskStatus(context.Background(), 5, models.TaskTamamlandi)
	require.NoError(t, err)

	// The task status translates to the report status on the wire...
	assert.Equal(t, "COZULDU", gotBody["status"])
	assert.NotContains(t, gotBody, "assigned_team")
	// ...and the server's report status translates back to task space.
	assert.Equal(t, models.TaskTamamlandi, task.Status)
	assert.Equal(t, "Sokak lambası arızalı", task.ReportTitle)
}

func TestUpdateTaskStatusRejectsUnknownStatus(t *testing.T) {
	client := NewClient("http://backend.invalid", time.Second, newTestStore(t))
	tasks := NewTaskService(client)

	_, err := tasks.UpdateTaskStatus(context.Background(), 1, "YANLIS")
	require.Error(t, err, "unknown task status must fail before any network call")
}

func TestListTasksProjection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reports/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("tasks_only"))
		json.NewEncoder(w).Encode([]models.Report{
			{
				ID:           1,
				Title:        "Çöp konteyneri taşmış",
				Status:       models.StatusBeklemede,
				Reporter:     models.User{Username: "mehmet"},
				Category:     &models.Category{Name: "Temizlik"},
				AssignedTeam: &models.Team{Name: "Temizlik Ekibi"},
			},
			{
				ID:     2,
				Title:  "Park bankı kırık",
				Status: models.StatusReddedildi,
			},
		})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("access", "refresh"))
	tasks := NewTaskService(client)

	got, err := tasks.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.TaskAtandi, got[0].Status)
	assert.Equal(t, "Temizlik", got[0].CategoryName)
	require.NotNil(t, got[0].AssignedTeamName)
	assert.Equal(t, "Temizlik Ekibi", *got[0].AssignedTeamName)

	assert.Equal(t, models.TaskIptal, got[1].Status)
	assert.Nil(t, got[1].AssignedTeamName)
}

func TestAssignTaskTeamSendsExplicitNull(t *testing.T) {
	var rawBody json.RawMessage

	mux := http.NewServeMux()
	mux.HandleFunc("/reports/9/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		json.NewEncoder(w).Encode(models.Report{ID: 9, Status: models.StatusBeklemede})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("access", "refresh"))
	tasks := NewTaskService(client)

	_, err := tasks.AssignTaskTeam(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"assigned_team": null}`, string(rawBody))
}
