package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-console/models"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return store
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *SessionStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := newTestStore(t)
	client := NewClient(server.URL, 5*time.Second, store)
	return client, store, server
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Category{})
	}))
	require.NoError(t, store.SetTokens("access-1", "refresh-1"))

	_, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-1", gotAuth)
}

func TestRefreshRetriesOriginalRequestOnce(t *testing.T) {
	var refreshCalls, categoryCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-1", req.Refresh)
		json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
	})
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&categoryCalls, 1)
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
			return
		}
		json.NewEncoder(w).Encode([]models.Category{{ID: 1, Name: "Yol"}})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("expired", "refresh-1"))

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Yol", categories[0].Name)

	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls), "exactly one refresh call")
	assert.EqualValues(t, 2, atomic.LoadInt32(&categoryCalls), "original request plus one retry")

	access, refresh := store.Tokens()
	assert.Equal(t, "access-2", access, "new access token installed")
	assert.Equal(t, "refresh-1", refresh, "refresh token kept")
}

func TestRepeatedUnauthorizedDoesNotRefreshTwice(t *testing.T) {
	var refreshCalls, categoryCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
	})
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&categoryCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "still unauthorized"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("expired", "refresh-1"))

	_, err := client.Categories(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls), "no second refresh after one retry")
	assert.EqualValues(t, 2, atomic.LoadInt32(&categoryCalls), "no retry storm")
}

func TestNoRefreshTokenPropagatesOriginalError(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "unauthorized"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("expired", ""))

	_, err := client.Categories(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "unauthorized", apiErr.Detail)
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls), "refresh endpoint must not be called")
}

func TestRefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "refresh token expired"})
	})
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "unauthorized"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("expired", "dead-refresh"))

	_, err := client.Categories(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "refresh token expired", apiErr.Detail, "refresh error propagates, not the original")

	access, refresh := store.Tokens()
	assert.Empty(t, access, "forced sign-out clears access token")
	assert.Empty(t, refresh, "forced sign-out clears refresh token")
	assert.False(t, store.HasSession())
}

func TestLoginUnauthorizedDoesNotTriggerRefresh(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("whatever", "refresh-1"))

	_, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "wrong"})
	require.Error(t, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls), "login failures bypass the interceptor")
}

func TestAPIErrorDecoding(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail field", http.StatusForbidden, `{"detail": "permission denied"}`, "permission denied"},
		{"error field", http.StatusBadRequest, `{"error": "bad input"}`, "bad input"},
		{"validation map", http.StatusBadRequest, `{"title": ["Bu alan zorunludur."]}`, "title: Bu alan zorunludur."},
		{"plain text", http.StatusBadGateway, `upstream down`, "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.Teams(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestCreateReportMultipart(t *testing.T) {
	var gotContentType, gotTitle, gotCategory, gotLat string
	var gotMedia []byte

	mux := http.NewServeMux()
	mux.HandleFunc("/reports/", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotTitle = r.FormValue("title")
		gotCategory = r.FormValue("category")
		gotLat = r.FormValue("latitude")

		file, _, err := r.FormFile("media_files")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotMedia = buf[:n]

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Report{ID: 7, Title: gotTitle})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("access", "refresh"))

	lat := 41.0082
	report, err := client.CreateReport(context.Background(), CreateReportInput{
		Title:       "Çukur var",
		Description: "Yolda büyük çukur",
		CategoryID:  3,
		Latitude:    &lat,
		MediaFiles: []MediaUpload{
			{Filename: "photo.jpg", ContentType: "image/jpeg", Content: []byte{0xFF, 0xD8, 0xFF}},
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, report.ID)

	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, "Çukur var", gotTitle)
	assert.Equal(t, "3", gotCategory)
	assert.Equal(t, "41.0082", gotLat)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, gotMedia)
}
