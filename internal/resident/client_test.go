// Copyright (c) 2026 Residents Book. All rights reserved.

package resident_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/resident"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"success": status < 300,
		"message": message,
		"data":    data,
	}))
}

func newClient(t *testing.T, handler http.HandlerFunc) *resident.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := resident.NewClient(server.URL + "/api/")
	require.NoError(t, err)
	return client
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	_, err := resident.NewClient("ftp://example.com")
	assert.Error(t, err)

	_, err = resident.NewClient("::not a url")
	assert.Error(t, err)
}

func TestClient_List(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/residents", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))

		writeEnvelope(t, w, http.StatusOK, "ok", map[string]any{
			"residents": []map[string]any{
				{"_id": "r1", "firstName": "Ada", "lastName": "Lovelace", "title": "Analyst", "createdAt": "2024-01-02T03:04:05Z", "updatedAt": "2024-01-02T03:04:05Z"},
				{"_id": "r2", "firstName": "Alan", "lastName": "Turing", "title": "Mathematician", "twitter": "https://x.com/alan", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"},
			},
			"pagination": map[string]any{"currentPage": 1, "totalPages": 1, "totalResidents": 2, "hasNextPage": false, "hasPrevPage": false},
		})
	})

	result, err := client.List(context.Background(), 1, 1000)
	require.NoError(t, err)
	require.Len(t, result.Residents, 2)
	assert.Equal(t, "r1", result.Residents[0].ID)
	assert.Equal(t, "Ada Lovelace", result.Residents[0].FullName())
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), result.Residents[0].CreatedAt)
	assert.Equal(t, "https://x.com/alan", result.Residents[1].Twitter)
	assert.Equal(t, 2, result.Pagination.TotalResidents)
}

func TestClient_List_ServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := client.List(context.Background(), 1, 20)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeServer))
}

func TestClient_List_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := resident.NewClient(baseURL)
	require.NoError(t, err)

	_, err = client.List(context.Background(), 1, 20)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNetwork))
}

func TestClient_Get(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/residents/r1":
			writeEnvelope(t, w, http.StatusOK, "found", map[string]any{
				"resident": map[string]any{"_id": "r1", "firstName": "Ada", "lastName": "Lovelace", "title": "Analyst"},
			})
		default:
			writeEnvelope(t, w, http.StatusNotFound, "Resident not found", nil)
		}
	})

	found, err := client.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.FirstName)

	_, err = client.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestClient_Get_EscapesID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/residents/a%2Fb", r.URL.EscapedPath())
		writeEnvelope(t, w, http.StatusNotFound, "", nil)
	})

	_, err := client.Get(context.Background(), "a/b")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestClient_Create_Multipart(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Ada", r.FormValue("firstName"))
		assert.Equal(t, "Lovelace", r.FormValue("lastName"))
		assert.Equal(t, "Analyst", r.FormValue("title"))
		assert.Equal(t, "https://linkedin.com/in/ada", r.FormValue("linkedIn"))
		assert.Equal(t, "", r.FormValue("twitter"))

		file, header, err := r.FormFile("profileImage")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "ada.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-bytes"), data)

		writeEnvelope(t, w, http.StatusCreated, "Resident created", map[string]any{
			"resident": map[string]any{"_id": "new", "firstName": "Ada", "lastName": "Lovelace", "title": "Analyst", "profileImage": "http://img/ada.png"},
		})
	})

	created, err := client.Create(context.Background(), resident.CreateInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Title:        "Analyst",
		LinkedIn:     "https://linkedin.com/in/ada",
		ProfileImage: &resident.Image{Filename: "ada.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, "http://img/ada.png", created.ProfileImage)
}

func TestClient_Create_WithoutImage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("profileImage")
		assert.ErrorIs(t, err, http.ErrMissingFile)

		writeEnvelope(t, w, http.StatusCreated, "Resident created", map[string]any{
			"resident": map[string]any{"_id": "new", "firstName": "Ada"},
		})
	})

	_, err := client.Create(context.Background(), resident.CreateInput{FirstName: "Ada", LastName: "L", Title: "T"})
	require.NoError(t, err)
}

func TestClient_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		wantCode string
		wantMsg  string
	}{
		{"validation_with_message", http.StatusBadRequest, "Title is too long", apperr.CodeValidation, "Title is too long"},
		{"server_with_message", http.StatusInternalServerError, "Upload failed", apperr.CodeServer, "Upload failed"},
		{"server_without_message", http.StatusInternalServerError, "", apperr.CodeServer, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, tt.message, nil)
			})

			_, err := client.Create(context.Background(), resident.CreateInput{FirstName: "A", LastName: "B", Title: "C"})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}
