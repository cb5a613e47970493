// Copyright (c) 2026 Residents Book. All rights reserved.

package respond

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestCreated(t *testing.T) {
	recorder := httptest.NewRecorder()
	Created(recorder, "Resident created successfully", map[string]string{"id": "r1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Resident created successfully", body["message"])
	assert.Equal(t, map[string]any{"id": "r1"}, body["data"])
}

func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(recorder, request, apperr.ValidationError("First name is required",
		apperr.FieldError{Field: "firstName", Message: "First name is required"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "First name is required", body["message"])
	assert.Equal(t, apperr.CodeValidation, body["code"])
	assert.Len(t, body["details"], 1)
}

func TestError_UnknownErrorIsHidden(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(recorder, request, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.NotContains(t, recorder.Body.String(), "pq:")
}

func TestHTML(t *testing.T) {
	templates := template.Must(template.New("page").Parse(`<p>{{.}}</p>`))
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	recorder := httptest.NewRecorder()
	HTML(recorder, request, http.StatusOK, templates, "page", "<b>")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "<p>&lt;b&gt;</p>", recorder.Body.String())
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")

	recorder = httptest.NewRecorder()
	HTML(recorder, request, http.StatusOK, templates, "missing", nil)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
