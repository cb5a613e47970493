// Copyright (c) 2026 Residents Book. All rights reserved.

// Package respond provides HTTP response helpers used by all handlers.
//
// # Architecture
//
// JSON responses follow the envelope of the Residents REST API,
// `{"success": bool, "message": string, "data": any}`, so the stub API and
// the operational endpoints of the web front end read the same way as the
// real upstream. HTML pages are rendered into a buffer first, so a template
// failure never produces a half-written page.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
)

// Envelope is the JSON body shape of every response.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Code    string              `json:"code,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Data: data})
}

// Status writes data in the success envelope with an explicit status code.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, Envelope{Success: statusCode < 400, Data: data})
}

// Created writes a 201 Created response with a message and data.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error converts any Go error into the failure envelope.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := Log(request, err)

	JSON(writer, appError.HTTPStatus, Envelope{
		Success: false,
		Message: appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// Log resolves err to an [*apperr.AppError] and logs it when it is a
// server-side failure. Unknown errors become INTERNAL_ERROR.
func Log(request *http.Request, err error) *apperr.AppError {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "server_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	return appError
}

// HTML executes the named template into a buffer and writes it with status.
// A template failure is logged and answered with a plain 500.
func HTML(writer http.ResponseWriter, request *http.Request, statusCode int, templates *template.Template, name string, data any) {
	var page bytes.Buffer
	if err := templates.ExecuteTemplate(&page, name, data); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = page.WriteTo(writer)
}
