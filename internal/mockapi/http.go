// Copyright (c) 2026 Residents Book. All rights reserved.

package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
	requestutil "github.com/Abhay4510/residents-book/internal/platform/request"
	"github.com/Abhay4510/residents-book/internal/platform/respond"
	"github.com/Abhay4510/residents-book/internal/platform/validate"
	"github.com/Abhay4510/residents-book/internal/resident"
	"github.com/Abhay4510/residents-book/pkg/pagination"
	"github.com/Abhay4510/residents-book/pkg/uuid"
)

// Messages of the stub's responses.
const (
	msgListed          = "Residents retrieved successfully"
	msgFetched         = "Resident retrieved successfully"
	msgCreated         = "Resident created successfully"
	msgMissingRequired = "First name, last name and title are required"
	msgTooLong         = "Name and title are too long"
)

const (
	maxNameLength  = 100
	maxTitleLength = 200
)

type listData struct {
	Residents  []resident.Resident `json:"residents"`
	Pagination pagination.Meta     `json:"pagination"`
}

type residentData struct {
	Resident resident.Resident `json:"resident"`
}

// Routes returns a [chi.Router] serving the API under /api and uploaded
// images under /uploads.
func (s *Server) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/api/residents", func(api chi.Router) {
		api.Use(s.delay)
		api.Get("/", s.listResidents)
		api.Post("/", s.createResident)
		api.Get("/{id}", s.getResident)
	})
	router.Get("/uploads/{id}", s.serveImage)

	return router
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-request.Context().Done():
				return
			}
		}
		next.ServeHTTP(writer, request)
	})
}

/*
GET /api/residents.

Request:
  - page: int (default 1)
  - limit: int (default 20, max 1000)

Response:
  - 200: {residents, pagination}
*/
func (s *Server) listResidents(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	s.mu.RLock()
	total := len(s.residents)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)
	page := append([]resident.Resident{}, s.residents[start:end]...)
	s.mu.RUnlock()

	respond.JSON(writer, http.StatusOK, respond.Envelope{
		Success: true,
		Message: msgListed,
		Data: listData{
			Residents:  page,
			Pagination: pagination.NewMeta(params.Page, params.Limit, total),
		},
	})
}

/*
GET /api/residents/{id}.

Response:
  - 200: {resident}
  - 404: Resident not found
*/
func (s *Server) getResident(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.residents {
		if entry.ID == id {
			respond.JSON(writer, http.StatusOK, respond.Envelope{
				Success: true,
				Message: msgFetched,
				Data:    residentData{Resident: entry},
			})
			return
		}
	}

	respond.Error(writer, request, apperr.NotFound("Resident"))
}

/*
POST /api/residents.

Request (multipart/form-data):
  - firstName, lastName, title: string (required)
  - linkedIn, twitter: string (optional)
  - profileImage: file (optional, up to 5MB)

Response:
  - 201: {resident}
  - 400: missing required fields, oversized image, or malformed body
*/
func (s *Server) createResident(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxCreateBodyBytes)
	if err := requestutil.ParseMultipart(request, constants.MaxMultipartMemory); err != nil {
		respond.Error(writer, request, apperr.ValidationError(apperr.UserMessage(err, "Malformed form data")))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	field := func(name string) string {
		return strings.TrimSpace(request.FormValue(name))
	}

	// 1. Required fields
	v := &validate.Validator{}
	v.Required(resident.FieldFirstName, field(resident.FieldFirstName), "").
		Required(resident.FieldLastName, field(resident.FieldLastName), "").
		Required(resident.FieldTitle, field(resident.FieldTitle), "")
	if v.HasErrors() {
		respond.Error(writer, request, apperr.ValidationError(msgMissingRequired, v.Errors()...))
		return
	}

	v.MaxLen(resident.FieldFirstName, field(resident.FieldFirstName), maxNameLength).
		MaxLen(resident.FieldLastName, field(resident.FieldLastName), maxNameLength).
		MaxLen(resident.FieldTitle, field(resident.FieldTitle), maxTitleLength)
	if v.HasErrors() {
		respond.Error(writer, request, apperr.ValidationError(msgTooLong, v.Errors()...))
		return
	}

	// 2. Optional image
	upload, err := requestutil.File(request, resident.FieldProfileImage, constants.MaxProfileImageBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if upload != nil {
		v.Custom(resident.FieldProfileImage, len(upload.Data) > constants.MaxProfileImageBytes, resident.MsgImageTooLarge)
	}
	if v.HasErrors() {
		respond.Error(writer, request, apperr.ValidationError(resident.MsgImageTooLarge, v.Errors()...))
		return
	}

	// 3. Persist
	now := s.now().UTC()
	created := resident.Resident{
		ID:        uuid.New(),
		FirstName: field(resident.FieldFirstName),
		LastName:  field(resident.FieldLastName),
		Title:     field(resident.FieldTitle),
		LinkedIn:  field(resident.FieldLinkedIn),
		Twitter:   field(resident.FieldTwitter),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if upload != nil {
		created.ProfileImage = fmt.Sprintf("%s/uploads/%s", origin(request), created.ID)
	}

	s.mu.Lock()
	if upload != nil {
		s.images[created.ID] = storedImage{contentType: upload.ContentType, data: upload.Data}
	}
	s.residents = append([]resident.Resident{created}, s.residents...)
	s.mu.Unlock()

	ctxutil.GetLoggerOr(request.Context(), s.logger).InfoContext(request.Context(), "mock_resident_created",
		slog.String("resident_id", created.ID),
		slog.Bool("with_image", upload != nil),
	)

	respond.Created(writer, msgCreated, residentData{Resident: created})
}

/*
GET /uploads/{id}.

Response:
  - 200: the image bytes with their content type
  - 404: no image for this id
*/
func (s *Server) serveImage(writer http.ResponseWriter, request *http.Request) {
	s.mu.RLock()
	image, ok := s.images[requestutil.ID(request, "id")]
	s.mu.RUnlock()

	if !ok {
		http.NotFound(writer, request)
		return
	}

	writer.Header().Set("Content-Type", image.contentType)
	writer.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = writer.Write(image.data)
}

// origin returns scheme://host of the request as seen by the client.
func origin(request *http.Request) string {
	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	if forwarded := request.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + request.Host
}
