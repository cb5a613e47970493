// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package web renders the Residents Book front end.

It is a server-rendered view over the directory: the list page paginates the
in-memory [directory.Store], the detail overlay fetches one resident on
demand, and the creation overlay posts a multipart form that is validated
locally before it reaches the upstream API.

# Routing Strategy

  - GET  /                  list page (?page=N), loading/empty/error states
  - POST /directory/reload  retry a failed directory load
  - GET  /residents/new     creation overlay
  - POST /residents         submit the creation form
  - GET  /residents/{id}    detail overlay over the list page

Outcomes that happen across a redirect are carried by per-session toasts
(see [notify]).
*/
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/notify"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
	"github.com/Abhay4510/residents-book/internal/platform/metrics"
	"github.com/Abhay4510/residents-book/internal/platform/respond"
)

// User-facing toast messages.
const (
	msgWelcome      = "Welcome to the community! \U0001F389"
	msgDetailFailed = "Failed to load resident details"
	msgFallback     = "Something went wrong"
	msgReloaded     = "Residents refreshed"
)

//go:embed templates/*.html
var templateFS embed.FS

// # Handler Implementation

// Dependencies are the collaborators of a [Handler].
type Dependencies struct {
	API     directory.API
	Store   *directory.Store
	Toasts  notify.Store
	Metrics *metrics.Metrics
}

// Handler implements the HTTP layer of the front end.
type Handler struct {
	api       directory.API
	store     *directory.Store
	forms     *directory.Forms
	toasts    notify.Store
	metrics   *metrics.Metrics
	templates *template.Template
}

// NewHandler parses the embedded templates and builds the handler.
func NewHandler(deps Dependencies) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Handler{
		api:       deps.API,
		store:     deps.Store,
		forms:     directory.NewForms(deps.API, deps.Store),
		toasts:    deps.Toasts,
		metrics:   deps.Metrics,
		templates: templates,
	}, nil
}

// Routes returns a [chi.Router] configured with the front end's pages.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPage)
	router.Post("/directory/reload", handler.reloadDirectory)

	router.Get("/residents/new", handler.newResidentForm)
	router.Post("/residents", handler.createResident)
	router.Get("/residents/{id}", handler.residentDetail)

	return router
}

// # Templates

// fieldView is the value of the "field" template.
type fieldView struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Error       string
	Locked      bool
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"field": func(name, label, inputType, value, placeholder string, form *FormView) fieldView {
			return fieldView{
				Name:        name,
				Label:       label,
				Type:        inputType,
				Value:       value,
				Placeholder: placeholder,
				Error:       form.Errors[name],
				Locked:      form.Locked,
			}
		},
	}
	return template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// # Rendering Helpers

// render drains the session's toasts, appends extra, and writes the page.
func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, data PageData, extra ...notify.Toast) {
	ctx := request.Context()

	toasts, err := handler.toasts.Drain(ctx, ctxutil.GetSessionID(ctx))
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "toast_drain_failed", slog.Any("error", err))
	}

	data.Toasts = append(toasts, extra...)
	data.ToastDurationMS = constants.ToastDisplayDuration.Milliseconds()

	respond.HTML(writer, request, status, handler.templates, "page", data)
}

// queueToast keeps a toast for the next page the session renders.
func (handler *Handler) queueToast(request *http.Request, toast notify.Toast) {
	ctx := request.Context()
	if err := handler.toasts.Push(ctx, ctxutil.GetSessionID(ctx), toast); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "toast_push_failed",
			slog.String("kind", string(toast.Kind)),
			slog.Any("error", err),
		)
	}
}
