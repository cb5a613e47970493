// Copyright (c) 2026 Residents Book. All rights reserved.

package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/notify"
	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
	requestutil "github.com/Abhay4510/residents-book/internal/platform/request"
	"github.com/Abhay4510/residents-book/internal/resident"
)

// textFields are the creation form's text inputs in display order.
var textFields = []string{
	resident.FieldFirstName,
	resident.FieldLastName,
	resident.FieldTitle,
	resident.FieldLinkedIn,
	resident.FieldTwitter,
}

// # List Page

/*
GET /.

Description: Renders one page of the directory grid.

Request:
  - page: int (1-based, clamped into the available pages)

Response:
  - 200: list page, or the loading/empty/error state
*/
func (handler *Handler) listPage(writer http.ResponseWriter, request *http.Request) {
	list := newListView(handler.store.Snapshot(), requestutil.Page(request))
	handler.render(writer, request, http.StatusOK, PageData{List: list})
}

/*
POST /directory/reload.

Description: Retries the directory load. Concurrent retries share one
upstream request, and the load outlives the browser request that started it.

Response:
  - 303: back to the list page, with an error toast on failure
*/
func (handler *Handler) reloadDirectory(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(request.Context()), constants.StartupLoadTimeout)
	defer cancel()

	if err := handler.store.Reload(ctx); err != nil {
		handler.queueToast(request, notify.Error(apperr.UserMessage(err, msgFallback)))
	} else {
		handler.queueToast(request, notify.Success(msgReloaded))
	}

	http.Redirect(writer, request, pageURL(1), http.StatusSeeOther)
}

// # Detail Overlay

/*
GET /residents/{id}.

Description: Fetches one resident and renders the detail overlay over the
list page. The directory is never modified by this lookup.

Request:
  - id: string (resident id)
  - page: int (list page shown beneath the overlay)

Response:
  - 200: list page with the detail overlay
  - 303: back to the list page with "Failed to load resident details"
*/
func (handler *Handler) residentDetail(writer http.ResponseWriter, request *http.Request) {
	page := requestutil.Page(request)
	detail := directory.NewDetail(handler.api)

	found, err := detail.Open(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		handler.queueToast(request, notify.Error(msgDetailFailed))
		http.Redirect(writer, request, pageURL(page), http.StatusSeeOther)
		return
	}

	list := newListView(handler.store.Snapshot(), page)
	handler.render(writer, request, http.StatusOK, PageData{
		List:   list,
		Detail: newDetailView(*found, list.Window.Page),
	})
}

// # Creation Overlay

/*
GET /residents/new.

Description: Renders an empty creation form over the first list page.
*/
func (handler *Handler) newResidentForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, PageData{
		List: newListView(handler.store.Snapshot(), 1),
		Form: newFormView(resident.CreateInput{}, nil, false),
	})
}

/*
POST /residents.

Description: Validates and submits the creation form.

# Flow

 1. Copy the text fields into the session's form. A form already in flight
    for this session answers 409. A body cut short by the size cap keeps
    the fields that arrived and answers 422 with a toast.
 2. Attach the optional image. An image over 5MB is dropped with a toast,
    the text rules still run, and the form is shown again with every
    violation and without submitting.
 3. Submit. Field violations answer 422 with inline errors and make no
    upstream call. Upstream failures keep the values and show a toast.
 4. On success the resident is already first in the directory; redirect to
    the first page with a welcome toast.

Request (multipart/form-data):
  - firstName, lastName, title: string (required)
  - linkedIn, twitter: string (optional URLs)
  - profileImage: file (optional, up to 5MB)
*/
func (handler *Handler) createResident(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	sessionID := ctxutil.GetSessionID(ctx)

	form := handler.forms.Acquire(sessionID)
	defer handler.forms.Release(sessionID, form)

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxCreateBodyBytes)
	submitted, readErr := requestutil.ReadMultipart(request, constants.MaxProfileImageBytes)
	if submitted == nil {
		handler.queueToast(request, notify.Error(apperr.UserMessage(readErr, msgFallback)))
		http.Redirect(writer, request, "/residents/new", http.StatusSeeOther)
		return
	}

	// 1. Text fields
	for _, field := range textFields {
		if err := form.SetText(field, submitted.Values.Get(field)); err != nil {
			handler.renderFormFailure(writer, request, form, err, submittedInput(submitted.Values))
			return
		}
	}
	if readErr != nil {
		if upload := submitted.File(resident.FieldProfileImage); upload != nil && upload.Truncated {
			readErr = resident.CheckImage(&resident.Image{Data: upload.Data})
		}
		form.Check()
		handler.renderFormFailure(writer, request, form, readErr, form.Input())
		return
	}

	// 2. Optional image
	if upload := submitted.File(resident.FieldProfileImage); upload != nil {
		image := &resident.Image{
			Filename:    upload.Filename,
			ContentType: upload.ContentType,
			Data:        upload.Data,
		}
		if err := form.AttachImage(image); err != nil {
			if !errors.Is(err, directory.ErrFormLocked) {
				form.Check()
			}
			handler.renderFormFailure(writer, request, form, err, form.Input())
			return
		}
	}

	// 3. Submit
	input := form.Input()
	if _, err := form.Submit(ctx); err != nil {
		handler.renderFormFailure(writer, request, form, err, input)
		return
	}

	// 4. Success
	handler.metrics.IncrementResidentsCreated()
	handler.queueToast(request, notify.Success(msgWelcome))
	http.Redirect(writer, request, pageURL(1), http.StatusSeeOther)
}

// renderFormFailure shows the creation overlay again with the values kept.
//
// Field violations are rendered inline; every other failure becomes a toast.
func (handler *Handler) renderFormFailure(writer http.ResponseWriter, request *http.Request, form *directory.Form, err error, input resident.CreateInput) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	locked := errors.Is(err, directory.ErrFormLocked)
	data := PageData{
		List: newListView(handler.store.Snapshot(), 1),
		Form: newFormView(input, form.FieldErrors(), locked),
	}

	var toasts []notify.Toast
	if appError.Code != apperr.CodeClientValidation || len(appError.Details) == 0 || appError.Details[0].Field == resident.FieldProfileImage {
		toasts = append(toasts, notify.Error(apperr.UserMessage(appError, msgFallback)))
	}
	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "resident_create_rejected",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	handler.render(writer, request, appError.HTTPStatus, data, toasts...)
}

// submittedInput reads the raw text fields of a submission.
func submittedInput(values url.Values) resident.CreateInput {
	return resident.CreateInput{
		FirstName: values.Get(resident.FieldFirstName),
		LastName:  values.Get(resident.FieldLastName),
		Title:     values.Get(resident.FieldTitle),
		LinkedIn:  values.Get(resident.FieldLinkedIn),
		Twitter:   values.Get(resident.FieldTwitter),
	}
}
