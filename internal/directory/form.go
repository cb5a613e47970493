// Copyright (c) 2026 Residents Book. All rights reserved.

package directory

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
	"github.com/Abhay4510/residents-book/internal/platform/validate"
	"github.com/Abhay4510/residents-book/internal/resident"
)

// ErrFormLocked is returned when the form is changed or submitted while a
// submission is in flight.
var ErrFormLocked = apperr.Conflict("Your submission is still being processed")

// # Form Definition

// Form is the creation form state: its values, its field errors, and the
// lock held while a submission is in flight.
//
// # Concurrency
//
// Form is safe for concurrent use. The lock is not held across the network
// call; instead the locked flag rejects edits and duplicate submissions.
type Form struct {
	api   API
	store *Store

	mu     sync.Mutex
	input  resident.CreateInput
	errors map[string]string
	locked bool
}

// NewForm creates an empty form that submits through api and merges
// successful creations into store.
func NewForm(api API, store *Store) *Form {
	return &Form{api: api, store: store, errors: map[string]string{}}
}

// SetText sets one text field and clears that field's error.
func (f *Form) SetText(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.locked {
		return ErrFormLocked
	}

	switch field {
	case resident.FieldFirstName:
		f.input.FirstName = value
	case resident.FieldLastName:
		f.input.LastName = value
	case resident.FieldTitle:
		f.input.Title = value
	case resident.FieldLinkedIn:
		f.input.LinkedIn = value
	case resident.FieldTwitter:
		f.input.Twitter = value
	default:
		return apperr.ClientValidation("Unknown form field " + field)
	}

	delete(f.errors, field)
	return nil
}

// AttachImage attaches a profile image.
//
// An image over the size limit is rejected with a CLIENT_VALIDATION_ERROR;
// the previously attached image (if any) and every text field are kept.
func (f *Form) AttachImage(image *resident.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.locked {
		return ErrFormLocked
	}

	if err := resident.CheckImage(image); err != nil {
		return err
	}

	f.input.ProfileImage = image
	return nil
}

// DetachImage removes the attached image.
func (f *Form) DetachImage() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.locked {
		return ErrFormLocked
	}

	f.input.ProfileImage = nil
	return nil
}

// Input returns a copy of the current values.
func (f *Form) Input() resident.CreateInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// FieldErrors returns a copy of the current field errors keyed by field name.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.errors))
	for field, message := range f.errors {
		out[field] = message
	}
	return out
}

// Locked reports whether a submission is in flight.
func (f *Form) Locked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locked
}

// Check runs the text-field rules without submitting and records every
// violation as a field error. It returns the violations in field order.
func (f *Form) Check() []apperr.FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.check()
}

func (f *Form) check() []apperr.FieldError {
	fieldErrors := resident.Validate(f.input)
	f.errors = validate.FieldMap(fieldErrors)
	return fieldErrors
}

// Reset clears values and errors. A locked form is left untouched.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.locked {
		return
	}
	f.input = resident.CreateInput{}
	f.errors = map[string]string{}
}

// # Submission

// Submit validates the form and, when every rule passes, creates the resident.
//
// # Flow
//
//  1. Local checks: all violations are recorded as field errors and returned
//     as one CLIENT_VALIDATION_ERROR. No network call is made.
//  2. Lock: edits and further submissions fail with [ErrFormLocked].
//  3. Create: a single upstream call.
//  4. Success: the resident is prepended to the store and the form resets.
//     Failure: the values stay as they were and the form unlocks.
func (f *Form) Submit(ctx context.Context) (*resident.Resident, error) {
	f.mu.Lock()

	if f.locked {
		f.mu.Unlock()
		return nil, ErrFormLocked
	}

	if fieldErrors := f.check(); len(fieldErrors) > 0 {
		f.mu.Unlock()
		return nil, apperr.ClientValidation("Please fix the highlighted fields", fieldErrors...)
	}

	f.locked = true
	input := f.input
	f.mu.Unlock()

	logger := ctxutil.GetLogger(ctx)
	created, err := f.api.Create(ctx, input)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = false

	if err == nil && created == nil {
		err = apperr.Server(http.StatusOK)
	}
	if err != nil {
		logger.WarnContext(ctx, "resident_create_failed", slog.Any("error", err))
		return nil, err
	}

	if f.store != nil && !f.store.Prepend(*created) {
		logger.WarnContext(ctx, "resident_already_listed", slog.String("resident_id", created.ID))
	}

	f.input = resident.CreateInput{}
	f.errors = map[string]string{}

	logger.InfoContext(ctx, "resident_created",
		slog.String("resident_id", created.ID),
		slog.Bool("with_image", input.ProfileImage != nil),
	)

	return created, nil
}

// # Form Registry

// Forms hands out one [Form] per browser session so that a duplicate
// submission from the same session hits the lock of the first one.
type Forms struct {
	api   API
	store *Store

	mu    sync.Mutex
	forms map[string]*Form
}

// NewForms creates an empty registry.
func NewForms(api API, store *Store) *Forms {
	return &Forms{api: api, store: store, forms: map[string]*Form{}}
}

// Acquire returns the session's form, creating it on first use.
func (r *Forms) Acquire(sessionID string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	form, ok := r.forms[sessionID]
	if !ok {
		form = NewForm(r.api, r.store)
		r.forms[sessionID] = form
	}
	return form
}

// Release drops the session's form once it is no longer in flight.
func (r *Forms) Release(sessionID string, form *Form) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.forms[sessionID]; ok && current == form && !form.Locked() {
		delete(r.forms, sessionID)
	}
}

// Len returns the number of tracked sessions.
func (r *Forms) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}
