// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the
multipart form handling shared by the web front end and the stub API,
ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/pkg/convert"
)

/*
ID retrieves a named URL parameter (record id) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Page reads the 1-based "page" query parameter.

Missing, malformed, and non-positive values all yield 1. The upper bound is
left to the caller, which knows the total.
*/
func Page(request *http.Request) int {
	page := convert.ToIntD(request.URL.Query().Get("page"), 1)
	if page < 1 {
		return 1
	}
	return page
}

// maxValueBytes bounds one text part of a streamed multipart form.
const maxValueBytes = 64 << 10

/*
ParseMultipart parses a multipart/form-data body, keeping up to maxMemory
bytes of file parts in memory.

Returns:
  - error: CLIENT_VALIDATION_ERROR when the body exceeds the limit set by
    [http.MaxBytesReader], VALIDATION_ERROR when the body is malformed.
*/
func ParseMultipart(request *http.Request, maxMemory int64) error {
	if err := request.ParseMultipartForm(maxMemory); err != nil {
		return bodyError(err)
	}
	return nil
}

// Upload is one file part of a multipart form.
//
// Data holds at most the caller's limit plus one byte. Truncated reports
// that the part was longer than that, so a size check on Data still fails.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	Truncated   bool
}

/*
File reads the named file part of an already parsed multipart form.

No more than maxBytes+1 bytes are read, whatever the size of the part.

Returns:
  - *Upload: nil when the part is absent or empty
  - error: VALIDATION_ERROR when the part cannot be read
*/
func File(request *http.Request, name string, maxBytes int64) (*Upload, error) {
	if request.MultipartForm == nil {
		return nil, nil
	}

	headers := request.MultipartForm.File[name]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil, nil
	}

	header := headers[0]
	file, err := header.Open()
	if err != nil {
		return nil, apperr.ValidationError("Unable to read " + name)
	}
	defer file.Close()

	upload, err := readUpload(file, header.Filename, header.Header.Get("Content-Type"), maxBytes)
	if err != nil {
		return nil, apperr.ValidationError("Unable to read " + name)
	}
	return upload, nil
}

// # Streamed Forms

// Form is a multipart form read part by part.
type Form struct {
	Values url.Values
	Files  map[string]*Upload
}

// File returns the first upload sent under name, or nil.
func (f *Form) File(name string) *Upload {
	return f.Files[name]
}

/*
ReadMultipart streams a multipart/form-data body one part at a time.

Unlike [ParseMultipart] nothing is spooled to disk, and each file part keeps
at most maxFileBytes+1 bytes (see [Upload]). The rest of an oversized part
is skipped.

Returns:
  - *Form: every part read before the body ended or failed; nil when the
    body is not multipart
  - error: CLIENT_VALIDATION_ERROR when the body exceeds the limit set by
    [http.MaxBytesReader] or a text part is too long, VALIDATION_ERROR when
    the body is malformed. The returned form still holds the parts read
    before the failure.
*/
func ReadMultipart(request *http.Request, maxFileBytes int64) (*Form, error) {
	reader, err := request.MultipartReader()
	if err != nil {
		return nil, apperr.ValidationError("Malformed form data")
	}

	form := &Form{Values: url.Values{}, Files: map[string]*Upload{}}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return form, bodyError(err)
		}

		if err := readPart(form, part, maxFileBytes); err != nil {
			return form, err
		}
	}
}

func readPart(form *Form, part *multipart.Part, maxFileBytes int64) error {
	defer part.Close()

	name := part.FormName()
	if name == "" {
		return nil
	}

	// 1. Text field
	if part.FileName() == "" {
		value, err := io.ReadAll(io.LimitReader(part, maxValueBytes+1))
		if err != nil {
			return bodyError(err)
		}
		if len(value) > maxValueBytes {
			return apperr.ClientValidation(fmt.Sprintf("Field %s exceeds %d bytes", name, maxValueBytes))
		}
		form.Values.Add(name, string(value))
		return nil
	}

	// 2. File
	upload, err := readUpload(part, part.FileName(), part.Header.Get("Content-Type"), maxFileBytes)
	if err != nil {
		return bodyError(err)
	}
	if upload != nil && form.Files[name] == nil {
		form.Files[name] = upload
	}
	return nil
}

// readUpload reads at most maxBytes+1 bytes of a file part. An empty part
// yields nil.
func readUpload(r io.Reader, filename, contentType string, maxBytes int64) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &Upload{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		Truncated:   int64(len(data)) > maxBytes,
	}, nil
}

// bodyError maps a body read failure to an [apperr.AppError].
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.ClientValidation(fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
	}

	// Some multipart paths flatten the reader error into a string.
	if strings.Contains(err.Error(), "request body too large") {
		return apperr.ClientValidation("Request body is too large")
	}
	return apperr.ValidationError("Malformed form data")
}
