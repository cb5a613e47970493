// Copyright (c) 2026 Residents Book. All rights reserved.

package resident

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
	"github.com/Abhay4510/residents-book/internal/platform/metrics"
)

// maxErrorBody bounds how much of a failed response is read to find its message.
const maxErrorBody = 64 << 10

// # Client Definition

// Client calls the upstream Residents REST API.
//
// Every method is a single attempt: there is no retry, and any failure is
// returned as an [*apperr.AppError] for the caller to present.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-call timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a client rooted at baseURL (e.g. "http://localhost:8800/api").
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("resident: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("resident: base URL must be http or https, got %q", baseURL)
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the upstream root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// # Wire Envelope

// envelope is the JSON body shape shared by every upstream response.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type residentData struct {
	Resident *Resident `json:"resident"`
}

// # Operations

// List fetches one page of residents.
func (c *Client) List(ctx context.Context, page, limit int) (result *ListResult, err error) {
	defer c.observe(metrics.OpList, time.Now(), &err)

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	request, err := c.newRequest(ctx, http.MethodGet, "/residents?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var body envelope[ListResult]
	if err := c.do(request, &body, ""); err != nil {
		return nil, err
	}

	if body.Data.Residents == nil {
		body.Data.Residents = []Resident{}
	}
	return &body.Data, nil
}

// Get fetches one resident by id.
//
// It fails with NOT_FOUND when the upstream reports the id does not exist.
func (c *Client) Get(ctx context.Context, id string) (result *Resident, err error) {
	defer c.observe(metrics.OpGet, time.Now(), &err)

	request, err := c.newRequest(ctx, http.MethodGet, "/residents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var body envelope[residentData]
	if err := c.do(request, &body, "Resident"); err != nil {
		return nil, err
	}

	if body.Data.Resident == nil {
		return nil, apperr.Server(http.StatusOK)
	}
	return body.Data.Resident, nil
}

// Create submits a new resident as a multipart form with an optional image part.
func (c *Client) Create(ctx context.Context, input CreateInput) (result *Resident, err error) {
	defer c.observe(metrics.OpCreate, time.Now(), &err)

	payload, contentType, err := encodeMultipart(input)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	request, err := c.newRequest(ctx, http.MethodPost, "/residents", payload)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", contentType)

	var body envelope[residentData]
	if err := c.do(request, &body, ""); err != nil {
		return nil, err
	}

	if body.Data.Resident == nil {
		return nil, apperr.Server(http.StatusOK)
	}
	return body.Data.Resident, nil
}

// # Transport Helpers

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("build %s %s: %w", method, path, err))
	}

	request.Header.Set("Accept", "application/json")
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	return request, nil
}

// do executes the request and decodes a 2xx body into target.
//
// # Error Mapping
//
//   - No response (dial, timeout, reset): NETWORK_ERROR.
//   - 404 with a resource name: NOT_FOUND.
//   - 4xx carrying a message: VALIDATION_ERROR with the server message.
//   - 5xx carrying a message: SERVER_ERROR showing the server message.
//   - Any other non-2xx or an undecodable body: SERVER_ERROR.
func (c *Client) do(request *http.Request, target any, notFoundResource string) error {
	logger := ctxutil.GetLogger(request.Context())

	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.WarnContext(request.Context(), "upstream_unreachable",
			slog.String("method", request.Method),
			slog.String("url", request.URL.Redacted()),
			slog.Any("error", err),
		)
		return apperr.Network(err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return classify(response, notFoundResource)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		ae := apperr.Server(response.StatusCode)
		ae.Cause = fmt.Errorf("decode upstream body: %w", err)
		return ae
	}

	return nil
}

// classify turns a non-2xx response into an [*apperr.AppError].
func classify(response *http.Response, notFoundResource string) error {
	raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))

	var body envelope[json.RawMessage]
	message := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		message = strings.TrimSpace(body.Message)
	}

	switch {
	case response.StatusCode == http.StatusNotFound && notFoundResource != "":
		ae := apperr.NotFound(notFoundResource)
		if message != "" {
			ae.Message = message
		}
		return ae

	case message != "" && response.StatusCode < 500:
		return apperr.ValidationError(message)

	case message != "":
		ae := apperr.Server(response.StatusCode)
		ae.Message = message
		return ae

	default:
		return apperr.Server(response.StatusCode)
	}
}

func (c *Client) observe(operation string, start time.Time, err *error) {
	c.metrics.ObserveUpstream(operation, start, *err)
}

// # Multipart Encoding

// encodeMultipart writes the text fields in a fixed order, then the image part.
func encodeMultipart(input CreateInput) (*bytes.Buffer, string, error) {
	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)

	fields := []struct{ name, value string }{
		{FieldFirstName, input.FirstName},
		{FieldLastName, input.LastName},
		{FieldTitle, input.Title},
		{FieldLinkedIn, input.LinkedIn},
		{FieldTwitter, input.Twitter},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.name, err)
		}
	}

	if image := input.ProfileImage; image != nil {
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FieldProfileImage, imageFilename(image)))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(image.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return payload, writer.FormDataContentType(), nil
}

func imageFilename(image *Image) string {
	name := strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(image.Filename)
	if name == "" {
		return "profile-image"
	}
	return name
}
