// Copyright (c) 2026 Residents Book. All rights reserved.

package mockapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/mockapi"
	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/resident"
)

func TestSeed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seeded := mockapi.Seed(14, now)

	require.Len(t, seeded, 14)
	assert.Equal(t, "Ada", seeded[0].FirstName)
	assert.Equal(t, "Ada", seeded[12].FirstName)
	assert.Equal(t, now, seeded[0].CreatedAt)
	assert.True(t, seeded[1].CreatedAt.Before(seeded[0].CreatedAt))

	ids := map[string]bool{}
	for _, entry := range seeded {
		ids[entry.ID] = true
		assert.NotEmpty(t, entry.Title)
	}
	assert.Len(t, ids, 14)

	assert.Empty(t, mockapi.Seed(-1, now))
}

// ClientSuite drives the stub through the real API client.
type ClientSuite struct {
	suite.Suite
	stub   *mockapi.Server
	server *httptest.Server
	client *resident.Client
	ctx    context.Context
}

func (s *ClientSuite) SetupTest() {
	s.stub = mockapi.New(
		mockapi.WithSeed(25),
		mockapi.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.server = httptest.NewServer(s.stub.Routes())
	s.ctx = context.Background()

	client, err := resident.NewClient(s.server.URL + "/api")
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestList_Pages() {
	first, err := s.client.List(s.ctx, 1, 12)
	s.Require().NoError(err)
	s.Len(first.Residents, 12)
	s.Equal(3, first.Pagination.TotalPages)
	s.Equal(25, first.Pagination.TotalResidents)
	s.True(first.Pagination.HasNextPage)
	s.False(first.Pagination.HasPrevPage)

	last, err := s.client.List(s.ctx, 3, 12)
	s.Require().NoError(err)
	s.Len(last.Residents, 1)
	s.False(last.Pagination.HasNextPage)

	beyond, err := s.client.List(s.ctx, 9, 12)
	s.Require().NoError(err)
	s.Empty(beyond.Residents)
}

func (s *ClientSuite) TestGet() {
	list, err := s.client.List(s.ctx, 1, 1)
	s.Require().NoError(err)

	want := list.Residents[0]
	got, err := s.client.Get(s.ctx, want.ID)
	s.Require().NoError(err)
	s.Equal(want.ID, got.ID)
	s.Equal(want.FullName(), got.FullName())

	_, err = s.client.Get(s.ctx, "does-not-exist")
	s.True(apperr.HasCode(err, apperr.CodeNotFound))
	s.Equal("Resident not found", apperr.UserMessage(err, ""))
}

func (s *ClientSuite) TestCreate_WithImage() {
	png := []byte("\x89PNG\r\n\x1a\nbytes")
	created, err := s.client.Create(s.ctx, resident.CreateInput{
		FirstName:    "  Ada ",
		LastName:     "Lovelace",
		Title:        "Analyst",
		LinkedIn:     "https://linkedin.com/in/ada",
		ProfileImage: &resident.Image{Filename: "ada.png", ContentType: "image/png", Data: png},
	})
	s.Require().NoError(err)

	s.NotEmpty(created.ID)
	s.Equal("Ada", created.FirstName)
	s.Equal("https://linkedin.com/in/ada", created.LinkedIn)
	s.Equal(26, s.stub.Len())
	s.True(strings.HasPrefix(created.ProfileImage, s.server.URL+"/uploads/"))

	response, err := http.Get(created.ProfileImage)
	s.Require().NoError(err)
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, response.StatusCode)
	s.Equal("image/png", response.Header.Get("Content-Type"))
	s.Equal(png, body)

	// Newest first.
	list, err := s.client.List(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Equal(created.ID, list.Residents[0].ID)
}

func (s *ClientSuite) TestCreate_MissingRequiredIsValidationError() {
	_, err := s.client.Create(s.ctx, resident.CreateInput{FirstName: "Ada"})

	s.True(apperr.HasCode(err, apperr.CodeValidation))
	s.Equal("First name, last name and title are required", apperr.UserMessage(err, ""))
	s.Equal(25, s.stub.Len())
}

func (s *ClientSuite) TestCreate_OverlongNameIsValidationError() {
	_, err := s.client.Create(s.ctx, resident.CreateInput{
		FirstName: strings.Repeat("a", 101),
		LastName:  "Lovelace",
		Title:     "Analyst",
	})

	s.True(apperr.HasCode(err, apperr.CodeValidation))
	s.Equal("Name and title are too long", apperr.UserMessage(err, ""))
	s.Equal(25, s.stub.Len())
}

func (s *ClientSuite) TestCreate_OversizedImageIsValidationError() {
	_, err := s.client.Create(s.ctx, resident.CreateInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Title:        "Analyst",
		ProfileImage: &resident.Image{Data: make([]byte, 6*1024*1024)},
	})

	s.True(apperr.HasCode(err, apperr.CodeValidation))
	s.Equal(resident.MsgImageTooLarge, apperr.UserMessage(err, ""))
}

func (s *ClientSuite) TestStore_LoadsWholeDirectory() {
	store := directory.NewStore(s.client, directory.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(store.Load(s.ctx))
	s.Equal(25, store.Len())
}

func (s *ClientSuite) TestUnknownImage() {
	response, err := http.Get(s.server.URL + "/uploads/nothing")
	s.Require().NoError(err)
	defer response.Body.Close()
	s.Equal(http.StatusNotFound, response.StatusCode)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func TestCreate_LogsThroughServerLogger(t *testing.T) {
	var logs strings.Builder
	stub := mockapi.New(mockapi.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	server := httptest.NewServer(stub.Routes())
	defer server.Close()

	client, err := resident.NewClient(server.URL + "/api")
	require.NoError(t, err)

	created, err := client.Create(context.Background(), resident.CreateInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Title:     "Rear Admiral",
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "mock_resident_created")
	assert.Contains(t, logs.String(), created.ID)
}

func TestLatency_RespectsCancellation(t *testing.T) {
	stub := mockapi.New(mockapi.WithLatency(time.Minute))
	server := httptest.NewServer(stub.Routes())
	defer server.Close()

	client, err := resident.NewClient(server.URL+"/api", resident.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.List(context.Background(), 1, 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeNetwork))
}
