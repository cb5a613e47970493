// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package mockapi is an in-memory stand-in for the Residents REST API.

It implements the same wire contract as the real service so the web front end
can be developed and tested end to end without it:

  - GET  /api/residents?page=&limit=  paginated list, newest first
  - GET  /api/residents/{id}          one resident, 404 when unknown
  - POST /api/residents               multipart create with required fields
  - GET  /uploads/{id}                profile images received by create

Records live in process memory and are lost on restart.
*/
package mockapi

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Abhay4510/residents-book/internal/resident"
	"github.com/Abhay4510/residents-book/pkg/uuid"
)

// # Store Definition

type storedImage struct {
	contentType string
	data        []byte
}

// Server holds the stub's records and serves the API routes.
type Server struct {
	latency time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	residents []resident.Resident
	images    map[string]storedImage
}

// Option configures a [Server].
type Option func(*Server)

// WithLatency delays every API response by d.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithLogger sets the logger used by requests that carry no request-scoped
// logger, for example when [Server.Routes] is mounted without middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithResidents replaces the initial records. They are served in the given order.
func WithResidents(residents ...resident.Resident) Option {
	return func(s *Server) {
		s.residents = append([]resident.Resident{}, residents...)
	}
}

// WithSeed generates n sample residents.
func WithSeed(n int) Option {
	return func(s *Server) {
		s.residents = Seed(n, s.now())
	}
}

// New creates a stub server with no records unless an option adds some.
func New(opts ...Option) *Server {
	server := &Server{
		logger:    slog.Default(),
		now:       time.Now,
		residents: []resident.Resident{},
		images:    make(map[string]storedImage),
	}
	for _, opt := range opts {
		opt(server)
	}
	return server
}

// Len returns the number of records held.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.residents)
}

// # Seeding

var seedPeople = []struct {
	first, last, title string
}{
	{"Ada", "Lovelace", "Mathematician"},
	{"Grace", "Hopper", "Computer Scientist"},
	{"Alan", "Turing", "Cryptanalyst"},
	{"Katherine", "Johnson", "Space Scientist"},
	{"Linus", "Torvalds", "Kernel Maintainer"},
	{"Margaret", "Hamilton", "Software Engineer"},
	{"Émile", "Borel", "Researcher"},
	{"Hedy", "Lamarr", "Inventor"},
	{"Dennis", "Ritchie", "Language Designer"},
	{"Barbara", "Liskov", "Professor"},
	{"Ken", "Thompson", "Systems Programmer"},
	{"Frances", "Allen", "Compiler Engineer"},
}

// Seed builds n deterministic sample residents, newest first, each created
// one day before the previous one.
func Seed(n int, now time.Time) []resident.Resident {
	out := make([]resident.Resident, 0, max(n, 0))
	for i := range max(n, 0) {
		person := seedPeople[i%len(seedPeople)]
		created := now.Add(-time.Duration(i) * 24 * time.Hour).UTC()
		slug := fmt.Sprintf("%s-%s-%d", person.first, person.last, i+1)

		entry := resident.Resident{
			ID:        uuid.New(),
			FirstName: person.first,
			LastName:  person.last,
			Title:     person.title,
			CreatedAt: created,
			UpdatedAt: created,
		}
		if i%2 == 0 {
			entry.LinkedIn = "https://linkedin.com/in/" + slug
		}
		if i%3 == 0 {
			entry.Twitter = "https://x.com/" + slug
		}
		out = append(out, entry)
	}
	return out
}
