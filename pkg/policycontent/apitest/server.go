// Package apitest provides an in-memory implementation of the policy-content
// REST contract for use in tests and local development. Responses use the
// backend's snake_case wire naming so normalization paths are exercised the
// same way they are against the real service.
package apitest

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
)

// Server holds the in-memory entity stores behind the fake API.
type Server struct {
	mu             sync.Mutex
	nextID         int64
	content        map[int64]map[string]any
	workshops      map[int64]map[string]any
	collaborations map[int64]map[string]any
	contentOrder   []int64
	workshopOrder  []int64
	collabOrder    []int64

	categories []string
	audiences  []string
	regions    []string
	countries  []string

	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// NewServer creates an empty fake API server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		content:        map[int64]map[string]any{},
		workshops:      map[int64]map[string]any{},
		collaborations: map[int64]map[string]any{},
		categories:     []string{"Advocacy", "Research", "Education"},
		audiences:      []string{"Ministries of Health", "Clinicians", "Researchers", "Patients"},
		regions:        []string{"All Regions", "Africa", "Americas", "Asia-Pacific", "Europe"},
		countries:      []string{"Kenya", "Brazil", "India", "Germany"},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithJWTAuth enables bearer-token verification on all routes using an HS256
// secret. Tokens for tests can be minted with TokenFor.
func WithJWTAuth(secret []byte) Option {
	return func(s *Server) {
		s.tokenAuth = jwtauth.New("HS256", secret, nil)
	}
}

// WithMetadata replaces the configured category/audience/region/country sets.
func WithMetadata(categories, audiences, regions, countries []string) Option {
	return func(s *Server) {
		s.categories = categories
		s.audiences = audiences
		s.regions = regions
		s.countries = countries
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// TokenFor mints a bearer token accepted by a server configured with
// WithJWTAuth.
func (s *Server) TokenFor(subject string) string {
	if s.tokenAuth == nil {
		return ""
	}
	_, token, err := s.tokenAuth.Encode(map[string]interface{}{"sub": subject})
	if err != nil {
		panic(err)
	}
	return token
}

// Handler returns the chi router implementing the REST contract.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	if s.tokenAuth != nil {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(jwtauth.Authenticator)
	}

	r.Route("/content", func(r chi.Router) {
		r.Get("/", s.listContent)
		r.Post("/", s.createContent)
		r.Get("/analytics/", s.contentAnalytics)
		r.Get("/categories/", s.metadataList(&s.categories))
		r.Get("/target_audience_options/", s.metadataList(&s.audiences))
		r.Get("/regions/", s.metadataList(&s.regions))
		r.Get("/countries/", s.metadataList(&s.countries))
		r.Get("/tags/", s.contentTags)
		r.Get("/{id}/", s.getContent)
		r.Patch("/{id}/", s.patchContent)
		r.Delete("/{id}/", s.deleteContent)
		r.Patch("/{id}/status/", s.updateContentStatus)
		r.Post("/{id}/increment_view/", s.incrementCounter("view_count"))
		r.Post("/{id}/increment_download/", s.incrementCounter("download_count"))
	})

	r.Route("/workshops", func(r chi.Router) {
		r.Get("/", s.listWorkshops)
		r.Post("/", s.createWorkshop)
		r.Get("/featured/", s.featuredWorkshops)
		r.Get("/upcoming/", s.upcomingWorkshops)
		r.Get("/analytics/", s.workshopAnalytics)
		r.Post("/upload_image/", s.uploadWorkshopImage)
		r.Get("/export/", s.exportWorkshops)
		r.Get("/{id}/", s.getWorkshop)
		r.Patch("/{id}/", s.patchWorkshop)
		r.Delete("/{id}/", s.deleteWorkshop)
		r.Post("/{id}/toggle_featured/", s.toggleWorkshopFeatured)
		r.Patch("/{id}/update_status/", s.updateWorkshopStatus)
	})

	r.Route("/collaborations", func(r chi.Router) {
		r.Get("/", s.listCollaborations)
		r.Post("/", s.createCollaboration)
		r.Get("/export/", s.exportCollaborations)
		r.Get("/{id}/", s.getCollaboration)
		r.Patch("/{id}/", s.patchCollaboration)
		r.Delete("/{id}/", s.deleteCollaboration)
		r.Patch("/{id}/update_status/", s.updateCollaborationStatus)
	})

	return r
}

// SeedContent inserts a raw content record and returns its assigned ID.
// Records are stored as given, so tests can seed drifting field names.
func (s *Server) SeedContent(record map[string]any) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.assignID(record)
	s.content[id] = record
	s.contentOrder = append(s.contentOrder, id)
	return id
}

// SeedWorkshop inserts a raw workshop record and returns its assigned ID.
func (s *Server) SeedWorkshop(record map[string]any) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.assignID(record)
	s.workshops[id] = record
	s.workshopOrder = append(s.workshopOrder, id)
	return id
}

// SeedCollaboration inserts a raw collaboration record and returns its ID.
func (s *Server) SeedCollaboration(record map[string]any) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.assignID(record)
	s.collaborations[id] = record
	s.collabOrder = append(s.collabOrder, id)
	return id
}

func (s *Server) assignID(record map[string]any) int64 {
	s.nextID++
	record["id"] = s.nextID
	return s.nextID
}

func (s *Server) metadataList(list *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		render.JSON(w, r, *list)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

func cloneRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}
