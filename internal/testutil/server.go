package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/gorilla/mux"
)

// APIPrefix is the path prefix of the fake API, matching the version
// segment of the real base URL.
const APIPrefix = "/3"

// RecordedRequest is a request received by a Server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// TB is the part of testing.TB a Server needs. Both *testing.T and
// GinkgoT() satisfy it.
type TB interface {
	Helper()
	Cleanup(func())
	Fatalf(format string, args ...any)
}

// Server is a fake TMDB API backed by httptest. Routes are registered on a
// gorilla/mux router; unmatched routes answer with the service's "not
// found" body. Every request is recorded.
type Server struct {
	t      TB
	srv    *httptest.Server
	router *mux.Router
	api    *mux.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a fake API that is closed when the test completes.
func NewServer(t TB) *Server {
	t.Helper()

	s := &Server{t: t, router: mux.NewRouter()}
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})
	s.api = s.router.PathPrefix(APIPrefix).Subrouter()
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()

	s.router.ServeHTTP(w, r)
}

// URL returns the root URL of the server.
func (s *Server) URL() string {
	return s.srv.URL
}

// BaseURL returns the API base URL to pass to the client.
func (s *Server) BaseURL() string {
	return s.srv.URL + APIPrefix
}

// Client returns an HTTP client for the server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Handle registers a handler for an API path such as "/movie/{id}".
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.api.HandleFunc(path, h).Methods(method)
}

// HandleRoot registers a handler outside the API prefix, e.g. for images.
func (s *Server) HandleRoot(method, path string, h http.HandlerFunc) {
	s.router.HandleFunc(path, h).Methods(method)
}

// JSON registers a fixed JSON response for an API path.
func (s *Server) JSON(method, path string, status int, body string) {
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Hits counts the requests received for a path relative to the API prefix.
func (s *Server) Hits(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == APIPrefix+path {
			n++
		}
	}
	return n
}

// Last returns the most recent request. It fails the test when there is none.
func (s *Server) Last() RecordedRequest {
	s.t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		s.t.Fatalf("no requests recorded")
	}
	return reqs[len(reqs)-1]
}

// Vars returns the route variables of a request.
func Vars(r *http.Request) map[string]string {
	return mux.Vars(r)
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
