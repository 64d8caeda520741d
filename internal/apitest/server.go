// Package apitest runs an in-process stand-in for the agency REST API.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"agency-console/internal/apiclient"
	"agency-console/internal/session"
)

// Request is one call the fake API received.
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

type route struct {
	status int
	body   string
}

// Server answers canned responses keyed by "METHOD /path". Unknown routes get
// 404 with a message.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]route
	requests []Request
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: map[string]route{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle sets the response for method and path.
func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = route{status: status, body: body}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	rt, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"route not found"}`))
		return
	}
	w.WriteHeader(rt.status)
	w.Write([]byte(rt.body))
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls counts requests for method and path.
func (s *Server) Calls(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request for method and path.
func (s *Server) Last(method, path string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

// Client returns an API client pointed at s with an in-memory session.
func (s *Server) Client(nav apiclient.Navigator) (*apiclient.Client, *session.Store) {
	store := session.NewStore(session.NewMemoryBackend())
	return apiclient.New(apiclient.Config{BaseURL: s.URL}, store, nav), store
}
