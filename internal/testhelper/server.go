package testhelper

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Request is what a Server saw of one incoming request.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

// Server is an httptest server answering every request with a fixed status
// and body while recording what it received.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t *testing.T, status int, body []byte) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request. It fails the test when none arrived.
func (s *Server) Last(t *testing.T) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("server received no requests")
	}
	return reqs[len(reqs)-1]
}

// RedirectClient returns an *http.Client that sends every request to the
// server regardless of the URL's host. It lets code with a hardcoded remote
// endpoint be tested locally.
func (s *Server) RedirectClient() *http.Client {
	target := s.Listener.Addr().String()
	base := s.Client().Transport
	return &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			r.URL.Scheme = "http"
			r.URL.Host = target
			r.Host = target
			return base.RoundTrip(r)
		}),
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
