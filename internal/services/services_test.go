package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"storeadmin/internal/caching"
	"storeadmin/internal/gateway"
	"storeadmin/internal/models"
)

// fakeBackend is an httptest upstream that counts requests per route so
// tests can assert what was, and was not, refetched.
type fakeBackend struct {
	server *httptest.Server

	mu     sync.Mutex
	counts map[string]int
	routes map[string]http.HandlerFunc
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		counts: make(map[string]int),
		routes: make(map[string]http.HandlerFunc),
	}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.counts[key]++
		handler := b.routes[key]
		b.mu.Unlock()
		if handler == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	return b
}

func (b *fakeBackend) close() {
	b.server.Close()
}

func (b *fakeBackend) handle(method, path string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}
}

func (b *fakeBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[method+" "+path]
}

func (b *fakeBackend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.counts {
		total += n
	}
	return total
}

type stubSessions struct {
	mu         sync.Mutex
	credential string
}

func (s *stubSessions) Login(context.Context, models.Identity, string, time.Time) (string, error) {
	return "console-token", nil
}

func (s *stubSessions) Logout(context.Context) error {
	s.mu.Lock()
	s.credential = ""
	s.mu.Unlock()
	return nil
}

func (s *stubSessions) Current(context.Context) (*models.Session, bool) { return nil, false }

func (s *stubSessions) Credential(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, s.credential != ""
}

func (s *stubSessions) Resolve(context.Context, string) (string, *models.Session, error) {
	return "", nil, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	n.successes = append(n.successes, message)
	n.mu.Unlock()
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	n.failures = append(n.failures, message)
	n.mu.Unlock()
}

type serviceEnv struct {
	backend  *fakeBackend
	cache    caching.CacheService
	notifier *recordingNotifier
	gw       *gateway.Gateway
}

func newServiceEnv() *serviceEnv {
	backend := newFakeBackend()
	cache := caching.NewMemoryCacheService()
	notifier := &recordingNotifier{}
	gw := gateway.New(backend.server.URL, &stubSessions{credential: "backend-token"}, notifier, nil)
	return &serviceEnv{backend: backend, cache: cache, notifier: notifier, gw: gw}
}
