package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/savingsadmin/internal/client/client"
	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/client/session"
	"github.com/dmitrijs2005/savingsadmin/internal/logging"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	mu    sync.Mutex
	pages []client.Page
}

func (r *recordingNavigator) Navigate(p client.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, p)
}

func (r *recordingNavigator) Pages() []client.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.Page(nil), r.pages...)
}

type hit struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// backend routes "METHOD /path" to canned handlers and records every hit.
type backend struct {
	mu     sync.Mutex
	hits   []hit
	routes map[string]http.HandlerFunc
	srv    *httptest.Server
}

func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *backend {
	t.Helper()
	b := &backend{routes: routes}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.hits = append(b.hits, hit{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		h, ok := b.routes[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) Hits() []hit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]hit(nil), b.hits...)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

type fixture struct {
	backend *backend
	store   *session.MemoryStore
	nav     *recordingNavigator
	auth    AuthService
	admin   AdminService
}

func newFixture(t *testing.T, routes map[string]http.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{
		backend: newBackend(t, routes),
		store:   session.NewMemoryStore(),
		nav:     &recordingNavigator{},
	}
	api := client.New(f.backend.srv.URL, f.store, f.nav)
	f.auth = NewAuthService(api, f.store, f.nav, logging.Nop())
	f.admin = NewAdminService(api, f.nav, logging.Nop())
	return f
}

func (f *fixture) signIn(t *testing.T, role string) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), models.Session{
		Token:   "tok-1",
		Profile: models.Profile{ID: 1, Email: "ann@example.org", Name: "Ann", Role: role, IsActive: true},
	}))
}

const authOK = `{"access_token":"tok-new","token_type":"bearer","user":{"id":7,"email":"bob@example.org","name":"Bob","picture":"","role":"user","is_active":1}}`
