package crm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	crm "github.com/goliatone/go-crm-client"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
)

// backend is a scriptable fake of the CRM REST API. Handlers default to 401
// for identity and 500 elsewhere so tests only wire what they exercise.
type backend struct {
	mu sync.Mutex

	identity func(w http.ResponseWriter, r *http.Request)
	login    func(w http.ResponseWriter, r *http.Request)
	logout   func(w http.ResponseWriter, r *http.Request)
	other    func(w http.ResponseWriter, r *http.Request)

	identityCalls int
	loginCalls    int
	logoutCalls   int

	srv *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.identityCalls++
		handler := b.identity
		b.mu.Unlock()

		if handler == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no session"})
			return
		}
		handler(w, r)
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.loginCalls++
		handler := b.login
		b.mu.Unlock()

		if handler == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
			return
		}
		handler(w, r)
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.logoutCalls++
		handler := b.logout
		b.mu.Unlock()

		if handler == nil {
			writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
			return
		}
		handler(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		handler := b.other
		b.mu.Unlock()

		if handler == nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "not scripted"})
			return
		}
		handler(w, r)
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)

	return b
}

func (b *backend) config() *crm.BaseConfig {
	return &crm.BaseConfig{BaseURL: b.srv.URL}
}

// serveIdentity scripts the identity endpoint with a fixed 200 body
func (b *backend) serveIdentity(body map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.identity = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

// serveLogin scripts the login endpoint with a fixed 200 body
func (b *backend) serveLogin(body map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.login = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

// serveOther scripts the catch-all handler
func (b *backend) serveOther(fn func(w http.ResponseWriter, r *http.Request)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.other = fn
}

func (b *backend) identityCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identityCalls
}

func (b *backend) loginCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loginCalls
}

func (b *backend) logoutCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.logoutCalls
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// adminIdentity is the stock admin identity body tests reuse
func adminIdentity() map[string]any {
	return map[string]any{
		"id":       42,
		"name":     "Ana Torres",
		"roleName": "admin",
		"permisos": []map[string]any{
			{"modulo": "ventas", "accion": "crear", "granted": true},
			{"modulo": "ventas", "accion": "editar", "granted": false},
		},
	}
}

// failingTokenStore errors on every operation
type failingTokenStore struct{}

func (f failingTokenStore) Get(ctx context.Context) (string, error) {
	return "", errors.New("storage unavailable")
}

func (f failingTokenStore) Set(ctx context.Context, token string) error {
	return errors.New("storage unavailable")
}

func (f failingTokenStore) Clear(ctx context.Context) error {
	return errors.New("storage unavailable")
}

// quietLogger swallows output so failure-path tests do not spam the console
type quietLogger struct{}

func (quietLogger) Debug(format string, args ...any) {}
func (quietLogger) Info(format string, args ...any)  {}
func (quietLogger) Warn(format string, args ...any)  {}
func (quietLogger) Error(format string, args ...any) {}

// MockContext mocks router.Context
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}

func newTestClient(t *testing.T, b *backend) (*crm.Client, *crm.MemoryTokenStore) {
	t.Helper()
	tokens := crm.NewMemoryTokenStore()
	client := crm.NewClient(b.config(), tokens, crm.WithClientLogger(quietLogger{}))
	return client, tokens
}

func newTestSession(t *testing.T, b *backend) (*crm.SessionStore, *crm.MemoryTokenStore) {
	t.Helper()
	client, tokens := newTestClient(t, b)
	session := crm.NewSessionStore(client, b.config(), crm.WithSessionLogger(quietLogger{}))
	return session, tokens
}
