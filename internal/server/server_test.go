package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo is an in-memory ResumeRepository.
type mockRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*db.ResumeRecord
	pingErr error
	failErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*db.ResumeRecord)}
}

func (m *mockRepo) put(ownerEmail string, doc types.Resume) uuid.UUID {
	data, _ := json.Marshal(doc)
	return m.putRaw(ownerEmail, data)
}

func (m *mockRepo) putRaw(ownerEmail string, data []byte) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	m.records[id] = &db.ResumeRecord{ID: id, OwnerEmail: ownerEmail, Document: data, CreatedAt: now, UpdatedAt: now}
	return id
}

func (m *mockRepo) SaveResume(_ context.Context, owner string, id *uuid.UUID, doc types.Resume) (uuid.UUID, error) {
	if m.failErr != nil {
		return uuid.Nil, m.failErr
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if id == nil {
		newID := uuid.New()
		m.records[newID] = &db.ResumeRecord{ID: newID, OwnerEmail: owner, Title: db.DeriveTitle(doc), Document: data, CreatedAt: now, UpdatedAt: now}
		return newID, nil
	}
	record, ok := m.records[*id]
	if !ok || record.OwnerEmail != owner {
		return uuid.Nil, &db.NotFoundError{ID: *id}
	}
	record.Document = data
	record.Title = db.DeriveTitle(doc)
	record.UpdatedAt = now
	return *id, nil
}

func (m *mockRepo) GetResume(_ context.Context, id uuid.UUID) (*db.ResumeRecord, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *mockRepo) GetSharedResume(_ context.Context, token string) (*db.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.ShareEnabled && record.ShareToken != nil && *record.ShareToken == token {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListResumes(_ context.Context, owner string) ([]db.ResumeSummary, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	summaries := []db.ResumeSummary{}
	for _, record := range m.records {
		if record.OwnerEmail == owner {
			summaries = append(summaries, db.ResumeSummary{ID: record.ID, Title: record.Title, ShareEnabled: record.ShareEnabled})
		}
	}
	return summaries, nil
}

func (m *mockRepo) DeleteResume(_ context.Context, owner string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok || record.OwnerEmail != owner {
		return &db.NotFoundError{ID: id}
	}
	delete(m.records, id)
	return nil
}

func (m *mockRepo) SetShare(_ context.Context, owner string, id uuid.UUID, enabled bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok || record.OwnerEmail != owner {
		return "", &db.NotFoundError{ID: id}
	}
	record.ShareEnabled = enabled
	if enabled && record.ShareToken == nil {
		token := "tok-" + id.String()[:8]
		record.ShareToken = &token
	}
	if !enabled {
		return "", nil
	}
	return *record.ShareToken, nil
}

func (m *mockRepo) Ping(context.Context) error {
	return m.pingErr
}

// fakePrinter returns a marker PDF and remembers the HTML it was given.
type fakePrinter struct {
	mu   sync.Mutex
	html string
	err  error
}

func (p *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type testServer struct {
	*Server
	repo    *mockRepo
	printer *fakePrinter
	jwt     *JWTService
	logs    *test.Hook
}

func newTestServer(t *testing.T, opts ...func(*Options)) *testServer {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	jwtService := setupTestJWTService(t, 1)
	options := Options{
		PublicBaseURL: "https://cv.example.com/",
		Tokens:        jwtService.AsTokenValidator(),
		RateLimit:     &ratelimit.Config{Enabled: false},
		Log:           log,
	}
	for _, opt := range opts {
		opt(&options)
	}

	repo := newMockRepo()
	printer := &fakePrinter{}
	s := New(repo, printer, options)
	t.Cleanup(s.rateLimiter.Stop)

	return &testServer{Server: s, repo: repo, printer: printer, jwt: jwtService, logs: hook}
}

func (ts *testServer) tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(types.Identity{Email: email, Name: "Test User"})
	require.NoError(t, err)
	return token
}

// do sends a request through the full middleware chain. An empty email
// sends no Authorization header.
func (ts *testServer) do(t *testing.T, method, path, email string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+ts.tokenFor(t, email))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	s := newTestServer(t)
	s.repo.pingErr = errors.New("connection refused")

	w := s.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}

func TestMeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/me", "ada@example.com", nil)

	require.Equal(t, http.StatusOK, w.Code)
	identity := decodeJSON[types.Identity](t, w)
	assert.Equal(t, types.Identity{Email: "ada@example.com", Name: "Test User"}, identity)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/me"},
		{http.MethodGet, "/resumes"},
		{http.MethodPost, "/resumes"},
		{http.MethodGet, "/resumes/" + id},
		{http.MethodPut, "/resumes/" + id},
		{http.MethodDelete, "/resumes/" + id},
		{http.MethodPost, "/resumes/" + id + "/share"},
		{http.MethodGet, "/resumes/" + id + "/pdf"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := s.do(t, route.method, route.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodOptions, "/resumes", "", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimit_PDFExport(t *testing.T) {
	s := newTestServer(t, func(o *Options) {
		o.RateLimit = &ratelimit.Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			EndpointConfigs: ratelimit.DefaultEndpointConfigs(30),
		}
	})
	id := s.repo.put("ada@example.com", types.Resume{FirstName: "Ada"})

	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodGet, "/resumes/"+id.String()+"/pdf", "ada@example.com", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "30", w.Header().Get("X-RateLimit-Limit"))
	}

	w := s.do(t, http.MethodGet, "/resumes/"+id.String()+"/pdf", "ada@example.com", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	body := decodeJSON[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", body["error"])
}

func TestLoggingMiddleware(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/health", "", nil)

	var found bool
	for _, entry := range s.logs.AllEntries() {
		if entry.Message == "request completed" {
			found = true
			assert.Equal(t, "/health", entry.Data["path"])
			assert.Equal(t, http.StatusOK, entry.Data["status"])
		}
	}
	assert.True(t, found)
}

func TestLoggingMiddleware_ServerErrorsWarn(t *testing.T) {
	s := newTestServer(t)
	s.repo.failErr = errors.New("pool closed")

	w := s.do(t, http.MethodGet, "/resumes", "ada@example.com", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	var levels []logrus.Level
	for _, entry := range s.logs.AllEntries() {
		if strings.Contains(entry.Message, "request failed") {
			levels = append(levels, entry.Level)
		}
	}
	assert.Contains(t, levels, logrus.ErrorLevel)
	assert.Contains(t, levels, logrus.WarnLevel)
}

func TestShutdown(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}
