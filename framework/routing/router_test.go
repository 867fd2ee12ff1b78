package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validation/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New()
	r.Get("/rules", okHandler)
	r.Post("/validate", okHandler)
	r.Put("/rulesets/{name}", okHandler)
	r.Delete("/rulesets/{name}", okHandler)

	tests := []struct {
		method, path string
	}{
		{http.MethodGet, "/rules"},
		{http.MethodPost, "/validate"},
		{http.MethodPut, "/rulesets/signup"},
		{http.MethodDelete, "/rulesets/signup"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, do(t, r, tt.method, tt.path).Code)
		})
	}

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodPost, "/rules").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/missing").Code)
}

func TestRouter_Handle(t *testing.T) {
	r := routing.New()
	r.Handle("/metrics", http.HandlerFunc(okHandler))

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/metrics").Code)
}

// ── Groups & Prefixes ─────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New()
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Post("/validate/{ruleset}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(routing.Param(req, "ruleset")))
		})
	})

	rr := do(t, r, http.MethodPost, "/api/v1/validate/signup")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "signup", rr.Body.String())
}

func TestRouter_GroupMiddleware(t *testing.T) {
	r := routing.New()
	r.Get("/public", okHandler)
	r.Group(func(g *routing.Router) {
		g.Middleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			})
		})
		g.Get("/private", okHandler)
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/public").Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/private").Code)
}

// ── Middleware ────────────────────────────────────────────────────────────────

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New()
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/boom").Code)
}

func TestRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := routing.New(routing.WithLogger(log))
	r.Get("/rules", okHandler)
	do(t, r, http.MethodGet, "/rules")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"path":"/rules"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"request_id"`)
}

func TestRouter_Handler(t *testing.T) {
	r := routing.New()
	r.Get("/", okHandler)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
