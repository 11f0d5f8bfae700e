package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stayfinder/stayfinder/internal/auth"
	"github.com/stayfinder/stayfinder/internal/auth/providers"
	"github.com/stayfinder/stayfinder/internal/auth/session"
	"github.com/stayfinder/stayfinder/internal/bookings"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stayfinder/stayfinder/internal/hotels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()

	cfg := &config.Config{
		OAuth: config.OAuthConfig{
			Provider:     config.ProviderAuth0,
			Domain:       "tenant.auth0.example.com",
			ClientID:     "test-client-id",
			ClientSecret: "test-client-secret",
			BaseURL:      "http://localhost:3000",
			Scopes:       []string{"openid", "profile", "email"},
			CookieName:   "appSession",
			CookieTTL:    7 * 24 * time.Hour,
		},
	}

	catalog, err := hotels.NewCatalog()
	require.NoError(t, err)

	sessions := session.NewManager(cfg)
	provider := providers.NewAuth0ProviderForIssuer(&cfg.OAuth, "https://tenant.auth0.example.com")
	authService := auth.NewService(cfg, provider, sessions)
	bookingService := bookings.NewService(cfg, catalog)

	return NewServer(cfg, authService, hotels.NewHandler(catalog), bookings.NewHandler(bookingService)), sessions
}

func sessionCookie(t *testing.T, sessions *session.Manager) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Write(rec, &session.Session{Sub: "auth0|12345"}))
	return rec.Result().Cookies()[0]
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestErrorPageEchoesParams(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/error?error=access_denied&error_description=user+cancelled", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"access_denied","error_description":"user cancelled"}`, rec.Body.String())
}

func TestRootServiceInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stayfinder")
}

func TestHotelRoutesAreOpen(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []string{"/api/hotels", "/api/hotels/1", "/api/hotels/1/rooms"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestBookingRoutesRequireSession(t *testing.T) {
	srv, sessions := newTestServer(t)
	handler := srv.Handler()

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/bookings"},
		{method: http.MethodGet, path: "/api/bookings/BK001"},
		{method: http.MethodDelete, path: "/api/bookings/BK001"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.AddCookie(sessionCookie(t, sessions))
			rec = httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestCheckoutOverHTTP(t *testing.T) {
	srv, sessions := newTestServer(t)

	body := `{"hotel_id":1,"room_id":2,"check_in":"2026-10-01","check_out":"2026-10-04","guests":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.AddCookie(sessionCookie(t, sessions))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Savoy London")
	assert.Contains(t, rec.Body.String(), "896.4")
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("foreign origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoginRedirectsToProvider(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "tenant.auth0.example.com/authorize")
}
