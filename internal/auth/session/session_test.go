package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(&config.Config{
		OAuth: config.OAuthConfig{
			CookieName: "appSession",
			CookieTTL:  7 * 24 * time.Hour,
		},
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &Session{
		Sub:         "auth0|12345",
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		Picture:     "https://cdn.example.com/ada.png",
		AccessToken: "access-token",
		IDToken:     "id-token",
	}

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not base64", value: "%%%%"},
		{name: "base64 but not JSON", value: "bm90LWpzb24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.value)
			assert.Error(t, err)
		})
	}
}

func TestWriteSetsCookieAttributes(t *testing.T) {
	m := testManager()
	rec := httptest.NewRecorder()

	err := m.Write(rec, &Session{Sub: "auth0|12345"})
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, "appSession", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)
}

func TestClearExpiresCookie(t *testing.T) {
	m := testManager()
	rec := httptest.NewRecorder()

	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "appSession", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestReadNormalizesToNoSession(t *testing.T) {
	m := testManager()

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie", cookie: nil},
		{name: "empty value", cookie: &http.Cookie{Name: "appSession", Value: ""}},
		{name: "undecodable bytes", cookie: &http.Cookie{Name: "appSession", Value: "!!!not-a-session!!!"}},
		{name: "missing subject", cookie: &http.Cookie{Name: "appSession", Value: mustEncode(t, &Session{Name: "nobody"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			s, ok := m.Read(r)
			assert.False(t, ok)
			assert.Nil(t, s)
		})
	}
}

func TestReadReturnsSession(t *testing.T) {
	m := testManager()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Write(rec, &Session{Sub: "auth0|12345", Email: "ada@example.com"}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(rec.Result().Cookies()[0])

	s, ok := m.Read(r)
	require.True(t, ok)
	assert.Equal(t, "auth0|12345", s.Sub)
	assert.Equal(t, "ada@example.com", s.Email)
}

func TestContextRoundTrip(t *testing.T) {
	s := &Session{Sub: "auth0|12345"}
	ctx := NewContext(context.Background(), s)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func mustEncode(t *testing.T, s *Session) string {
	t.Helper()
	encoded, err := s.Encode()
	require.NoError(t, err)
	return encoded
}
