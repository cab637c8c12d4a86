package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	authenticated bool
}

func (s *stubSessions) IsAuthenticated() bool { return s.authenticated }

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": "admin",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := GetUsernameFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "admin", name)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMiddleware(t *testing.T) {
	valid := signToken(t, testSecret, time.Now().Add(time.Hour))

	tests := []struct {
		name          string
		header        string
		authenticated bool
		wantStatus    int
	}{
		{"valid token and active session", "Bearer " + valid, true, http.StatusOK},
		{"missing header", "", true, http.StatusUnauthorized},
		{"not a bearer token", "Basic abc", true, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", true, http.StatusUnauthorized},
		{"expired token", "Bearer " + signToken(t, testSecret, time.Now().Add(-time.Hour)), true, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, []byte("other"), time.Now().Add(time.Hour)), true, http.StatusUnauthorized},
		{"logged out session", "Bearer " + valid, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticate(testSecret, &stubSessions{authenticated: tt.authenticated})(protectedHandler(t))

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
