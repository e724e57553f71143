package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jomadlcrz/class-schedule-backend/internal/middleware"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
)

// stubVerifier accepts exactly one token value.
type stubVerifier struct {
	token    string
	identity service.Identity
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*service.Identity, error) {
	if token != v.token {
		return nil, service.ErrInvalidToken
	}
	identity := v.identity
	return &identity, nil
}

func authTestRouter(verifier service.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.RequireAuth(verifier), func(c *gin.Context) {
		identity := middleware.GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	verifier := &stubVerifier{
		token:    "good-token",
		identity: service.Identity{Email: "alice@example.com", Name: "Alice"},
	}
	r := authTestRouter(verifier)

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"bare token without scheme", "good-token", http.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized},
		{"valid", "Bearer good-token", http.StatusOK},
		{"case-insensitive scheme", "bearer good-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
			if tc.wantStatus == http.StatusUnauthorized &&
				!strings.Contains(w.Body.String(), `"message":"Unauthorized"`) {
				t.Errorf("unexpected 401 body %s", w.Body.String())
			}
			if tc.wantStatus == http.StatusOK &&
				!strings.Contains(w.Body.String(), "alice@example.com") {
				t.Errorf("identity not propagated, body %s", w.Body.String())
			}
		})
	}
}
