package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/startupquest/quest-api/internal/config"
	"github.com/startupquest/quest-api/internal/domain/badge"
	"github.com/startupquest/quest-api/internal/pkg/jwt"
)

func newTestRouter(t *testing.T) (http.Handler, *jwt.Service) {
	t.Helper()
	cfg := &config.Config{AllowedOrigins: []string{"http://localhost:5173"}}
	jwtSvc := jwt.NewService("test-secret", time.Minute)
	// catalog and auth routes never reach the repository
	h := badge.NewHandler(badge.NewService(nil, nil))
	health := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	return newRouter(cfg, jwtSvc, h, health), jwtSvc
}

func TestRouterMountsBadgeRoutes(t *testing.T) {
	r, jwtSvc := newTestRouter(t)
	token, err := jwtSvc.GenerateAccessToken(uuid.New(), jwt.RoleFounder)
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"ping", http.MethodGet, "/api/v1/ping", "", http.StatusOK},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"badges require auth", http.MethodGet, "/api/v1/badges", "", http.StatusUnauthorized},
		{"catalog", http.MethodGet, "/api/v1/badges/types", token, http.StatusOK},
		{"founder cannot report outcome", http.MethodPost, "/api/v1/badges/" + uuid.NewString() + "/outcome", token, http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v2/badges", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("expected status %d, got %d (%s)", tt.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/badges", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}
