package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Dosada05/football-standings/models"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func protected(roles ...models.UserRole) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-User-ID", strconv.Itoa(id))
		w.WriteHeader(http.StatusNoContent)
	})
	return Authenticate(testSecret, logger)(Authorize(roles...)(final))
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	valid := jwt.MapClaims{"user_id": float64(7), "role": "organizer", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name   string
		header string
		roles  []models.UserRole
		want   int
	}{
		{"no header", "", []models.UserRole{models.RoleOrganizer}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", []models.UserRole{models.RoleOrganizer}, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", []models.UserRole{models.RoleOrganizer}, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", valid), []models.UserRole{models.RoleOrganizer}, http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": float64(7), "role": "organizer", "exp": time.Now().Add(-time.Hour).Unix()}), []models.UserRole{models.RoleOrganizer}, http.StatusUnauthorized},
		{"role not allowed", "Bearer " + signToken(t, testSecret, valid), []models.UserRole{models.RoleAdmin}, http.StatusForbidden},
		{"unknown role claim", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": float64(7), "role": "referee"}), []models.UserRole{models.RoleAdmin}, http.StatusUnauthorized},
		{"allowed", "Bearer " + signToken(t, testSecret, valid), []models.UserRole{models.RoleAdmin, models.RoleOrganizer}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tournaments/1/standings/publish", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected(tt.roles...).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestGetUserIDFromContext_StringClaim(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"user_id": "12", "role": "admin"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	var got int
	h := Authenticate(testSecret, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = GetUserIDFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserIDFromContext: %v", err)
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != 12 {
		t.Fatalf("user id = %d, want 12", got)
	}
}
