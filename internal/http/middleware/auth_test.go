package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/auth"
	"github.com/Dev-MiMi/expensetracker/internal/http/middleware"
	"github.com/Dev-MiMi/expensetracker/internal/user"
)

func TestRequireAuth(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	u := &user.User{ID: uuid.New(), Username: "frank"}

	pair, err := mgr.GeneratePair(u)
	require.NoError(t, err)

	var gotOwner uuid.UUID

	handler := middleware.RequireAuth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.OwnerID(r.Context())
		require.True(t, ok)
		gotOwner = id
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + pair.Access, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + pair.Refresh, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, u.ID, gotOwner)
			}
		})
	}
}
