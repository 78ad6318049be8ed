//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	role   user.Role
	err    error
}

func (s *stubValidator) ValidateToken(string) (uuid.UUID, user.Role, error) {
	return s.userID, s.role, s.err
}

func newRouter(v *stubValidator, minRole user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := middleware.NewAuthMiddleware(v)
	r := gin.New()
	handlers := []gin.HandlerFunc{m.RequireAuth()}
	if minRole != "" {
		handlers = append(handlers, m.RequireRoleAtLeast(minRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": string(role)})
	})
	r.GET("/protected", handlers...)
	return r
}

func perform(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid bearer token passes identity to the handler", func(t *testing.T) {
		userID := uuid.New()
		r := newRouter(&stubValidator{userID: userID, role: user.RoleGroomer}, "")

		w := perform(r, "Bearer sometoken")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header", func(t *testing.T) {
		r := newRouter(&stubValidator{}, "")

		w := perform(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		r := newRouter(&stubValidator{}, "")

		w := perform(r, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		r := newRouter(&stubValidator{err: errors.New("expired")}, "")

		w := perform(r, "Bearer expiredtoken")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	cases := []struct {
		name     string
		userRole user.Role
		minRole  user.Role
		want     int
	}{
		{"groomer meets groomer gate", user.RoleGroomer, user.RoleGroomer, http.StatusOK},
		{"groomer blocked by manager gate", user.RoleGroomer, user.RoleManager, http.StatusForbidden},
		{"manager meets manager gate", user.RoleManager, user.RoleManager, http.StatusOK},
		{"manager blocked by admin gate", user.RoleManager, user.RoleAdmin, http.StatusForbidden},
		{"admin passes every gate", user.RoleAdmin, user.RoleGroomer, http.StatusOK},
		{"unknown role is rejected", user.Role("intern"), user.RoleGroomer, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&stubValidator{userID: uuid.New(), role: tc.userRole}, tc.minRole)

			w := perform(r, "Bearer sometoken")
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
