//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/internal/handler/api"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"
	resdto "github.com/patas-felizes/grooming-api/internal/handler/dto/response"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"
	apptest "github.com/patas-felizes/grooming-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuthCommands struct {
	loginResult *commands.LoginResult
	loginErr    error
	refreshPair *commands.TokenPair
	refreshErr  error
	createdID   uuid.UUID
	createErr   error
}

func (s *stubAuthCommands) Login(context.Context, string, string) (*commands.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthCommands) RefreshToken(context.Context, string) (*commands.TokenPair, error) {
	return s.refreshPair, s.refreshErr
}

func (s *stubAuthCommands) CreateUser(context.Context, commands.CreateUserRequest) (uuid.UUID, error) {
	return s.createdID, s.createErr
}

type stubUserQueries struct {
	view *queries.AuthorizedUserView
	err  error
}

func (s *stubUserQueries) GetCurrentUser(context.Context, uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.view, s.err
}

type stubTokenValidator struct {
	userID uuid.UUID
	role   user.Role
	err    error
}

func (s *stubTokenValidator) ValidateToken(string) (uuid.UUID, user.Role, error) {
	return s.userID, s.role, s.err
}

func newAuthRouter(cmds commands.AuthCommands, q queries.UserQueries, v *stubTokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := api.NewAuthHandler(cmds, q)
	auth := middleware.NewAuthMiddleware(v)

	r := gin.New()
	r.POST("/api/v1/auth/login", h.Login)
	r.POST("/api/v1/auth/refresh", h.Refresh)
	r.GET("/api/v1/auth/me", auth.RequireAuth(), h.Me)
	return r
}

func TestLoginHandler(t *testing.T) {
	t.Run("returns the token pair on success", func(t *testing.T) {
		userID := uuid.New()
		r := newAuthRouter(&stubAuthCommands{
			loginResult: &commands.LoginResult{
				UserID:    userID,
				TokenPair: &commands.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			},
		}, &stubUserQueries{}, &stubTokenValidator{})

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/auth/login",
			map[string]string{"email": "groomer@example.com", "password": "password123"}, "")

		var body resdto.LoginResponse
		apptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, "access", body.AccessToken)
		assert.Equal(t, userID, body.UserID)
	})

	t.Run("wrong password and unknown email share one message", func(t *testing.T) {
		for _, loginErr := range []error{commands.ErrInvalidCredentials, commands.ErrUserNotFound} {
			r := newAuthRouter(&stubAuthCommands{loginErr: loginErr}, &stubUserQueries{}, &stubTokenValidator{})

			w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/auth/login",
				map[string]string{"email": "groomer@example.com", "password": "wrong-pass"}, "")

			apptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		r := newAuthRouter(&stubAuthCommands{loginErr: commands.ErrUserInactive}, &stubUserQueries{}, &stubTokenValidator{})

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/auth/login",
			map[string]string{"email": "groomer@example.com", "password": "password123"}, "")

		apptest.AssertErrorResponse(t, w, http.StatusForbidden, "inactive")
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newAuthRouter(&stubAuthCommands{}, &stubUserQueries{}, &stubTokenValidator{})

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/auth/login",
			map[string]string{"email": "not-an-email"}, "")

		apptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
	})
}

func TestMeHandler(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		userID := uuid.New()
		r := newAuthRouter(&stubAuthCommands{}, &stubUserQueries{
			view: &queries.AuthorizedUserView{ID: userID, Email: "groomer@example.com", Name: "Ana", Role: "groomer", IsActive: true},
		}, &stubTokenValidator{userID: userID, role: user.RoleGroomer})

		w := apptest.PerformRequest(t, r, http.MethodGet, "/api/v1/auth/me", nil, "sometoken")

		var body resdto.UserResponse
		apptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, "groomer", body.Role)
	})

	t.Run("missing token", func(t *testing.T) {
		r := newAuthRouter(&stubAuthCommands{}, &stubUserQueries{}, &stubTokenValidator{})

		w := apptest.PerformRequest(t, r, http.MethodGet, "/api/v1/auth/me", nil, "")

		apptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})
}
