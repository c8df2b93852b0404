package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryansgue/scanela-sub001/internal/middleware"
	"github.com/bryansgue/scanela-sub001/pkg/jwtutil"
)

func callWithAuth(t *testing.T, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uuid.UUID
	var reached bool
	h := middleware.AuthMiddleware(func(c echo.Context) error {
		gotID, reached = middleware.GetUserIDFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, gotID, reached
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := jwtutil.GenerateToken("owner@example.com", userID)
	require.NoError(t, err)

	rec, gotID, reached := callWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, userID, gotID)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec, _, reached := callWithAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	rec, _, reached := callWithAuth(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	rec, _, reached := callWithAuth(t, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}
