package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ManageMyLunchAPI/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProtected(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, *Claims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *Claims
	handler := func(c echo.Context) error {
		seen = GetClaims(c)
		return c.NoContent(http.StatusOK)
	}
	chain := handler
	for i := len(mws) - 1; i >= 0; i-- {
		chain = mws[i](chain)
	}
	require.NoError(t, JWTMiddleware()(chain)(c))
	return rec, seen
}

// Handlers behind the middleware dereference the claims without a nil check;
// a handler must never run without them attached.
func TestJWTMiddlewareAlwaysSetsClaims(t *testing.T) {
	token, err := GenerateToken(7, "student@uni.ac.nz", model.RoleStudent, 1)
	require.NoError(t, err)

	rec, claims := runProtected(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestJWTMiddlewareRejectsBadTokens(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, claims := runProtected(t, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, claims)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	restaurant, err := GenerateToken(3, "kitchen@sushi.town", model.RoleRestaurant, 1)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+restaurant, RestaurantOnly)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = runProtected(t, "Bearer "+restaurant, ManagerOnly)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
