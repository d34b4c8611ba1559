package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role any, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runWithRole(t, "admin", RequireRole("admin", "employee"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runWithRole(t, "employee", RequireRole("admin", "employee"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejects(t *testing.T) {
	rec := runWithRole(t, "customer", RequireRole("admin", "employee"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingClaim(t *testing.T) {
	rec := runWithRole(t, nil, RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsNonStringClaim(t *testing.T) {
	rec := runWithRole(t, 42, RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
