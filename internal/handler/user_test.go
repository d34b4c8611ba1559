package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvillanueva/resort-backoffice/internal/config"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
)

func TestUserListEchoesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FIELD(role, 'admin', 'employee', 'customer')")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "full_name", "username", "email", "password_hash",
			"role", "avatar_path", "created_at", "updated_at",
		}).AddRow(1, "John Doe", "johndoe", "john@example.com", "x", "admin", "", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("admin", "employee", "customer").
		WillReturnRows(sqlmock.NewRows([]string{"total", "admins", "employees", "customers"}).
			AddRow(1, 1, 0, 0))

	h := NewUserHandler(config.Config{}, repository.NewUserRepo(db),
		repository.DefaultUserColumns(), nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users?sort=role", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Filters map[string]string `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"search": "", "sort": "role"}, body.Filters)
	assert.NoError(t, mock.ExpectationsWereMet())
}
