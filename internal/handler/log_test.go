package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/pagination"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
)

func logRequest(t *testing.T, h *LogHandler, role, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/logs"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", role)
	require.NoError(t, h.List(c))
	return rec
}

func TestLogListHandlerBadDates(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewLogHandler(repository.NewLogRepo(db))

	rec := logRequest(t, h, model.RoleAdmin, "?date_from=08/30/2026")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = logRequest(t, h, model.RoleAdmin, "?date_to=not-a-date")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogListHandlerBadCursor(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewLogHandler(repository.NewLogRepo(db))

	rec := logRequest(t, h, model.RoleAdmin, "?cursor=%21%21garbage")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogListHandlerCursorSortMismatch(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewLogHandler(repository.NewLogRepo(db))

	// Cursor minted under an action/asc ordering, replayed against the
	// default created_at/desc request.
	tok := pagination.Cursor{
		SortField: "action", SortDir: "asc", Value: "Login", ID: 3, Point: pagination.Next,
	}.Encode()
	rec := logRequest(t, h, model.RoleAdmin, "?cursor="+tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "sort")
}

func TestLogListHandlerForbiddenRole(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewLogHandler(repository.NewLogRepo(db))

	rec := logRequest(t, h, model.RoleCustomer, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogListHandlerBadLimit(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewLogHandler(repository.NewLogRepo(db))

	rec := logRequest(t, h, model.RoleAdmin, "?limit=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = logRequest(t, h, model.RoleAdmin, "?limit=lots")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogListHandlerHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewLogHandler(repository.NewLogRepo(db))

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"log_id", "user_id", "action", "created_at",
		"u_user_id", "full_name", "email", "role",
	}).AddRow(1, 9, "Login", now, 9, "Jane Roe", "jane@example.com", "customer")
	mock.ExpectQuery("FROM activity_logs").WillReturnRows(rows)

	rec := logRequest(t, h, model.RoleEmployee, "?search=login")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Logs []struct {
			ID     uint64 `json:"id"`
			Action string `json:"action"`
			User   *struct {
				FullName string `json:"full_name"`
			} `json:"user"`
		} `json:"logs"`
		Pagination struct {
			Limit      int     `json:"limit"`
			NextCursor *string `json:"next_cursor"`
			SortField  string  `json:"sort_field"`
			SortDir    string  `json:"sort_dir"`
		} `json:"pagination"`
		Filters map[string]string `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Logs, 1)
	assert.Equal(t, "Login", body.Logs[0].Action)
	require.NotNil(t, body.Logs[0].User)
	assert.Equal(t, "Jane Roe", body.Logs[0].User.FullName)
	assert.Equal(t, 20, body.Pagination.Limit)
	assert.Nil(t, body.Pagination.NextCursor)
	assert.Equal(t, "created_at", body.Pagination.SortField)
	assert.Equal(t, "desc", body.Pagination.SortDir)

	// Active filters come back with the page so the next request can carry
	// them forward unchanged.
	assert.Equal(t, map[string]string{
		"search": "login", "user_id": "", "date_from": "", "date_to": "",
	}, body.Filters)
}
