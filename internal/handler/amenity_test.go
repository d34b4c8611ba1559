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

	"github.com/rvillanueva/resort-backoffice/internal/repository"
	"github.com/rvillanueva/resort-backoffice/internal/storage"
)

func TestAmenityListEchoesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	like := "%spa%"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM amenities")).
		WithArgs(like, like, like).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY amenity_name ASC")).
		WithArgs(like, like, like, 15, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"amenity_id", "amenity_name", "description", "price_per_use",
			"image_path", "created_at", "updated_at",
		}).AddRow(1, "Spa", "Full day spa", 1500.0, "", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SUM(price_per_use > 1000)")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "premium"}).AddRow(8, 8, 2))

	h := NewAmenityHandler(repository.NewAmenityRepo(db),
		storage.NewLocalStore(t.TempDir(), "/storage"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/amenities?search=spa", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Filters map[string]string `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"search": "spa"}, body.Filters)
	assert.NoError(t, mock.ExpectationsWereMet())
}
