package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accommodationRowsHeader = []string{
	"accommodation_id", "accommodation_name", "description", "capacity",
	"price_per_night", "availability_status", "image_url", "created_at", "updated_at",
}

func accommodationRow(id int, name string) *sqlmock.Rows {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(accommodationRowsHeader).
		AddRow(id, name, "A lovely unit", 4, 18000.0, "available", "", now, now)
}

func TestAccommodationListTextSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	like := "%villa%"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM accommodations")).
		WithArgs(like, like, like).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY accommodation_name ASC, accommodation_id ASC")).
		WithArgs(like, like, like, 10, 0).
		WillReturnRows(accommodationRow(1, "Beach Villa"))

	repo := NewAccommodationRepo(db)
	out, page, err := repo.List(context.Background(), AccommodationQuery{
		Search: "Villa", Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), page.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccommodationListNumericSearchAddsExactBranches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	like := "%18000%"
	mock.ExpectQuery(regexp.QuoteMeta("capacity = ?")).
		WithArgs(like, like, like, "18000", "18000").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("price_per_night = ?")).
		WithArgs(like, like, like, "18000", "18000", 10, 0).
		WillReturnRows(sqlmock.NewRows(accommodationRowsHeader))

	repo := NewAccommodationRepo(db)
	out, page, err := repo.List(context.Background(), AccommodationQuery{
		Search: "18000", Page: 3, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, out, "a page past the end is empty, not an error")
	assert.Equal(t, 0, page.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccommodationListStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("availability_status = ?")).
		WithArgs("maintenance").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("availability_status = ?")).
		WithArgs("maintenance", 10, 0).
		WillReturnRows(accommodationRow(2, "Garden Cabin"))

	repo := NewAccommodationRepo(db)
	out, _, err := repo.List(context.Background(), AccommodationQuery{
		Status: "maintenance", Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccommodationStatsSingleScan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM accommodations")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "available", "occupied", "maintenance"}).
			AddRow(12, 7, 3, 2))

	repo := NewAccommodationRepo(db)
	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AccommodationStats{Total: 12, Available: 7, Occupied: 3, Maintenance: 2}, s)
}

func TestAccommodationDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accommodations")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAccommodationRepo(db)
	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAccommodationNotFound)
}

func TestGetAvailableByIDHidesUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The row exists but its status is not available, so the query matches
	// nothing and the caller sees not-found.
	mock.ExpectQuery(regexp.QuoteMeta("availability_status = 'available'")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(accommodationRowsHeader))

	repo := NewAccommodationRepo(db)
	_, err = repo.GetAvailableByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAccommodationNotFound)
}
