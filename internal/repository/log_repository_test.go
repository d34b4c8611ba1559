package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/pagination"
)

var logListColumns = []string{
	"log_id", "user_id", "action", "created_at",
	"u_user_id", "full_name", "email", "role",
}

func TestNormalizeLogSort(t *testing.T) {
	tests := []struct {
		field, dir         string
		wantField, wantDir string
	}{
		{"created_at", "asc", "created_at", "asc"},
		{"id", "desc", "id", "desc"},
		{"action", "ASC", "action", "asc"},
		{"password", "asc", "created_at", "asc"},
		{"", "", "created_at", "desc"},
		{"created_at", "sideways", "created_at", "desc"},
	}
	for _, tt := range tests {
		f, d := NormalizeLogSort(tt.field, tt.dir)
		assert.Equal(t, tt.wantField, f, "field %q", tt.field)
		assert.Equal(t, tt.wantDir, d, "dir %q", tt.dir)
	}
}

func TestLogListCustomerForbidden(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLogRepo(db)
	_, _, err = repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleCustomer,
		SortField:  "created_at", SortDir: "desc", Limit: 20,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = repo.List(context.Background(), LogQuery{
		ViewerRole: "", SortField: "created_at", SortDir: "desc", Limit: 20,
	})
	assert.ErrorIs(t, err, ErrForbidden, "missing role is refused too")
}

func TestLogListAdminVisibility(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(logListColumns).
		AddRow(3, 9, "Created amenity: Spa", now, 9, "Jane Roe", "jane@example.com", "employee").
		AddRow(2, nil, "Nightly cleanup", now.Add(-time.Hour), nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("u.role IN (?,?) OR l.user_id IS NULL")).
		WithArgs(model.RoleEmployee, model.RoleCustomer, 21).
		WillReturnRows(rows)

	repo := NewLogRepo(db)
	out, win, err := repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleAdmin,
		SortField:  "created_at", SortDir: "desc", Limit: 20,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.NotNil(t, out[0].User)
	assert.Nil(t, out[1].User, "system row joins no user")
	assert.Nil(t, out[1].Log.UserID)

	assert.Nil(t, win.NextCursor, "no extra row fetched")
	assert.Nil(t, win.PrevCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogListEmployeeSeesCustomersOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("u.role = ?")).
		WithArgs(model.RoleCustomer, 21).
		WillReturnRows(sqlmock.NewRows(logListColumns))

	repo := NewLogRepo(db)
	out, _, err := repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleEmployee,
		SortField:  "created_at", SortDir: "desc", Limit: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogListFiltersCompose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("LOWER(l.action) LIKE ?")).
		WithArgs(model.RoleEmployee, model.RoleCustomer, "42", "%login%", "2026-08-01", "2026-08-30", 21).
		WillReturnRows(sqlmock.NewRows(logListColumns))

	repo := NewLogRepo(db)
	_, _, err = repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleAdmin,
		UserID:     "42",
		Search:     "Login",
		DateFrom:   "2026-08-01",
		DateTo:     "2026-08-30",
		SortField:  "created_at", SortDir: "desc", Limit: 20,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogListExtraRowMintsNextCursor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(logListColumns)
	for i := 5; i >= 3; i-- { // limit 2, one extra
		rows.AddRow(i, nil, "Action", now, nil, nil, nil, nil)
	}
	mock.ExpectQuery("FROM activity_logs").
		WithArgs(model.RoleEmployee, model.RoleCustomer, 3).
		WillReturnRows(rows)

	repo := NewLogRepo(db)
	out, win, err := repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleAdmin,
		SortField:  "created_at", SortDir: "desc", Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, out, 2, "the probe row is trimmed from the window")

	require.NotNil(t, win.NextCursor)
	cur, err := pagination.DecodeCursor(*win.NextCursor, "created_at", "desc")
	require.NoError(t, err)
	assert.Equal(t, out[1].Log.ID, cur.ID, "next cursor pins the last visible row")
	assert.Equal(t, pagination.Next, cur.Point)
	assert.Nil(t, win.PrevCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogListKeysetConditionWithTieBreak(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cur := &pagination.Cursor{
		SortField: "created_at", SortDir: "desc",
		Value: "2026-08-30 12:00:00", ID: 40, Point: pagination.Next,
	}
	mock.ExpectQuery(regexp.QuoteMeta("(l.created_at < ? OR (l.created_at = ? AND l.log_id < ?))")).
		WithArgs(model.RoleEmployee, model.RoleCustomer, cur.Value, cur.Value, cur.ID, 21).
		WillReturnRows(sqlmock.NewRows(logListColumns))

	repo := NewLogRepo(db)
	_, win, err := repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleAdmin,
		SortField:  "created_at", SortDir: "desc",
		Cursor:     cur, Limit: 20,
	})
	require.NoError(t, err)
	assert.Nil(t, win.NextCursor, "window is empty past the cursor")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogListIDSortUsesPlainComparison(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cur := &pagination.Cursor{
		SortField: "id", SortDir: "asc", Value: "40", ID: 40, Point: pagination.Next,
	}
	mock.ExpectQuery(regexp.QuoteMeta("l.log_id > ?")).
		WithArgs(model.RoleEmployee, model.RoleCustomer, cur.ID, 21).
		WillReturnRows(sqlmock.NewRows(logListColumns))

	repo := NewLogRepo(db)
	_, _, err = repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleAdmin,
		SortField:  "id", SortDir: "asc",
		Cursor:     cur, Limit: 20,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogListPrevPageScansReversedThenFlips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	// Scanning toward the beginning under desc means the SQL runs asc, so
	// rows arrive nearest-first: 41, 42, 43.
	rows := sqlmock.NewRows(logListColumns)
	for _, id := range []int{41, 42, 43} {
		rows.AddRow(id, nil, "Action", now, nil, nil, nil, nil)
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY l.created_at asc, l.log_id asc")).
		WithArgs(model.RoleEmployee, model.RoleCustomer, "2026-08-30 12:00:00", "2026-08-30 12:00:00", uint64(40), 3).
		WillReturnRows(rows)

	repo := NewLogRepo(db)
	out, win, err := repo.List(context.Background(), LogQuery{
		ViewerRole: model.RoleAdmin,
		SortField:  "created_at", SortDir: "desc",
		Cursor: &pagination.Cursor{
			SortField: "created_at", SortDir: "desc",
			Value: "2026-08-30 12:00:00", ID: 40, Point: pagination.Prev,
		},
		Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(42), out[0].Log.ID, "window is flipped back into desc order")
	assert.Equal(t, uint64(41), out[1].Log.ID)

	assert.NotNil(t, win.NextCursor, "came from ahead, so rows exist after")
	assert.NotNil(t, win.PrevCursor, "the probe row shows more before")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uint64(7)
	at := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO activity_logs")).
		WithArgs(uid, "Created user: Jane Roe (employee)", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewLogRepo(db)
	require.NoError(t, repo.Insert(context.Background(), &uid, "Created user: Jane Roe (employee)", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
