package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/pagination"
)

// logSortColumns maps the accepted sort fields to their SQL columns.  Any
// requested field outside this set silently falls back to created_at; the
// fallback is a deliberate safe default for a non-critical parameter, not an
// error.
var logSortColumns = map[string]string{
	"id":         "l.log_id",
	"action":     "l.action",
	"created_at": "l.created_at",
}

// NormalizeLogSort applies the sort allow-lists: field outside
// {id, action, created_at} becomes created_at, direction outside {asc, desc}
// becomes desc.
func NormalizeLogSort(field, dir string) (string, string) {
	if _, ok := logSortColumns[field]; !ok {
		field = "created_at"
	}
	dir = strings.ToLower(dir)
	if dir != "asc" && dir != "desc" {
		dir = "desc"
	}
	return field, dir
}

// LogQuery carries the validated parameters of one activity-log listing
// request.  SortField and SortDir must already be normalized; DateFrom and
// DateTo must already be valid calendar dates.
type LogQuery struct {
	ViewerRole string
	UserID     string // exact user filter when non-empty
	Search     string // case-insensitive substring on action
	DateFrom   string // YYYY-MM-DD inclusive lower bound
	DateTo     string // YYYY-MM-DD inclusive upper bound
	SortField  string
	SortDir    string
	Cursor     *pagination.Cursor
	Limit      int
}

// LogRow is one listing row: the log entry plus the joined user columns, nil
// for system events.
type LogRow struct {
	Log  model.ActivityLog
	User *model.LogUser
}

// LogRepo reads and appends activity_logs rows.  The table is append-only:
// this repository exposes no update or delete.
type LogRepo struct{ db *sql.DB }

func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{db: db} }

// Insert appends one log row.  userID may be nil for system events.
func (r *LogRepo) Insert(ctx context.Context, userID *uint64, action string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_logs (user_id, action, created_at) VALUES (?,?,?)",
		userID, action, createdAt)
	return err
}

// visibilityPredicate narrows the candidate set by the viewer's role before
// any query-parameter filter is applied.  Admins see logs of employees and
// customers plus system rows with no user; employees see customer logs only.
// Everyone else is refused outright.
func visibilityPredicate(role string) (string, []any, error) {
	switch role {
	case model.RoleAdmin:
		return "(u.role IN (?,?) OR l.user_id IS NULL)",
			[]any{model.RoleEmployee, model.RoleCustomer}, nil
	case model.RoleEmployee:
		return "u.role = ?", []any{model.RoleCustomer}, nil
	default:
		return "", nil, ErrForbidden
	}
}

// List returns one cursor-paginated window of logs visible to the viewer.
// Rows are ordered by the sort column with log_id as tie-breaker so the
// order is total; without the tie-break, cursors over duplicate sort values
// would skip or repeat rows.
func (r *LogRepo) List(ctx context.Context, q LogQuery) ([]LogRow, pagination.CursorWindow, error) {
	vis, args, err := visibilityPredicate(q.ViewerRole)
	if err != nil {
		return nil, pagination.CursorWindow{}, err
	}
	where := []string{vis}

	if q.UserID != "" {
		where = append(where, "l.user_id = ?")
		args = append(args, q.UserID)
	}
	if q.Search != "" {
		where = append(where, "LOWER(l.action) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
	}
	if q.DateFrom != "" {
		where = append(where, "DATE(l.created_at) >= ?")
		args = append(args, q.DateFrom)
	}
	if q.DateTo != "" {
		where = append(where, "DATE(l.created_at) <= ?")
		args = append(args, q.DateTo)
	}

	sortCol := logSortColumns[q.SortField]
	scanDir := q.SortDir
	reversed := false
	if q.Cursor != nil {
		op := q.Cursor.KeysetComparators()
		if sortCol == "l.log_id" {
			where = append(where, "l.log_id "+op+" ?")
			args = append(args, q.Cursor.ID)
		} else {
			where = append(where, "("+sortCol+" "+op+" ? OR ("+sortCol+" = ? AND l.log_id "+op+" ?))")
			args = append(args, q.Cursor.Value, q.Cursor.Value, q.Cursor.ID)
		}
		if q.Cursor.Point == pagination.Prev {
			// Walk toward the beginning: scan in reverse, nearest rows
			// first, and flip the slice back afterwards.
			scanDir = flipDir(q.SortDir)
			reversed = true
		}
	}

	query := `SELECT l.log_id, l.user_id, l.action, l.created_at,
			u.user_id, u.full_name, u.email, u.role
		FROM activity_logs l
		LEFT JOIN users u ON u.user_id = l.user_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + sortCol + ` ` + scanDir + `, l.log_id ` + scanDir + `
		LIMIT ?`
	args = append(args, q.Limit+1) // one extra row to detect a further page

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pagination.CursorWindow{}, err
	}
	defer rows.Close()

	out := make([]LogRow, 0, q.Limit)
	for rows.Next() {
		var (
			lr       LogRow
			userID   sql.NullInt64
			joinedID sql.NullInt64
			fullName sql.NullString
			email    sql.NullString
			role     sql.NullString
		)
		if err := rows.Scan(&lr.Log.ID, &userID, &lr.Log.Action, &lr.Log.CreatedAt,
			&joinedID, &fullName, &email, &role); err != nil {
			return nil, pagination.CursorWindow{}, err
		}
		if userID.Valid {
			uid := uint64(userID.Int64)
			lr.Log.UserID = &uid
		}
		if joinedID.Valid {
			lr.User = &model.LogUser{
				ID:       uint64(joinedID.Int64),
				FullName: fullName.String,
				Email:    email.String,
				Role:     role.String,
			}
		}
		out = append(out, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.CursorWindow{}, err
	}

	more := len(out) > q.Limit
	if more {
		out = out[:q.Limit]
	}
	if reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	var first, last *pagination.Boundary
	if len(out) > 0 {
		first = logBoundary(out[0], q.SortField)
		last = logBoundary(out[len(out)-1], q.SortField)
	}
	hasBefore, hasAfter := windowEdges(q.Cursor, more)
	win := pagination.NewCursorWindow(q.Limit, q.SortField, q.SortDir, first, last, hasBefore, hasAfter)
	return out, win, nil
}

// windowEdges derives whether rows exist beyond each edge of the window.
// Arriving via a cursor guarantees rows on the side we came from; the extra
// fetched row tells us about the side we are heading toward.
func windowEdges(c *pagination.Cursor, more bool) (hasBefore, hasAfter bool) {
	switch {
	case c == nil:
		return false, more
	case c.Point == pagination.Prev:
		return more, true
	default:
		return true, more
	}
}

func logBoundary(lr LogRow, sortField string) *pagination.Boundary {
	b := &pagination.Boundary{ID: lr.Log.ID}
	switch sortField {
	case "id":
		b.Value = strconv.FormatUint(lr.Log.ID, 10)
	case "action":
		b.Value = lr.Log.Action
	default:
		b.Value = lr.Log.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return b
}

func flipDir(dir string) string {
	if dir == "asc" {
		return "desc"
	}
	return "asc"
}
