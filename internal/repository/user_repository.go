package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/pagination"
	"github.com/rvillanueva/resort-backoffice/internal/utils"
)

// UserColumns is the capability descriptor for the users table: which of
// the optional columns exist in this deployment.  It is resolved once at
// startup and consulted per request when building the dashboard search,
// instead of re-checking the schema on every call.
type UserColumns struct {
	Username  bool
	Role      bool
	CreatedAt bool
}

// DefaultUserColumns assumes the full schema.  Used when detection fails.
func DefaultUserColumns() UserColumns {
	return UserColumns{Username: true, Role: true, CreatedAt: true}
}

// DetectUserColumns queries information_schema once for the optional
// columns.  The result is cached by the caller for the process lifetime.
func DetectUserColumns(ctx context.Context, db *sql.DB) (UserColumns, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = 'users'
			AND column_name IN ('username','role','created_at')`)
	if err != nil {
		return UserColumns{}, err
	}
	defer rows.Close()
	var cols UserColumns
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return UserColumns{}, err
		}
		switch strings.ToLower(name) {
		case "username":
			cols.Username = true
		case "role":
			cols.Role = true
		case "created_at":
			cols.CreatedAt = true
		}
	}
	return cols, rows.Err()
}

// UserListQuery defines search/sort/pagination for the dashboard listing.
type UserListQuery struct {
	Search   string
	Sort     string // "" (latest id first) or "role"
	Page     int
	PageSize int
}

// UserRepo encapsulates all database queries for users.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumnsSQL = "user_id, full_name, COALESCE(username,''), email, password_hash, role, COALESCE(avatar_path,''), created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	return row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.AvatarPath, &u.CreatedAt, &u.UpdatedAt)
}

// maxUsernameAttempts bounds the duplicate-key retry loop in Create.
const maxUsernameAttempts = 50

// Create inserts a user, hashing the password with the given bcrypt cost.
// When autoUsername is true the username was derived from the full name and
// uniqueness is enforced by the DB unique index: a duplicate-key error on
// the username index retries with the next counter suffix (johndoe,
// johndoe1, johndoe2, ...) instead of pre-checking existence, which would
// race under concurrent identical submissions.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int, autoUsername bool) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	base := u.Username
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		res, err := r.DB.ExecContext(ctx,
			`INSERT INTO users (full_name, username, email, password_hash, role, avatar_path)
			VALUES (?,NULLIF(?,''),?,?,?,NULLIF(?,''))`,
			u.FullName, u.Username, u.Email, u.PasswordHash, u.Role, u.AvatarPath)
		if err != nil {
			if isDuplicateKey(err, "email") {
				return ErrEmailExists
			}
			if isDuplicateKey(err, "username") {
				if autoUsername {
					u.Username = fmt.Sprintf("%s%d", base, attempt+1)
					continue
				}
				return ErrUsernameExists
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		u.ID = uint64(id)
		return nil
	}
	return ErrUsernameExists
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumnsSQL+" FROM users WHERE email = ? LIMIT 1", email)
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumnsSQL+" FROM users WHERE user_id = ? LIMIT 1", id)
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRole sets a user's role.  Role changes happen only through explicit
// administrative action (the makeadmin command).
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?", role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// searchPredicate builds the dashboard OR-group.  An all-digits term also
// matches the numeric id; the optional columns join the group only when the
// capability descriptor says they exist on this deployment's schema.
func searchPredicate(search string, cols UserColumns) (string, []any) {
	like := "%" + strings.ToLower(search) + "%"
	group := []string{"LOWER(full_name) LIKE ?", "LOWER(email) LIKE ?"}
	args := []any{like, like}
	if allDigits(search) {
		group = append([]string{"user_id = ?"}, group...)
		args = append([]any{search}, args...)
	}
	if cols.Username {
		group = append(group, "LOWER(COALESCE(username,'')) LIKE ?")
		args = append(args, like)
	}
	if cols.Role {
		group = append(group, "LOWER(role) LIKE ?")
		args = append(args, like)
	}
	if cols.CreatedAt {
		group = append(group, "CAST(created_at AS CHAR) LIKE ?")
		args = append(args, like)
	}
	return "(" + strings.Join(group, " OR ") + ")", args
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// roleFieldOrder renders the explicit role ordering as a FIELD() list so
// role-sorted output follows model.RoleOrder rather than alphabet.
func roleFieldOrder() string {
	quoted := make([]string, len(model.RoleOrder))
	for i, role := range model.RoleOrder {
		quoted[i] = "'" + role + "'"
	}
	return "FIELD(role, " + strings.Join(quoted, ", ") + ")"
}

// List returns one offset-paginated window of users for the dashboard,
// newest first by default or grouped by role rank when q.Sort is "role".
func (r *UserRepo) List(ctx context.Context, q UserListQuery, cols UserColumns) ([]model.User, pagination.OffsetPage, error) {
	cond := "1=1"
	args := []any{}
	if q.Search != "" {
		cond, args = searchPredicate(q.Search, cols)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, pagination.OffsetPage{}, err
	}

	order := "user_id DESC"
	if q.Sort == "role" && cols.Role {
		order = roleFieldOrder() + " ASC, user_id DESC"
	}

	page := pagination.NewOffsetPage(q.Page, q.PageSize, total)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumnsSQL+" FROM users WHERE "+cond+" ORDER BY "+order+" LIMIT ? OFFSET ?",
		append(append([]any{}, args...), page.PageSize, page.Offset())...)
	if err != nil {
		return nil, pagination.OffsetPage{}, err
	}
	defer rows.Close()

	out := make([]model.User, 0, page.PageSize)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, pagination.OffsetPage{}, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.OffsetPage{}, err
	}
	return out, page, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// UserStats are the headline counts shown above the dashboard listing.
type UserStats struct {
	Total     int64 `json:"total"`
	Admins    int64 `json:"admins"`
	Employees int64 `json:"employees"`
	Customers int64 `json:"customers"`
}

// Stats computes the per-role counts in a single scan.
func (r *UserRepo) Stats(ctx context.Context) (UserStats, error) {
	var s UserStats
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*),
			COALESCE(SUM(role = ?), 0),
			COALESCE(SUM(role = ?), 0),
			COALESCE(SUM(role = ?), 0)
		FROM users`,
		model.RoleAdmin, model.RoleEmployee, model.RoleCustomer).
		Scan(&s.Total, &s.Admins, &s.Employees, &s.Customers)
	return s, err
}
