package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/pagination"
)

// AccommodationQuery defines filters and pagination for the management
// listing.  Search is a free-text term matched case-insensitively against
// name, description and status, and exactly against capacity and price when
// it parses as a number.  Status is an exact enum filter; empty means no
// constraint.
type AccommodationQuery struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// AccommodationStats are the headline counts shown above the listing.
type AccommodationStats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Occupied    int64 `json:"occupied"`
	Maintenance int64 `json:"maintenance"`
}

// AccommodationRepo encapsulates all database queries for accommodations.
type AccommodationRepo struct{ db *sql.DB }

func NewAccommodationRepo(db *sql.DB) *AccommodationRepo { return &AccommodationRepo{db: db} }

const accommodationColumns = "accommodation_id, accommodation_name, description, capacity, price_per_night, availability_status, COALESCE(image_url,''), created_at, updated_at"

func scanAccommodation(row interface{ Scan(...any) error }, a *model.Accommodation) error {
	return row.Scan(&a.ID, &a.Name, &a.Description, &a.Capacity, &a.PricePerNight, &a.Status, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt)
}

// List returns one offset-paginated window of the filtered set, ordered by
// name, together with the page envelope.  A page past the end returns an
// empty window.
func (r *AccommodationRepo) List(ctx context.Context, q AccommodationQuery) ([]model.Accommodation, pagination.OffsetPage, error) {
	where := []string{}
	args := []any{}

	if q.Search != "" {
		group := []string{
			"LOWER(accommodation_name) LIKE ?",
			"LOWER(description) LIKE ?",
			"LOWER(availability_status) LIKE ?",
		}
		like := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, like, like, like)
		if _, err := strconv.ParseFloat(q.Search, 64); err == nil {
			group = append(group, "capacity = ?", "price_per_night = ?")
			args = append(args, q.Search, q.Search)
		}
		where = append(where, "("+strings.Join(group, " OR ")+")")
	}
	if q.Status != "" {
		where = append(where, "availability_status = ?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accommodations WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, pagination.OffsetPage{}, err
	}

	page := pagination.NewOffsetPage(q.Page, q.PageSize, total)
	dataSQL := `SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE ` + cond + `
		ORDER BY accommodation_name ASC, accommodation_id ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), page.PageSize, page.Offset())

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, pagination.OffsetPage{}, err
	}
	defer rows.Close()

	out := make([]model.Accommodation, 0, page.PageSize)
	for rows.Next() {
		var a model.Accommodation
		if err := scanAccommodation(rows, &a); err != nil {
			return nil, pagination.OffsetPage{}, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.OffsetPage{}, err
	}
	return out, page, nil
}

// Stats computes the status counts in a single scan.
func (r *AccommodationRepo) Stats(ctx context.Context) (AccommodationStats, error) {
	var s AccommodationStats
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*),
			COALESCE(SUM(availability_status = 'available'), 0),
			COALESCE(SUM(availability_status = 'occupied'), 0),
			COALESCE(SUM(availability_status = 'maintenance'), 0)
		FROM accommodations`).Scan(&s.Total, &s.Available, &s.Occupied, &s.Maintenance)
	return s, err
}

// Create inserts a new accommodation and populates its ID and timestamps.
func (r *AccommodationRepo) Create(ctx context.Context, a *model.Accommodation) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accommodations (accommodation_name, description, capacity, price_per_night, availability_status, image_url)
		VALUES (?,?,?,?,?,NULLIF(?,''))`,
		a.Name, a.Description, a.Capacity, a.PricePerNight, a.Status, a.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accommodationColumns+" FROM accommodations WHERE accommodation_id = ?", a.ID)
	return scanAccommodation(row, a)
}

// GetByID fetches one accommodation or ErrAccommodationNotFound.
func (r *AccommodationRepo) GetByID(ctx context.Context, id uint64) (*model.Accommodation, error) {
	var a model.Accommodation
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accommodationColumns+" FROM accommodations WHERE accommodation_id = ?", id)
	if err := scanAccommodation(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccommodationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetAvailableByID fetches one accommodation only when its status is
// available; used by the public detail page.
func (r *AccommodationRepo) GetAvailableByID(ctx context.Context, id uint64) (*model.Accommodation, error) {
	var a model.Accommodation
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accommodationColumns+" FROM accommodations WHERE accommodation_id = ? AND availability_status = 'available'", id)
	if err := scanAccommodation(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccommodationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update overwrites the mutable columns of an existing accommodation.
func (r *AccommodationRepo) Update(ctx context.Context, a *model.Accommodation) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accommodations
		SET accommodation_name = ?, description = ?, capacity = ?, price_per_night = ?,
			availability_status = ?, image_url = NULLIF(?,''), updated_at = CURRENT_TIMESTAMP
		WHERE accommodation_id = ?`,
		a.Name, a.Description, a.Capacity, a.PricePerNight, a.Status, a.ImageURL, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "no column changed".
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an accommodation row.  The caller is responsible for
// removing the stored image afterwards.
func (r *AccommodationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM accommodations WHERE accommodation_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccommodationNotFound
	}
	return nil
}

// FeaturedAvailable returns up to limit available units, premium first.
func (r *AccommodationRepo) FeaturedAvailable(ctx context.Context, limit int) ([]model.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accommodationColumns+`
		FROM accommodations
		WHERE availability_status = 'available'
		ORDER BY price_per_night DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Accommodation
	for rows.Next() {
		var a model.Accommodation
		if err := scanAccommodation(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RelatedTo returns up to limit other available units in a similar price
// band (±30%) or with the same capacity.
func (r *AccommodationRepo) RelatedTo(ctx context.Context, a *model.Accommodation, limit int) ([]model.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accommodationColumns+`
		FROM accommodations
		WHERE accommodation_id <> ? AND availability_status = 'available'
			AND (price_per_night BETWEEN ? AND ? OR capacity = ?)
		LIMIT ?`,
		a.ID, a.PricePerNight*0.7, a.PricePerNight*1.3, a.Capacity, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Accommodation
	for rows.Next() {
		var rel model.Accommodation
		if err := scanAccommodation(rows, &rel); err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

// PremiumCount counts units priced above the given nightly rate, whatever
// their current status; shown on the public landing page.
func (r *AccommodationRepo) PremiumCount(ctx context.Context, threshold float64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accommodations WHERE price_per_night > ?", threshold).Scan(&n)
	return n, err
}
