package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/pagination"
)

// AmenityQuery defines filters and pagination for the amenity management
// listing.  Search matches name, description and price case-insensitively.
type AmenityQuery struct {
	Search   string
	Page     int
	PageSize int
}

// AmenityStats are the headline counts for the management page.  Active
// equals Total because amenities carry no status column; Premium counts
// amenities priced above 1000 per use.
type AmenityStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Premium int64 `json:"premium"`
}

// AmenityRepo encapsulates all database queries for amenities.
type AmenityRepo struct{ db *sql.DB }

func NewAmenityRepo(db *sql.DB) *AmenityRepo { return &AmenityRepo{db: db} }

const amenityColumns = "amenity_id, amenity_name, description, price_per_use, COALESCE(image_path,''), created_at, updated_at"

func scanAmenity(row interface{ Scan(...any) error }, a *model.Amenity) error {
	return row.Scan(&a.ID, &a.Name, &a.Description, &a.PricePerUse, &a.ImagePath, &a.CreatedAt, &a.UpdatedAt)
}

func amenitySearchCond(search string, args *[]any) string {
	like := "%" + strings.ToLower(search) + "%"
	*args = append(*args, like, like, like)
	return "(LOWER(amenity_name) LIKE ? OR LOWER(description) LIKE ? OR price_per_use LIKE ?)"
}

// List returns one offset-paginated window of the filtered set ordered by
// name, plus the page envelope.
func (r *AmenityRepo) List(ctx context.Context, q AmenityQuery) ([]model.Amenity, pagination.OffsetPage, error) {
	cond := "1=1"
	args := []any{}
	if q.Search != "" {
		cond = amenitySearchCond(q.Search, &args)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM amenities WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, pagination.OffsetPage{}, err
	}

	page := pagination.NewOffsetPage(q.Page, q.PageSize, total)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+amenityColumns+`
		FROM amenities
		WHERE `+cond+`
		ORDER BY amenity_name ASC, amenity_id ASC
		LIMIT ? OFFSET ?`,
		append(append([]any{}, args...), page.PageSize, page.Offset())...)
	if err != nil {
		return nil, pagination.OffsetPage{}, err
	}
	defer rows.Close()

	out := make([]model.Amenity, 0, page.PageSize)
	for rows.Next() {
		var a model.Amenity
		if err := scanAmenity(rows, &a); err != nil {
			return nil, pagination.OffsetPage{}, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.OffsetPage{}, err
	}
	return out, page, nil
}

// SearchAll returns every matching amenity ordered by name, unpaginated.
// Used by the lookup API the front end calls for pickers.
func (r *AmenityRepo) SearchAll(ctx context.Context, search string) ([]model.Amenity, error) {
	cond := "1=1"
	args := []any{}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		cond = "(LOWER(amenity_name) LIKE ? OR LOWER(description) LIKE ?)"
		args = append(args, like, like)
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+amenityColumns+" FROM amenities WHERE "+cond+" ORDER BY amenity_name ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Amenity
	for rows.Next() {
		var a model.Amenity
		if err := scanAmenity(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Featured returns up to limit amenities ordered by name for the landing page.
func (r *AmenityRepo) Featured(ctx context.Context, limit int) ([]model.Amenity, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+amenityColumns+" FROM amenities ORDER BY amenity_name ASC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Amenity
	for rows.Next() {
		var a model.Amenity
		if err := scanAmenity(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats computes the management-page counts in a single scan.
func (r *AmenityRepo) Stats(ctx context.Context) (AmenityStats, error) {
	var s AmenityStats
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(*), COALESCE(SUM(price_per_use > 1000), 0) FROM amenities").
		Scan(&s.Total, &s.Active, &s.Premium)
	return s, err
}

// Create inserts a new amenity and populates its ID and timestamps.
func (r *AmenityRepo) Create(ctx context.Context, a *model.Amenity) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO amenities (amenity_name, description, price_per_use, image_path) VALUES (?,?,?,NULLIF(?,''))",
		a.Name, a.Description, a.PricePerUse, a.ImagePath)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	row := r.db.QueryRowContext(ctx, "SELECT "+amenityColumns+" FROM amenities WHERE amenity_id = ?", a.ID)
	return scanAmenity(row, a)
}

// GetByID fetches one amenity or ErrAmenityNotFound.
func (r *AmenityRepo) GetByID(ctx context.Context, id uint64) (*model.Amenity, error) {
	var a model.Amenity
	row := r.db.QueryRowContext(ctx, "SELECT "+amenityColumns+" FROM amenities WHERE amenity_id = ?", id)
	if err := scanAmenity(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAmenityNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update overwrites the mutable columns of an existing amenity.
func (r *AmenityRepo) Update(ctx context.Context, a *model.Amenity) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE amenities
		SET amenity_name = ?, description = ?, price_per_use = ?, image_path = NULLIF(?,''), updated_at = CURRENT_TIMESTAMP
		WHERE amenity_id = ?`,
		a.Name, a.Description, a.PricePerUse, a.ImagePath, a.ID)
	return err
}

// Delete removes an amenity row.  The caller removes the stored image.
func (r *AmenityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM amenities WHERE amenity_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAmenityNotFound
	}
	return nil
}
