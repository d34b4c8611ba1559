package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/presenter"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
	"github.com/rvillanueva/resort-backoffice/internal/storage"
	"github.com/rvillanueva/resort-backoffice/internal/validate"
)

// accommodationPageSize is the fixed window of the management listing.
const accommodationPageSize = 10

// AccommodationHandler bundles dependencies for accommodation endpoints.
type AccommodationHandler struct {
	Repo  *repository.AccommodationRepo
	Files storage.Store
}

func NewAccommodationHandler(r *repository.AccommodationRepo, files storage.Store) *AccommodationHandler {
	return &AccommodationHandler{Repo: r, Files: files}
}

type accommodationReq struct {
	Name          string  `json:"name" form:"name" validate:"required,max=255"`
	Description   string  `json:"description" form:"description" validate:"required"`
	Capacity      int     `json:"capacity" form:"capacity" validate:"required,gte=1,max=20"`
	PricePerNight float64 `json:"price_per_night" form:"price_per_night" validate:"gte=0"`
	Status        string  `json:"status" form:"status" validate:"required,oneof=available occupied maintenance reserved"`
}

// List serves the management listing: free-text search, optional status
// filter, 10 rows per page with stats alongside.
func (h *AccommodationHandler) List(c echo.Context) error {
	q := repository.AccommodationQuery{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Page:     pageParam(c),
		PageSize: accommodationPageSize,
	}
	if q.Status != "" && !model.ValidStatus(q.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, page, err := h.Repo.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	stats, err := h.Repo.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"accommodations": presenter.Accommodations(rows),
		"pagination":     page,
		"stats":          stats,
		"filters": echo.Map{
			"search": q.Search,
			"status": q.Status,
		},
	})
}

// Get returns one accommodation for the edit form.
func (h *AccommodationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccommodationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, presenter.Accommodation(*a))
}

// Create adds an accommodation from a multipart form with an optional image.
func (h *AccommodationHandler) Create(c echo.Context) error {
	var req accommodationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validate.Struct(req); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	imageURL, err := h.saveImage(ctx, c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	a := &model.Accommodation{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Status:        req.Status,
		ImageURL:      imageURL,
	}
	if err := h.Repo.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	recordActivity(c, fmt.Sprintf("Created accommodation: %s", a.Name))
	return c.JSON(http.StatusCreated, presenter.Accommodation(*a))
}

// Update overwrites an accommodation.  A newly uploaded image replaces the
// stored one; the old file is removed after the row commits.
func (h *AccommodationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req accommodationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validate.Struct(req); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	existing, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccommodationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	imageURL, err := h.saveImage(ctx, c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	oldImage := ""
	if imageURL == "" {
		imageURL = existing.ImageURL // keep current image when none uploaded
	} else if existing.ImageURL != imageURL {
		oldImage = existing.ImageURL
	}

	a := &model.Accommodation{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Status:        req.Status,
		ImageURL:      imageURL,
	}
	if err := h.Repo.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrAccommodationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if oldImage != "" {
		_ = h.Files.Delete(ctx, oldImage)
	}
	recordActivity(c, fmt.Sprintf("Updated accommodation: %s", a.Name))

	updated, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, presenter.Accommodation(*updated))
}

// Delete removes an accommodation and its stored image.
func (h *AccommodationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccommodationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccommodationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Files.Delete(ctx, existing.ImageURL)
	recordActivity(c, fmt.Sprintf("Deleted accommodation: %s", existing.Name))
	return c.NoContent(http.StatusNoContent)
}

// saveImage stores the optional "image" multipart part and returns its
// public path, or "" when the request carries no image.
func (h *AccommodationHandler) saveImage(ctx context.Context, c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file part
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.Files.Save(ctx, "accommodations", fh.Filename, src)
}
