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

// amenityPageSize is the fixed window of the amenity management listing.
const amenityPageSize = 15

// AmenityHandler bundles dependencies for amenity endpoints.
type AmenityHandler struct {
	Repo  *repository.AmenityRepo
	Files storage.Store
}

func NewAmenityHandler(r *repository.AmenityRepo, files storage.Store) *AmenityHandler {
	return &AmenityHandler{Repo: r, Files: files}
}

type amenityReq struct {
	Name        string  `json:"name" form:"name" validate:"required,max=255"`
	Description string  `json:"description" form:"description" validate:"required"`
	PricePerUse float64 `json:"price_per_use" form:"price_per_use" validate:"gte=0"`
}

// List serves the management listing: search across name, description and
// price, 15 rows per page with stats alongside.
func (h *AmenityHandler) List(c echo.Context) error {
	q := repository.AmenityQuery{
		Search:   c.QueryParam("search"),
		Page:     pageParam(c),
		PageSize: amenityPageSize,
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
		"amenities":  presenter.Amenities(rows),
		"pagination": page,
		"stats":      stats,
		"filters": echo.Map{
			"search": q.Search,
		},
	})
}

// Search is the flat lookup API used by pickers: every match, no paging.
func (h *AmenityHandler) Search(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Repo.SearchAll(ctx, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"amenities": presenter.Amenities(rows)})
}

// Get returns one amenity for the edit form.
func (h *AmenityHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAmenityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, presenter.Amenity(*a))
}

// Create adds an amenity from a multipart form with an optional image.
func (h *AmenityHandler) Create(c echo.Context) error {
	var req amenityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validate.Struct(req); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	imagePath, err := h.saveImage(ctx, c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	a := &model.Amenity{
		Name:        req.Name,
		Description: req.Description,
		PricePerUse: req.PricePerUse,
		ImagePath:   imagePath,
	}
	if err := h.Repo.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	recordActivity(c, fmt.Sprintf("Created amenity: %s", a.Name))
	return c.JSON(http.StatusCreated, presenter.Amenity(*a))
}

// Update overwrites an amenity, replacing the image if a new one arrives.
func (h *AmenityHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req amenityReq
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
		if errors.Is(err, repository.ErrAmenityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	imagePath, err := h.saveImage(ctx, c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	oldImage := ""
	if imagePath == "" {
		imagePath = existing.ImagePath
	} else if existing.ImagePath != imagePath {
		oldImage = existing.ImagePath
	}

	a := &model.Amenity{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PricePerUse: req.PricePerUse,
		ImagePath:   imagePath,
	}
	if err := h.Repo.Update(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if oldImage != "" {
		_ = h.Files.Delete(ctx, oldImage)
	}
	recordActivity(c, fmt.Sprintf("Updated amenity: %s", a.Name))

	updated, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, presenter.Amenity(*updated))
}

// Delete removes an amenity and its stored image.
func (h *AmenityHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAmenityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAmenityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Files.Delete(ctx, existing.ImagePath)
	recordActivity(c, fmt.Sprintf("Deleted amenity: %s", existing.Name))
	return c.NoContent(http.StatusNoContent)
}

func (h *AmenityHandler) saveImage(ctx context.Context, c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.Files.Save(ctx, "amenities", fh.Filename, src)
}
