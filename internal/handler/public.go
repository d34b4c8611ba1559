package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/presenter"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
)

// Landing-page tunables.
const (
	welcomeFeaturedCount = 6
	welcomeAmenityCount  = 6
	welcomeRelatedCount  = 3
	premiumRateThreshold = 15000
	yearsInOperation     = 15
)

// PublicHandler serves the unauthenticated landing and detail pages.
type PublicHandler struct {
	Accommodations *repository.AccommodationRepo
	Amenities      *repository.AmenityRepo
	Users          *repository.UserRepo
}

func NewPublicHandler(a *repository.AccommodationRepo, am *repository.AmenityRepo, u *repository.UserRepo) *PublicHandler {
	return &PublicHandler{Accommodations: a, Amenities: am, Users: u}
}

// Welcome returns the landing page payload: featured available units priced
// high to low, a sample of amenities, and headline numbers.
func (h *PublicHandler) Welcome(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	featured, err := h.Accommodations.FeaturedAvailable(ctx, welcomeFeaturedCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	amenities, err := h.Amenities.Featured(ctx, welcomeAmenityCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	accomStats, err := h.Accommodations.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	premium, err := h.Accommodations.PremiumCount(ctx, premiumRateThreshold)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	guests, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"featured":  presenter.Accommodations(featured),
		"amenities": presenter.Amenities(amenities),
		"stats": echo.Map{
			"total_accommodations": accomStats.Total,
			"available":            accomStats.Available,
			"premium_suites":       premium,
			"registered_guests":    guests,
			"years_experience":     yearsInOperation,
		},
	})
}

// Detail returns one available accommodation plus a few related units.  A
// unit that exists but is not available is hidden from the public page, so
// both cases answer 404.
func (h *PublicHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accommodations.GetAvailableByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccommodationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	related, err := h.Accommodations.RelatedTo(ctx, a, welcomeRelatedCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"accommodation": presenter.Accommodation(*a),
		"related":       presenter.Accommodations(related),
	})
}
