package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/pagination"
	"github.com/rvillanueva/resort-backoffice/internal/presenter"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
)

// Activity-log window bounds.  Requests may shrink the window but not grow
// it past the ceiling.
const (
	logDefaultLimit = 20
	logMaxLimit     = 100
)

// LogHandler serves the role-scoped activity log listing.
type LogHandler struct {
	Repo *repository.LogRepo
}

func NewLogHandler(r *repository.LogRepo) *LogHandler {
	return &LogHandler{Repo: r}
}

// List returns one cursor-paginated window of activity logs visible to the
// caller.  Sort parameters outside the allow-lists fall back to
// created_at/desc; bad dates and bad cursors are rejected instead.
func (h *LogHandler) List(c echo.Context) error {
	sortField, sortDir := repository.NormalizeLogSort(
		c.QueryParam("sort_field"), c.QueryParam("sort_dir"))

	dateFrom, ok := parseDateParam(c.QueryParam("date_from"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_from must be YYYY-MM-DD"})
	}
	dateTo, ok := parseDateParam(c.QueryParam("date_to"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_to must be YYYY-MM-DD"})
	}

	limit := logDefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		if n > logMaxLimit {
			n = logMaxLimit
		}
		limit = n
	}

	var cursor *pagination.Cursor
	if token := c.QueryParam("cursor"); token != "" {
		cur, err := pagination.DecodeCursor(token, sortField, sortDir)
		if err != nil {
			if errors.Is(err, pagination.ErrCursorSortMismatch) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "cursor does not match current sort; restart from the first page"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed cursor"})
		}
		cursor = &cur
	}

	q := repository.LogQuery{
		ViewerRole: viewerRole(c),
		UserID:     c.QueryParam("user_id"),
		Search:     c.QueryParam("search"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		SortField:  sortField,
		SortDir:    sortDir,
		Cursor:     cursor,
		Limit:      limit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, win, err := h.Repo.List(ctx, q)
	if err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"logs": presenter.Logs(rows),
		"pagination": echo.Map{
			"limit":       win.Limit,
			"next_cursor": win.NextCursor,
			"prev_cursor": win.PrevCursor,
			"sort_field":  sortField,
			"sort_dir":    sortDir,
		},
		"filters": echo.Map{
			"search":    q.Search,
			"user_id":   q.UserID,
			"date_from": q.DateFrom,
			"date_to":   q.DateTo,
		},
	})
}
