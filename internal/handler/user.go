package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/config"
	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/presenter"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
	"github.com/rvillanueva/resort-backoffice/internal/storage"
	"github.com/rvillanueva/resort-backoffice/internal/validate"
)

// userPageSize is the fixed window of the user dashboard listing.
const userPageSize = 10

// defaultUserPassword is assigned to accounts created from the dashboard;
// the user is expected to change it on first login.
const defaultUserPassword = "P@ssw0rd"

// UserHandler bundles dependencies for the admin user dashboard.
type UserHandler struct {
	Cfg   config.Config
	Repo  *repository.UserRepo
	Cols  repository.UserColumns
	Files storage.Store
}

func NewUserHandler(cfg config.Config, r *repository.UserRepo, cols repository.UserColumns, files storage.Store) *UserHandler {
	return &UserHandler{Cfg: cfg, Repo: r, Cols: cols, Files: files}
}

type createUserReq struct {
	FullName string `json:"full_name" form:"full_name" validate:"required,max=255"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Role     string `json:"role" form:"role" validate:"required,oneof=admin employee"`
}

// List serves the dashboard listing: schema-adaptive search, optional role
// grouping, 10 rows per page.
func (h *UserHandler) List(c echo.Context) error {
	q := repository.UserListQuery{
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     pageParam(c),
		PageSize: userPageSize,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, page, err := h.Repo.List(ctx, q, h.Cols)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	stats, err := h.Repo.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":      presenter.Users(rows),
		"pagination": page,
		"stats":      stats,
		"filters": echo.Map{
			"search": q.Search,
			"sort":   q.Sort,
		},
	})
}

// Get returns one user row without its credential hash.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, presenter.User(*u))
}

// Create adds an account from the dashboard.  The username is derived from
// the full name with a counter suffix on collision, the password starts at
// the well-known default, and the avatar is either the uploaded image or an
// initials placeholder.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validate.Struct(req); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	avatarPath := ""
	if fh, err := c.FormFile("avatar"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "avatar upload failed"})
		}
		avatarPath, err = h.Files.Save(ctx, "avatars", fh.Filename, src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "avatar upload failed"})
		}
	}
	if avatarPath == "" {
		avatarPath = "initials:" + presenter.Initials(req.FullName)
	}

	u := &model.User{
		FullName:   req.FullName,
		Username:   usernameFrom(req.FullName),
		Email:      req.Email,
		Role:       req.Role,
		AvatarPath: avatarPath,
	}
	if err := h.Repo.Create(ctx, u, defaultUserPassword, h.Cfg.BcryptCost, true); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	recordActivity(c, fmt.Sprintf("Created user: %s (%s)", u.FullName, u.Role))
	return c.JSON(http.StatusCreated, presenter.User(*u))
}
