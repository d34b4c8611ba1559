package handler // handler defines http handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/service"
)

// bearerSubject parses an optional Bearer token straight from the request
// header, outside the JWT middleware, and returns the subject claim.  Used
// by logout, which must work with or without an access token.
func bearerSubject(c echo.Context, secret string) (uint64, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	switch sub := claims["sub"].(type) {
	case float64:
		return uint64(sub), true
	case string:
		if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// getUserID extracts the user_id claim from the echo context and converts
// it to uint64.  The JWT library hands numbers back as float64, so several
// representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// viewerRole returns the role claim stored by the JWT middleware, or "".
func viewerRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// recordActivity publishes an activity event for the current caller.  The
// publish is best-effort: failures are logged and the request continues.
func recordActivity(c echo.Context, action string) {
	var userID *uint64
	if id, err := getUserID(c); err == nil {
		userID = &id
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := service.RecordActivity(ctx, userID, action); err != nil {
		log.Printf("activity: record failed: %v", err)
	}
}

// usernameFrom derives the base login handle from a display name: lowercase
// with spaces removed ("John Doe" -> "johndoe").
func usernameFrom(fullName string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(fullName), " ", ""))
}

// parseDateParam validates an optional YYYY-MM-DD query parameter.  An
// unparsable value is an error: a bad date must be rejected at the
// boundary, not silently widened into "match everything".
func parseDateParam(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", false
	}
	return raw, true
}

// pageParam parses an optional 1-indexed page number, defaulting to 1.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
