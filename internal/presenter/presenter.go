// Package presenter maps entity rows into the shapes returned to clients.
// Internal-only fields (password hashes) never appear here, and derived
// display fields (formatted prices, status colors, initials) are computed in
// one place instead of per handler.
package presenter

import (
	"fmt"
	"strings"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
)

// AccommodationView is the caller-facing shape of an accommodation row.
type AccommodationView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Capacity       int     `json:"capacity"`
	PricePerNight  float64 `json:"price_per_night"`
	FormattedPrice string  `json:"formatted_price"`
	Status         string  `json:"status"`
	StatusColor    string  `json:"status_color"`
	ImageURL       string  `json:"image_url,omitempty"`
}

// AmenityView is the caller-facing shape of an amenity row.
type AmenityView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PricePerUse    float64 `json:"price_per_use"`
	FormattedPrice string  `json:"formatted_price"`
	ImagePath      string  `json:"image_path,omitempty"`
}

// UserView is the caller-facing shape of a user row.  The credential hash is
// deliberately absent.
type UserView struct {
	ID         uint64 `json:"id"`
	FullName   string `json:"full_name"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Initials   string `json:"initials"`
	AvatarPath string `json:"avatar_path,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// LogView is the caller-facing shape of an activity log row.
type LogView struct {
	ID        uint64   `json:"id"`
	Action    string   `json:"action"`
	CreatedAt string   `json:"created_at"`
	User      *LogUser `json:"user"`
}

// LogUser is the joined user block of a log row; nil for system events.
type LogUser struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// FormatPrice renders an amount as Philippine pesos with thousands grouping
// and two decimals, e.g. 18000 -> "₱18,000.00".
func FormatPrice(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	neg := false
	if strings.HasPrefix(whole, "-") {
		neg = true
		whole = whole[1:]
	}
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := "₱" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// StatusColor maps an availability status to its badge color.
func StatusColor(status string) string {
	switch status {
	case model.StatusAvailable:
		return "green"
	case model.StatusOccupied:
		return "red"
	case model.StatusMaintenance:
		return "yellow"
	case model.StatusReserved:
		return "blue"
	default:
		return "gray"
	}
}

// Initials returns the avatar-fallback initials of a display name: the first
// letter of each whitespace-separated token, uppercased, at most two.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
		n++
		if n >= 2 {
			break
		}
	}
	return b.String()
}

// Accommodation shapes one accommodation row.
func Accommodation(a model.Accommodation) AccommodationView {
	return AccommodationView{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		Capacity:       a.Capacity,
		PricePerNight:  a.PricePerNight,
		FormattedPrice: FormatPrice(a.PricePerNight),
		Status:         a.Status,
		StatusColor:    StatusColor(a.Status),
		ImageURL:       a.ImageURL,
	}
}

// Accommodations shapes a slice, preserving order.
func Accommodations(rows []model.Accommodation) []AccommodationView {
	out := make([]AccommodationView, len(rows))
	for i, a := range rows {
		out[i] = Accommodation(a)
	}
	return out
}

// Amenity shapes one amenity row.
func Amenity(a model.Amenity) AmenityView {
	return AmenityView{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		PricePerUse:    a.PricePerUse,
		FormattedPrice: FormatPrice(a.PricePerUse),
		ImagePath:      a.ImagePath,
	}
}

// Amenities shapes a slice, preserving order.
func Amenities(rows []model.Amenity) []AmenityView {
	out := make([]AmenityView, len(rows))
	for i, a := range rows {
		out[i] = Amenity(a)
	}
	return out
}

// User shapes one user row without its credential hash.
func User(u model.User) UserView {
	v := UserView{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		Initials:   Initials(u.FullName),
		AvatarPath: u.AvatarPath,
	}
	if !u.CreatedAt.IsZero() {
		v.CreatedAt = u.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return v
}

// Users shapes a slice, preserving order.
func Users(rows []model.User) []UserView {
	out := make([]UserView, len(rows))
	for i, u := range rows {
		out[i] = User(u)
	}
	return out
}

// Log shapes one activity log row with its joined user block.
func Log(row repository.LogRow) LogView {
	v := LogView{
		ID:        row.Log.ID,
		Action:    row.Log.Action,
		CreatedAt: row.Log.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
	if row.User != nil {
		v.User = &LogUser{
			ID:       row.User.ID,
			FullName: row.User.FullName,
			Email:    row.User.Email,
			Role:     row.User.Role,
		}
	}
	return v
}

// Logs shapes a slice, preserving order.
func Logs(rows []repository.LogRow) []LogView {
	out := make([]LogView, len(rows))
	for i, r := range rows {
		out[i] = Log(r)
	}
	return out
}
