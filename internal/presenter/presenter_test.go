package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₱0.00"},
		{5, "₱5.00"},
		{999.5, "₱999.50"},
		{1000, "₱1,000.00"},
		{18000, "₱18,000.00"},
		{1234567.89, "₱1,234,567.89"},
		{-2500, "-₱2,500.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount), "amount %v", tt.amount)
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{model.StatusAvailable, "green"},
		{model.StatusOccupied, "red"},
		{model.StatusMaintenance, "yellow"},
		{model.StatusReserved, "blue"},
		{"renovation", "gray"},
		{"", "gray"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusColor(tt.status), "status %q", tt.status)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"John Doe", "JD"},
		{"maria clara de los santos", "MC"},
		{"Cher", "C"},
		{"", ""},
		{"  padded   name  ", "PN"},
		{"élodie dupont", "ÉD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.name), "name %q", tt.name)
	}
}

func TestUserViewOmitsPasswordHash(t *testing.T) {
	u := model.User{
		ID:           7,
		FullName:     "John Doe",
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         model.RoleEmployee,
		CreatedAt:    time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
	}
	v := User(u)
	assert.Equal(t, "JD", v.Initials)
	assert.Equal(t, "2026-08-01 09:30:00", v.CreatedAt)
	// The view type has no hash field at all; spot-check the visible ones.
	assert.Equal(t, "john@example.com", v.Email)
	assert.Equal(t, model.RoleEmployee, v.Role)
}

func TestAccommodationViewDerivedFields(t *testing.T) {
	a := model.Accommodation{
		ID:            3,
		Name:          "Beach Villa",
		Capacity:      4,
		PricePerNight: 18000,
		Status:        model.StatusAvailable,
	}
	v := Accommodation(a)
	assert.Equal(t, "₱18,000.00", v.FormattedPrice)
	assert.Equal(t, "green", v.StatusColor)
}

func TestLogViewNilUserForSystemEvents(t *testing.T) {
	row := repository.LogRow{
		Log: model.ActivityLog{
			ID:        1,
			Action:    "Nightly cleanup",
			CreatedAt: time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC),
		},
	}
	v := Log(row)
	assert.Nil(t, v.User)
	assert.Equal(t, "2026-08-30 03:00:00", v.CreatedAt)

	uid := uint64(9)
	row.Log.UserID = &uid
	row.User = &model.LogUser{ID: 9, FullName: "Jane Roe", Email: "jane@example.com", Role: model.RoleCustomer}
	v = Log(row)
	if assert.NotNil(t, v.User) {
		assert.Equal(t, uint64(9), v.User.ID)
		assert.Equal(t, model.RoleCustomer, v.User.Role)
	}
}
