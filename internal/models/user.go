package models

import (
	"time"

	"donor-finder-api/internal/geo"
)

// Status is the presence state a user reports.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	BloodGroup       string     `json:"blood_group"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	Profession       string     `json:"profession,omitempty"`
	PresentAddress   string     `json:"present_address,omitempty"`
	PermanentAddress string     `json:"permanent_address,omitempty"`
	Avatar           string     `json:"avatar,omitempty"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	IsPublic         bool       `json:"is_public"`
	Status           Status     `json:"status"`
	LastActive       *time.Time `json:"last_active,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Coordinate returns the user's location, if one is stored.
func (u User) Coordinate() (geo.Coordinate, bool) {
	return geo.FromNullable(u.Latitude, u.Longitude)
}

// PublicProfile is what other users may see about a donor.
type PublicProfile struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	BloodGroup       string     `json:"blood_group"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	Profession       string     `json:"profession,omitempty"`
	PresentAddress   string     `json:"present_address,omitempty"`
	Avatar           string     `json:"avatar,omitempty"`
	Status           Status     `json:"status"`
	LastActive       *time.Time `json:"last_active,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

// ProfileUpdate holds the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name       *string
	BloodGroup *string
	Age        *int
	Latitude   *float64
	Longitude  *float64
}
