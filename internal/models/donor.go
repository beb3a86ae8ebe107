package models

import "time"

// Donation recency is counted in 30-day months.
const (
	daysPerMonth        = 30
	recentDonationMonth = 5
)

// Donor is a search result row before ranking.
type Donor struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	BloodGroup       string     `json:"blood_group"`
	Age              int        `json:"age"`
	Profession       string     `json:"profession,omitempty"`
	PresentAddress   string     `json:"present_address,omitempty"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Status           Status     `json:"status"`
	LastActive       *time.Time `json:"last_active,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

// DonorWithDistance is a ranked donor as returned by the search endpoint.
type DonorWithDistance struct {
	Donor
	DistanceKm  float64 `json:"distance_km"`
	RecentDonor bool    `json:"recent_donor"`
}

// DonorFilter narrows the candidate set before ranking.
type DonorFilter struct {
	Query      string
	BloodGroup string
	MinAge     int
	MaxAge     int
	Limit      int
}

// RecentlyDonated reports whether the last donation happened less than
// five months before now.
func RecentlyDonated(last *time.Time, now time.Time) bool {
	if last == nil || last.IsZero() {
		return false
	}
	months := int(now.Sub(*last).Hours()/24) / daysPerMonth
	return months < recentDonationMonth
}
