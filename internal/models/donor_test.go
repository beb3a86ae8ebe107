package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecentlyDonated(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(days int) *time.Time {
		d := now.AddDate(0, 0, -days)
		return &d
	}

	tests := []struct {
		name string
		last *time.Time
		want bool
	}{
		{name: "never donated", last: nil, want: false},
		{name: "yesterday", last: at(1), want: true},
		{name: "four months ago", last: at(4 * 30), want: true},
		{name: "just under five months", last: at(5*30 - 1), want: true},
		{name: "five months ago", last: at(5 * 30), want: false},
		{name: "a year ago", last: at(365), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecentlyDonated(tt.last, now))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("away").Valid())
	assert.False(t, Status("").Valid())
}
