package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Contact preference values carried on a help request.
const (
	ContactPhone = "phone"
	ContactChat  = "chat"
)

// HelpRequest is one open request card on the helper dashboard.
type HelpRequest struct {
	ID              string `json:"id"`
	SeniorFanName   string `json:"seniorFanName"`
	TeamName        string `json:"teamName"`
	GameDate        string `json:"gameDate"`
	NumberOfTickets int    `json:"numberOfTickets"`
}

// DetailedHelpRequest is the full request shown on the helper detail page.
type DetailedHelpRequest struct {
	ID              string    `json:"id"`
	SeniorFanName   string    `json:"seniorFanName"`
	TeamID          string    `json:"teamId"`
	TeamName        string    `json:"teamName"`
	GameDate        string    `json:"gameDate"`
	GameTime        string    `json:"gameTime,omitempty"`
	NumberOfTickets int       `json:"numberOfTickets"`
	ContactPref     string    `json:"contactPreference,omitempty"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Stage           HelpStage `json:"status"`
}

// ReservationRequest is one of the senior's own requests as listed on the
// senior dashboard.
type ReservationRequest struct {
	ID              string        `json:"id"`
	TeamName        string        `json:"teamName"`
	MatchDate       string        `json:"matchDate"`
	NumberOfTickets int           `json:"numberOfTickets"`
	Status          RequestStatus `json:"status"`
	HelperName      string        `json:"helperName,omitempty"`
}

// PartitionRequests splits requests into active and history by the closed
// predicate. The rule is recomputed on every render; nothing is stored.
func PartitionRequests(reqs []ReservationRequest) (active, history []ReservationRequest) {
	for _, r := range reqs {
		if r.Status.Closed() {
			history = append(history, r)
		} else {
			active = append(active, r)
		}
	}
	return active, history
}

// ReservationDetails is the read-only projection a senior reviews between a
// helper's ticket proposal and the seat confirmation.
type ReservationDetails struct {
	TeamName        string          `json:"teamName"`
	MatchDate       string          `json:"matchDate"`
	NumberOfTickets int             `json:"numberOfTickets"`
	SeatType        string          `json:"seatType"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	HelperName      string          `json:"helperName"`
}

// TotalPriceText renders the total price as Korean won, e.g. "56,000원".
func (d ReservationDetails) TotalPriceText() string {
	return FormatWon(d.TotalPrice)
}

// Helper activity status strings as delivered by the backend.
const (
	ActivityCompleted  = "도움 완료"
	ActivityInProgress = "진행 중"
)

// HelpActivity is one row of a helper's activity history.
type HelpActivity struct {
	ID            string `json:"id"`
	SeniorFanName string `json:"seniorFanName"`
	TeamName      string `json:"teamName"`
	GameDate      string `json:"gameDate"`
	Status        string `json:"status"`
}

// SummaryStats is a helper's aggregate record; both numbers are computed by
// the backend.
type SummaryStats struct {
	TotalSessionsCompleted int   `json:"totalSessionsCompleted"`
	MileagePoints          int64 `json:"mileagePoints"`
}

// MileageText renders mileage points with thousand separators.
func (s SummaryStats) MileageText() string {
	return groupDigits(decimal.NewFromInt(s.MileagePoints).String())
}

// FormatWon renders an amount as grouped digits with the won suffix. The
// fractional part is dropped; KRW has no minor unit.
func FormatWon(amount decimal.Decimal) string {
	return groupDigits(amount.Truncate(0).String()) + "원"
}

// groupDigits inserts comma separators into a plain integer string.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	for i, r := range s {
		if i != 0 && (i-lead)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
