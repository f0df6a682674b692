// Package backend is the HTTP client for the external ticket-assistance
// backend. The front-end owns no request state; every page load goes back
// to this API.
package backend

import (
	"context"
	"net/http"
	"time"

	"gachigayo/models"
)

var _ Backend = (*client)(nil)

type (
	Config struct {
		// BaseURL is the backend origin, e.g. "https://api.gachigayo.kr".
		BaseURL string `json:"base_url"`

		// Timeout bounds every single call; there are no retries.
		Timeout time.Duration `json:"timeout"`
	}

	client struct {
		baseURL string

		// hc is the http client.
		hc *http.Client
	}
)

// TokenPair is the credential pair issued by the backend at login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateForm is the wire body for request creation.
type CreateForm struct {
	TeamID          string `json:"teamId"`
	GameDate        string `json:"gameDate"`
	NumberOfTickets int    `json:"numberOfTickets"`
}

// Backend is the full REST surface this front-end consumes. Methods that
// take an access token attach it as a bearer header; the proposal-details
// and confirm endpoints are served without authentication by the current
// backend (see DESIGN.md) and so take none.
type Backend interface {
	// Login exchanges phone+password for a token pair.
	Login(ctx context.Context, phone, password string) (*TokenPair, error)

	// ListOpenRequests lists requests still waiting for a helper.
	ListOpenRequests(ctx context.Context, access string) ([]models.HelpRequest, error)

	// SubmitProposal registers the helper's claim on a request.
	SubmitProposal(ctx context.Context, access, requestID string) error

	// FetchProposal loads the proposed reservation for confirmation.
	FetchProposal(ctx context.Context, requestID string) (*models.ReservationDetails, error)

	// ConfirmSeat finalizes the proposed seat on the senior's behalf.
	ConfirmSeat(ctx context.Context, requestID string) error

	// ListMyRequests lists the caller's own requests, pre-partitioned by
	// the backend into current and past.
	ListMyRequests(ctx context.Context, access string) (current, past []models.ReservationRequest, err error)

	// CreateRequest submits a new help request.
	CreateRequest(ctx context.Context, access string, form *CreateForm) error

	// RequestDetail loads one request for the helper detail page.
	RequestDetail(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error)

	// HelperActivities lists the helper's past and running help sessions.
	HelperActivities(ctx context.Context) ([]models.HelpActivity, error)

	// HelperStats loads the helper's aggregate completion count and mileage.
	HelperStats(ctx context.Context) (*models.SummaryStats, error)
}

// New creates a backend client.
func New(cfg *Config) Backend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		baseURL: cfg.BaseURL,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: timeout,
		},
	}
}
