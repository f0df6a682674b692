package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gachigayo/models"
	"gachigayo/monitoring"
)

// call performs one backend round trip. A non-nil body is sent as JSON, a
// non-nil out receives the decoded reply. access may be empty for the
// endpoints the backend serves without authentication.
func (c *client) call(ctx context.Context, op, method, path, access string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: json.Marshal: %w", op, err)
		}
		reader = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: http.NewRequestWithContext: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		monitoring.ObserveBackendRequest(op, 0, time.Since(start))
		return fmt.Errorf("%s: hc.Do: %w", op, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveBackendRequest(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		rbody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %w", op, newAPIError(resp.StatusCode, rbody))
	}

	if out != nil {
		dec := json.NewDecoder(resp.Body)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("%s: json.Decode: %w", op, err)
		}
	}

	return nil
}

func (c *client) Login(ctx context.Context, phone, password string) (*TokenPair, error) {
	form := map[string]string{
		"phone":    phone,
		"password": password,
	}

	var pair TokenPair
	if err := c.call(ctx, "login", http.MethodPost, "/api/auth/login/", "", form, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *client) ListOpenRequests(ctx context.Context, access string) ([]models.HelpRequest, error) {
	var reqs []models.HelpRequest
	if err := c.call(ctx, "listOpenRequests", http.MethodGet, "/api/requests/", access, nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *client) SubmitProposal(ctx context.Context, access, requestID string) error {
	path := fmt.Sprintf("/api/requests/%s/proposal/", url.PathEscape(requestID))
	return c.call(ctx, "submitProposal", http.MethodPost, path, access, nil, nil)
}

func (c *client) FetchProposal(ctx context.Context, requestID string) (*models.ReservationDetails, error) {
	path := fmt.Sprintf("/api/requests/%s/proposal/", url.PathEscape(requestID))

	var details models.ReservationDetails
	if err := c.call(ctx, "fetchProposal", http.MethodGet, path, "", nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *client) ConfirmSeat(ctx context.Context, requestID string) error {
	path := fmt.Sprintf("/api/requests/%s/confirm/", url.PathEscape(requestID))
	return c.call(ctx, "confirmSeat", http.MethodPost, path, "", nil, nil)
}

func (c *client) ListMyRequests(ctx context.Context, access string) (current, past []models.ReservationRequest, err error) {
	var reply struct {
		CurrentRequests []models.ReservationRequest `json:"currentRequests"`
		PastRequests    []models.ReservationRequest `json:"pastRequests"`
	}
	if err := c.call(ctx, "listMyRequests", http.MethodGet, "/api/requests/my/", access, nil, &reply); err != nil {
		return nil, nil, err
	}

	// A status value outside the six-state enum is a contract break, not
	// something to render as an unknown badge.
	for _, r := range append(append([]models.ReservationRequest{}, reply.CurrentRequests...), reply.PastRequests...) {
		if _, err := models.ParseRequestStatus(string(r.Status)); err != nil {
			return nil, nil, fmt.Errorf("listMyRequests: request %s: %w", r.ID, err)
		}
	}

	return reply.CurrentRequests, reply.PastRequests, nil
}

func (c *client) CreateRequest(ctx context.Context, access string, form *CreateForm) error {
	return c.call(ctx, "createRequest", http.MethodPost, "/api/requests/create/", access, form, nil)
}

func (c *client) RequestDetail(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error) {
	path := "/api/help-requests/" + url.PathEscape(requestID)

	var detail models.DetailedHelpRequest
	if err := c.call(ctx, "requestDetail", http.MethodGet, path, "", nil, &detail); err != nil {
		return nil, err
	}
	if _, err := models.ParseHelpStage(string(detail.Stage)); err != nil {
		return nil, fmt.Errorf("requestDetail: request %s: %w", requestID, err)
	}
	return &detail, nil
}

func (c *client) HelperActivities(ctx context.Context) ([]models.HelpActivity, error) {
	var activities []models.HelpActivity
	if err := c.call(ctx, "helperActivities", http.MethodGet, "/api/helper/activities", "", nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *client) HelperStats(ctx context.Context) (*models.SummaryStats, error) {
	var stats models.SummaryStats
	if err := c.call(ctx, "helperStats", http.MethodGet, "/api/helper/stats", "", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
