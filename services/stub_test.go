package services

import (
	"context"

	"gachigayo/models"
	"gachigayo/services/backend"
)

// stubBackend lets each test wire only the calls it expects; everything else
// answers zero values.
type stubBackend struct {
	loginFn            func(ctx context.Context, phone, password string) (*backend.TokenPair, error)
	listOpenFn         func(ctx context.Context, access string) ([]models.HelpRequest, error)
	submitProposalFn   func(ctx context.Context, access, requestID string) error
	fetchProposalFn    func(ctx context.Context, requestID string) (*models.ReservationDetails, error)
	confirmSeatFn      func(ctx context.Context, requestID string) error
	listMyRequestsFn   func(ctx context.Context, access string) (current, past []models.ReservationRequest, err error)
	createRequestFn    func(ctx context.Context, access string, form *backend.CreateForm) error
	requestDetailFn    func(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error)
	helperActivitiesFn func(ctx context.Context) ([]models.HelpActivity, error)
	helperStatsFn      func(ctx context.Context) (*models.SummaryStats, error)
}

var _ backend.Backend = (*stubBackend)(nil)

func (s *stubBackend) Login(ctx context.Context, phone, password string) (*backend.TokenPair, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, phone, password)
	}
	return &backend.TokenPair{}, nil
}

func (s *stubBackend) ListOpenRequests(ctx context.Context, access string) ([]models.HelpRequest, error) {
	if s.listOpenFn != nil {
		return s.listOpenFn(ctx, access)
	}
	return nil, nil
}

func (s *stubBackend) SubmitProposal(ctx context.Context, access, requestID string) error {
	if s.submitProposalFn != nil {
		return s.submitProposalFn(ctx, access, requestID)
	}
	return nil
}

func (s *stubBackend) FetchProposal(ctx context.Context, requestID string) (*models.ReservationDetails, error) {
	if s.fetchProposalFn != nil {
		return s.fetchProposalFn(ctx, requestID)
	}
	return &models.ReservationDetails{}, nil
}

func (s *stubBackend) ConfirmSeat(ctx context.Context, requestID string) error {
	if s.confirmSeatFn != nil {
		return s.confirmSeatFn(ctx, requestID)
	}
	return nil
}

func (s *stubBackend) ListMyRequests(ctx context.Context, access string) (current, past []models.ReservationRequest, err error) {
	if s.listMyRequestsFn != nil {
		return s.listMyRequestsFn(ctx, access)
	}
	return nil, nil, nil
}

func (s *stubBackend) CreateRequest(ctx context.Context, access string, form *backend.CreateForm) error {
	if s.createRequestFn != nil {
		return s.createRequestFn(ctx, access, form)
	}
	return nil
}

func (s *stubBackend) RequestDetail(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error) {
	if s.requestDetailFn != nil {
		return s.requestDetailFn(ctx, requestID)
	}
	return &models.DetailedHelpRequest{}, nil
}

func (s *stubBackend) HelperActivities(ctx context.Context) ([]models.HelpActivity, error) {
	if s.helperActivitiesFn != nil {
		return s.helperActivitiesFn(ctx)
	}
	return nil, nil
}

func (s *stubBackend) HelperStats(ctx context.Context) (*models.SummaryStats, error) {
	if s.helperStatsFn != nil {
		return s.helperStatsFn(ctx)
	}
	return &models.SummaryStats{}, nil
}
