package services

import (
	"context"
	"errors"
	"log/slog"

	"gachigayo/models"
	"gachigayo/services/backend"
	"gachigayo/utils"
)

// markHelpedRedirectDelayMS gives the reader a moment to see the completed
// progress bar before the page moves on.
const markHelpedRedirectDelayMS = 1500

// HelperService backs the helper-facing pages: the open-request dashboard,
// the request detail with its progress steps, and the helper's own my-page.
type HelperService struct {
	backend backend.Backend
	breaker *utils.CircuitBreaker
}

func NewHelperService(b backend.Backend) *HelperService {
	return &HelperService{
		backend: b,
		breaker: utils.NewCircuitBreaker("helper-backend"),
	}
}

// DashboardView lists requests still waiting for a helper.
type DashboardView struct {
	Requests []models.HelpRequest `json:"requests"`
	Degraded bool                 `json:"degraded"`
}

func (s *HelperService) Dashboard(ctx context.Context, access string) (*DashboardView, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.ListOpenRequests(ctx, access)
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return nil, ErrSessionExpired
		}
		slog.Error("failed to load open requests", "error", err)
		return &DashboardView{Requests: []models.HelpRequest{}, Degraded: true}, nil
	}

	reqs := result.([]models.HelpRequest)
	if reqs == nil {
		reqs = []models.HelpRequest{}
	}
	return &DashboardView{Requests: reqs}, nil
}

// ProposalResult sends the helper to the detail page of the request they
// just claimed.
type ProposalResult struct {
	RedirectTo string `json:"redirectTo"`
}

func (s *HelperService) SubmitProposal(ctx context.Context, access, requestID string) (*ProposalResult, error) {
	_, err := s.breaker.Execute(ctx, func() (any, error) {
		return nil, s.backend.SubmitProposal(ctx, access, requestID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("proposal submitted", "request", requestID)
	return &ProposalResult{RedirectTo: "/helper/request/" + requestID}, nil
}

// StageStep is one entry of the four-step progress rail on the detail page.
type StageStep struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	Reached bool   `json:"reached"`
	Current bool   `json:"current"`
}

// DetailView is the helper request detail page. Provisional is set when the
// shown stage is ahead of what the backend last reported.
type DetailView struct {
	ID              string      `json:"id"`
	SeniorFanName   string      `json:"seniorFanName"`
	TeamName        string      `json:"teamName"`
	HomeStadium     string      `json:"homeStadium,omitempty"`
	GameDate        string      `json:"gameDate"`
	GameTime        string      `json:"gameTime,omitempty"`
	NumberOfTickets int         `json:"numberOfTickets"`
	ContactPref     string      `json:"contactPreference,omitempty"`
	PhoneNumber     string      `json:"phoneNumber,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	StageLabel      string      `json:"stageLabel"`
	StageColor      string      `json:"stageColor"`
	Step            int         `json:"step"`
	Progress        float64     `json:"progress"`
	Steps           []StageStep `json:"steps"`
	CanMarkHelped   bool        `json:"canMarkHelped"`
	Provisional     bool        `json:"provisional"`
}

// Detail loads one request for the helper. Opening a freshly claimed request
// shows it as already in progress: the backend still says REQUESTED until the
// claim settles, and waiting for that would flash the wrong step at the
// helper who just clicked accept.
func (s *HelperService) Detail(ctx context.Context, requestID string) (*DetailView, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.RequestDetail(ctx, requestID)
	})
	if err != nil {
		return nil, err
	}
	req := result.(*models.DetailedHelpRequest)

	stage := req.Stage
	provisional := false
	if stage == models.StageRequested {
		stage = models.StageInProgress
		provisional = true
	}

	view := &DetailView{
		ID:              req.ID,
		SeniorFanName:   req.SeniorFanName,
		TeamName:        req.TeamName,
		GameDate:        req.GameDate,
		GameTime:        req.GameTime,
		NumberOfTickets: req.NumberOfTickets,
		ContactPref:     req.ContactPref,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
		StageLabel:      stage.Label(),
		StageColor:      stage.Color(),
		Step:            stage.Step(),
		Progress:        stage.Progress(),
		Steps:           stageSteps(stage),
		CanMarkHelped:   !stage.Done(),
		Provisional:     provisional,
	}
	if team, ok := models.FindTeam(req.TeamID); ok {
		view.HomeStadium = team.HomeStadium
	}
	return view, nil
}

func stageSteps(current models.HelpStage) []StageStep {
	all := []models.HelpStage{
		models.StageRequested,
		models.StageInProgress,
		models.StageTicketProposed,
		models.StageCompleted,
	}
	steps := make([]StageStep, 0, models.TotalStages)
	for _, st := range all {
		steps = append(steps, StageStep{
			Step:    st.Step(),
			Label:   st.Label(),
			Color:   st.Color(),
			Reached: st.Step() <= current.Step(),
			Current: st == current,
		})
	}
	return steps
}

// MarkHelpedResult is the page state after the helper reports the ticket info
// as delivered: the bar jumps to step three and the page returns to the
// dashboard after a short pause.
type MarkHelpedResult struct {
	StageLabel      string  `json:"stageLabel"`
	StageColor      string  `json:"stageColor"`
	Step            int     `json:"step"`
	Progress        float64 `json:"progress"`
	Provisional     bool    `json:"provisional"`
	RedirectTo      string  `json:"redirectTo"`
	RedirectDelayMS int     `json:"redirectDelayMs"`
}

// MarkHelped advances the shown stage to TICKET_PROPOSED. The transition is
// provisional: the backend learns of it through the senior's confirmation
// flow, not from this page.
func (s *HelperService) MarkHelped(ctx context.Context, requestID string) (*MarkHelpedResult, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.RequestDetail(ctx, requestID)
	})
	if err != nil {
		return nil, err
	}
	req := result.(*models.DetailedHelpRequest)

	if req.Stage.Done() {
		return nil, &ValidationError{Message: "이미 티켓 정보를 전달한 요청이에요."}
	}

	stage := models.StageTicketProposed
	slog.Info("request marked helped", "request", requestID)
	return &MarkHelpedResult{
		StageLabel:      stage.Label(),
		StageColor:      stage.Color(),
		Step:            stage.Step(),
		Progress:        stage.Progress(),
		Provisional:     true,
		RedirectTo:      "/helper/dashboard",
		RedirectDelayMS: markHelpedRedirectDelayMS,
	}, nil
}

// HelperMyPageView is the helper's own page: lifetime stats plus activity
// history.
type HelperMyPageView struct {
	TotalSessionsCompleted int                   `json:"totalSessionsCompleted"`
	MileageText            string                `json:"mileageText"`
	Activities             []models.HelpActivity `json:"activities"`
	Degraded               bool                  `json:"degraded"`
}

// MyPage loads the helper's stats and activities. Either half failing
// degrades that half to zero values rather than failing the page.
func (s *HelperService) MyPage(ctx context.Context) (*HelperMyPageView, error) {
	view := &HelperMyPageView{
		Activities:  []models.HelpActivity{},
		MileageText: "0",
	}

	statsResult, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.HelperStats(ctx)
	})
	if err != nil {
		slog.Error("failed to load helper stats", "error", err)
		view.Degraded = true
	} else {
		stats := statsResult.(*models.SummaryStats)
		view.TotalSessionsCompleted = stats.TotalSessionsCompleted
		view.MileageText = stats.MileageText()
	}

	actResult, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.HelperActivities(ctx)
	})
	if err != nil {
		slog.Error("failed to load helper activities", "error", err)
		view.Degraded = true
	} else if acts := actResult.([]models.HelpActivity); acts != nil {
		view.Activities = acts
	}

	return view, nil
}
