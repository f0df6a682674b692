package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"gachigayo/models"
	"gachigayo/services/backend"
	"gachigayo/utils"
)

// ValidationError is a client-side rejection. It is raised before any network
// call and its message is shown to the reader as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrCreateInFlight means a create for this session is already running.
var ErrCreateInFlight = errors.New("create request already in flight")

const createLockPrefix = "createlock:"

// SeniorService backs the senior-facing pages: team selection, request
// creation, the my-page dashboard and the seat confirmation flow.
type SeniorService struct {
	backend backend.Backend
	redis   *redis.Client
	breaker *utils.CircuitBreaker
	lockTTL time.Duration
}

func NewSeniorService(b backend.Backend, redisClient *redis.Client, lockTTL time.Duration) *SeniorService {
	return &SeniorService{
		backend: b,
		redis:   redisClient,
		breaker: utils.NewCircuitBreaker("senior-backend"),
		lockTTL: lockTTL,
	}
}

// TeamOption is one selectable team on the team-select page.
type TeamOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName"`
	HomeStadium string `json:"homeStadium"`
}

// Teams lists the KBO teams for the selection screen. The catalog is static;
// no backend call is involved.
func (s *SeniorService) Teams() []TeamOption {
	opts := make([]TeamOption, 0, len(models.KBOTeams))
	for _, t := range models.KBOTeams {
		opts = append(opts, TeamOption{
			ID:          t.ID,
			Name:        t.Name,
			ShortName:   t.ShortName,
			HomeStadium: t.HomeStadium,
		})
	}
	return opts
}

// CreateRequestForm is the senior's request-creation submission.
type CreateRequestForm struct {
	TeamID       string `json:"teamId"`
	GameDate     string `json:"gameDate"`
	Accompanying bool   `json:"accompanying"`
}

// CreateResult tells the front-end where to go after a successful create.
type CreateResult struct {
	RedirectTo string `json:"redirectTo"`
}

// CreateRequest validates and submits a new help request. Validation happens
// before any network call; a failed submission leaves the senior on the form
// with the backend's message.
func (s *SeniorService) CreateRequest(ctx context.Context, access, sessionID string, form *CreateRequestForm) (*CreateResult, error) {
	team, ok := models.FindTeam(form.TeamID)
	if !ok {
		return nil, &ValidationError{Message: "응원하는 팀을 먼저 선택해주세요."}
	}
	if err := validateGameDate(form.GameDate, time.Now()); err != nil {
		return nil, err
	}

	// Accompanying means the senior attends with the helper, so two seats.
	tickets := 1
	if form.Accompanying {
		tickets = 2
	}

	release, err := s.acquireCreateLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	_, err = s.breaker.Execute(ctx, func() (any, error) {
		return nil, s.backend.CreateRequest(ctx, access, &backend.CreateForm{
			TeamID:          team.ID,
			GameDate:        form.GameDate,
			NumberOfTickets: tickets,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("help request created", "team", team.ID, "gameDate", form.GameDate, "tickets", tickets)
	return &CreateResult{RedirectTo: "/senior/my-page"}, nil
}

// validateGameDate rejects dates earlier than yesterday. Yesterday itself is
// allowed so a senior just past midnight can still file for last night's game.
func validateGameDate(gameDate string, now time.Time) error {
	d, err := time.Parse("2006-01-02", gameDate)
	if err != nil {
		return &ValidationError{Message: "경기 날짜를 선택해주세요."}
	}

	yesterday := now.AddDate(0, 0, -1)
	cutoff := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(cutoff) {
		return &ValidationError{Message: "지난 날짜는 선택할 수 없어요. 경기 날짜를 다시 확인해주세요."}
	}
	return nil
}

// acquireCreateLock takes the per-session in-flight lock with SETNX. The lock
// expires on its own even if the release is lost to a crash.
func (s *SeniorService) acquireCreateLock(ctx context.Context, sessionID string) (func(), error) {
	key := createLockPrefix + sessionID
	ok, err := s.redis.SetNX(ctx, key, "1", s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire create lock: %w", err)
	}
	if !ok {
		return nil, ErrCreateInFlight
	}
	return func() {
		if err := s.redis.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			slog.Warn("failed to release create lock", "error", err)
		}
	}, nil
}

// RequestCard is one request on the senior dashboard, with the status already
// rendered into label, colors and the optional call-to-action.
type RequestCard struct {
	ID              string                `json:"id"`
	TeamName        string                `json:"teamName"`
	MatchDate       string                `json:"matchDate"`
	NumberOfTickets int                   `json:"numberOfTickets"`
	HelperName      string                `json:"helperName,omitempty"`
	StatusLabel     string                `json:"statusLabel"`
	StatusTextClass string                `json:"statusTextClass"`
	HeaderClass     string                `json:"headerClass"`
	Action          *models.RequestAction `json:"action,omitempty"`
}

// MyPageView is the senior dashboard: active requests on top, history below.
type MyPageView struct {
	Active   []RequestCard `json:"active"`
	History  []RequestCard `json:"history"`
	Degraded bool          `json:"degraded"`
}

// MyPage builds the senior dashboard. The backend already splits current from
// past, but the split is recomputed here from the status values so the two
// sections can never disagree with the badges shown on the cards.
func (s *SeniorService) MyPage(ctx context.Context, access string) (*MyPageView, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		current, past, err := s.backend.ListMyRequests(ctx, access)
		if err != nil {
			return nil, err
		}
		return append(current, past...), nil
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return nil, ErrSessionExpired
		}
		// An unreachable backend renders as an empty dashboard, not an
		// error page.
		slog.Error("failed to load senior requests", "error", err)
		return &MyPageView{Active: []RequestCard{}, History: []RequestCard{}, Degraded: true}, nil
	}

	active, history := models.PartitionRequests(result.([]models.ReservationRequest))
	return &MyPageView{
		Active:  requestCards(active),
		History: requestCards(history),
	}, nil
}

func requestCards(reqs []models.ReservationRequest) []RequestCard {
	cards := make([]RequestCard, 0, len(reqs))
	for _, r := range reqs {
		cards = append(cards, RequestCard{
			ID:              r.ID,
			TeamName:        r.TeamName,
			MatchDate:       r.MatchDate,
			NumberOfTickets: r.NumberOfTickets,
			HelperName:      r.HelperName,
			StatusLabel:     r.Status.Label(),
			StatusTextClass: r.Status.TextClass(),
			HeaderClass:     r.Status.HeaderClass(),
			Action:          r.Status.Action(r.ID),
		})
	}
	return cards
}

// ConfirmationView is the proposed reservation a senior reviews before
// confirming the seat.
type ConfirmationView struct {
	TeamName        string `json:"teamName"`
	MatchDate       string `json:"matchDate"`
	NumberOfTickets int    `json:"numberOfTickets"`
	SeatType        string `json:"seatType"`
	TotalPriceText  string `json:"totalPriceText"`
	HelperName      string `json:"helperName"`
}

// Confirmation loads the helper's proposal for review.
func (s *SeniorService) Confirmation(ctx context.Context, requestID string) (*ConfirmationView, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.FetchProposal(ctx, requestID)
	})
	if err != nil {
		return nil, err
	}

	d := result.(*models.ReservationDetails)
	return &ConfirmationView{
		TeamName:        d.TeamName,
		MatchDate:       d.MatchDate,
		NumberOfTickets: d.NumberOfTickets,
		SeatType:        d.SeatType,
		TotalPriceText:  d.TotalPriceText(),
		HelperName:      d.HelperName,
	}, nil
}

// ConfirmResult is the outcome of a seat confirmation.
type ConfirmResult struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo"`
}

// ConfirmSeat accepts the proposed seat and sends the senior back to the
// dashboard, where the request now shows as confirmed.
func (s *SeniorService) ConfirmSeat(ctx context.Context, requestID string) (*ConfirmResult, error) {
	_, err := s.breaker.Execute(ctx, func() (any, error) {
		return nil, s.backend.ConfirmSeat(ctx, requestID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("seat confirmed", "request", requestID)
	return &ConfirmResult{
		Message:    "좌석이 확정되었어요. 즐거운 직관 되세요!",
		RedirectTo: "/senior/my-page",
	}, nil
}
