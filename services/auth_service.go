package services

import (
	"context"
	"log/slog"

	"gachigayo/monitoring"
	"gachigayo/services/backend"
	"gachigayo/utils"
)

// Role values a login can be made as. The two roles land on different home
// pages and see disjoint parts of the app.
const (
	RoleSenior = "senior"
	RoleHelper = "helper"
)

// AuthService exchanges credentials for a session and tears sessions down.
type AuthService struct {
	backend  backend.Backend
	sessions *SessionService
	breaker  *utils.CircuitBreaker
}

func NewAuthService(b backend.Backend, sessions *SessionService) *AuthService {
	return &AuthService{
		backend:  b,
		sessions: sessions,
		breaker:  utils.NewCircuitBreaker("auth-backend"),
	}
}

// LoginForm is the login submission. Credentials pass through to the backend
// untouched; nothing is hashed or stored here.
type LoginForm struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResult carries the opaque session id and the role's home page.
type LoginResult struct {
	SessionID  string `json:"sessionId"`
	RedirectTo string `json:"redirectTo"`
}

func (s *AuthService) Login(ctx context.Context, form *LoginForm) (*LoginResult, error) {
	if form.Phone == "" || form.Password == "" {
		return nil, &ValidationError{Message: "전화번호와 비밀번호를 입력해주세요."}
	}

	var redirectTo string
	switch form.Role {
	case RoleSenior:
		redirectTo = "/senior/select-team"
	case RoleHelper:
		redirectTo = "/helper/dashboard"
	default:
		return nil, &ValidationError{Message: "로그인 유형을 선택해주세요."}
	}

	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.backend.Login(ctx, form.Phone, form.Password)
	})
	if err != nil {
		return nil, err
	}

	sessionID, err := s.sessions.Create(ctx, result.(*backend.TokenPair))
	if err != nil {
		return nil, err
	}

	monitoring.SessionOpened()
	slog.Info("login succeeded", "role", form.Role)
	return &LoginResult{
		SessionID:  sessionID,
		RedirectTo: redirectTo,
	}, nil
}

// Logout drops the session. A missing session is not an error; the reader
// ends up logged out either way.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return err
	}
	monitoring.SessionClosed()
	return nil
}
