package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"gachigayo/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes mounts the auth endpoints. The login route takes the rate
// limiting middleware; the others do not.
func (h *AuthHandler) RegisterRoutes(g *echo.Group, loginLimiter echo.MiddlewareFunc) {
	g.GET("/landing", h.Landing)
	g.POST("/auth/login", h.Login, loginLimiter)
	g.POST("/auth/logout", h.Logout)
}

// roleChoice is one card on the landing page.
type roleChoice struct {
	Role    string `json:"role"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	LoginTo string `json:"loginTo"`
}

// Landing serves the role selection page: the senior path and the helper
// path, each leading to its own login.
func (h *AuthHandler) Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"roles": []roleChoice{
			{
				Role:    services.RoleSenior,
				Title:   "티켓 예매 도움이 필요해요",
				Text:    "좋아하는 팀의 경기를 보러 가고 싶으신가요?",
				LoginTo: "/login?role=senior",
			},
			{
				Role:    services.RoleHelper,
				Title:   "예매를 도와드릴게요",
				Text:    "어르신 야구 팬의 직관을 함께 만들어주세요.",
				LoginTo: "/login?role=helper",
			},
		},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form services.LoginForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "전화번호와 비밀번호를 입력해주세요.",
		})
	}

	result, err := h.auth.Login(c.Request().Context(), &form)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), bearerToken(c)); err != nil {
		slog.Error("logout failed", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"redirectTo": "/login"})
}
