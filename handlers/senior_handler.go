package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"gachigayo/services"
	"gachigayo/services/backend"
)

type SeniorHandler struct {
	senior *services.SeniorService
}

func NewSeniorHandler(senior *services.SeniorService) *SeniorHandler {
	return &SeniorHandler{senior: senior}
}

// RegisterRoutes mounts the senior pages. The confirmation pair is reachable
// without a session; everything else needs one.
func (h *SeniorHandler) RegisterRoutes(g *echo.Group, session echo.MiddlewareFunc) {
	g.GET("/senior/teams", h.Teams, session)
	g.POST("/senior/requests", h.CreateRequest, session)
	g.GET("/senior/my-page", h.MyPage, session)
	g.GET("/senior/confirmation/:requestId", h.Confirmation)
	g.POST("/senior/confirmation/:requestId", h.ConfirmSeat)
}

func (h *SeniorHandler) Teams(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"teams": h.senior.Teams(),
	})
}

func (h *SeniorHandler) CreateRequest(c echo.Context) error {
	var form services.CreateRequestForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "입력 내용을 다시 확인해주세요.",
		})
	}

	result, err := h.senior.CreateRequest(c.Request().Context(), accessToken(c), sessionID(c), &form)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *SeniorHandler) MyPage(c echo.Context) error {
	view, err := h.senior.MyPage(c.Request().Context(), accessToken(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *SeniorHandler) Confirmation(c echo.Context) error {
	requestID := c.PathParam("requestId")

	view, err := h.senior.Confirmation(c.Request().Context(), requestID)
	if err != nil {
		if backend.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error":  "티켓 제안을 찾을 수 없어요.",
				"backTo": "/senior/my-page",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *SeniorHandler) ConfirmSeat(c echo.Context) error {
	requestID := c.PathParam("requestId")

	result, err := h.senior.ConfirmSeat(c.Request().Context(), requestID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
