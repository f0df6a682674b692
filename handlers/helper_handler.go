package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"gachigayo/services"
	"gachigayo/services/backend"
)

type HelperHandler struct {
	helper *services.HelperService
}

func NewHelperHandler(helper *services.HelperService) *HelperHandler {
	return &HelperHandler{helper: helper}
}

// RegisterRoutes mounts the helper pages. The detail, mark-helped and my-page
// routes hit backend endpoints that are served without authentication, so
// only the dashboard and the claim action require a session.
func (h *HelperHandler) RegisterRoutes(g *echo.Group, session echo.MiddlewareFunc) {
	g.GET("/helper/dashboard", h.Dashboard, session)
	g.POST("/helper/requests/:requestId/proposal", h.SubmitProposal, session)
	g.GET("/helper/requests/:requestId", h.Detail)
	g.POST("/helper/requests/:requestId/helped", h.MarkHelped)
	g.GET("/helper/my-page", h.MyPage)
}

func (h *HelperHandler) Dashboard(c echo.Context) error {
	view, err := h.helper.Dashboard(c.Request().Context(), accessToken(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *HelperHandler) SubmitProposal(c echo.Context) error {
	requestID := c.PathParam("requestId")

	result, err := h.helper.SubmitProposal(c.Request().Context(), accessToken(c), requestID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HelperHandler) Detail(c echo.Context) error {
	requestID := c.PathParam("requestId")

	view, err := h.helper.Detail(c.Request().Context(), requestID)
	if err != nil {
		if backend.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error":  "요청을 찾을 수 없어요. 이미 마감되었을 수 있어요.",
				"backTo": "/helper/dashboard",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *HelperHandler) MarkHelped(c echo.Context) error {
	requestID := c.PathParam("requestId")

	result, err := h.helper.MarkHelped(c.Request().Context(), requestID)
	if err != nil {
		if backend.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error":  "요청을 찾을 수 없어요. 이미 마감되었을 수 있어요.",
				"backTo": "/helper/dashboard",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HelperHandler) MyPage(c echo.Context) error {
	view, err := h.helper.MyPage(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}
