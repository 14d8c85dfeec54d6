package handler

import (
	"net/http"
	"strconv"

	"github.com/SafatUddin/CAR-Hub/internal/config"
	"github.com/SafatUddin/CAR-Hub/internal/middleware"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	uc *usecase.AdminUsecase
}

func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/cars/pending", h.listPending)
	g.POST("/cars/:id/approve", h.approve)
	g.POST("/cars/:id/reject", h.reject)
	g.GET("/dashboard", h.dashboard)
}

func (h *AdminHandler) listPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context(), actorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Approve(c.Request().Context(), actorFromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "listing approved"})
}

type RejectCarRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) reject(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req RejectCarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Reject(c.Request().Context(), actorFromContext(c), id, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "listing rejected"})
}

func (h *AdminHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context(), actorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
