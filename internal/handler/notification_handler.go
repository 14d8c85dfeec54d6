package handler

import (
	"net/http"

	"github.com/SafatUddin/CAR-Hub/internal/config"
	"github.com/SafatUddin/CAR-Hub/internal/middleware"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/notifications")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.GET("/unread-count", h.unreadCount)
	g.POST("/read-all", h.markAllRead)
}

func (h *NotificationHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func (h *NotificationHandler) unreadCount(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	count, err := h.uc.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) markAllRead(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.MarkAllRead(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "all notifications marked read"})
}
