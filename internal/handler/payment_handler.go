package handler

import (
	"net/http"
	"strconv"

	"github.com/SafatUddin/CAR-Hub/internal/config"
	"github.com/SafatUddin/CAR-Hub/internal/middleware"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/payments/methods", h.methods)

	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("/:id/pay", h.pay)
}

type PaymentMethodsResponse struct {
	Methods []string `json:"methods"`
}

func (h *PaymentHandler) methods(c echo.Context) error {
	return c.JSON(http.StatusOK, PaymentMethodsResponse{Methods: h.uc.Methods()})
}

type PayRequest struct {
	Method string `json:"method"`
}

func (h *PaymentHandler) pay(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Pay(c.Request().Context(), userID, id, req.Method)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
