package handler

import (
	"net/http"

	"github.com/SafatUddin/CAR-Hub/internal/access"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		return 0, false
	}
	return id, true
}

// actorFromContext builds the access principal from whatever AuthJWT (or
// OptionalAuthJWT) left on the context. An anonymous request yields a zero
// Actor.
func actorFromContext(c echo.Context) access.Actor {
	id, ok := getUserIDFromContext(c)
	if !ok {
		return access.Actor{}
	}
	role, _ := c.Get("user_role").(string)
	return access.Actor{
		ID:              id,
		IsAdmin:         role == "ADMIN",
		IsAuthenticated: true,
	}
}
