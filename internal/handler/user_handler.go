package handler

import (
	"net/http"

	"github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	u, err := h.svc.Profile(c.Request().Context(), user)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
		}
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body struct {
		FullName *string `json:"fullName"`
		Phone    *string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.UpdateProfile(c.Request().Context(), user, service.UserUpdate{
		FullName: body.FullName,
		Phone:    body.Phone,
	})
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
