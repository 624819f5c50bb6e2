package handler

import (
	"net/http"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type UserResponse struct {
	ID         uint64 `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	CreatedAt  string `json:"createdAt"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		FullName: body.FullName,
		Email:    body.Email,
		Phone:    body.Phone,
		Password: body.Password,
		Role:     model.UserRole(body.Role),
	})
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			return c.JSON(http.StatusConflict, NewErrorResponse("email_taken", "email already registered"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	h.logger.Info("user registered", zap.Uint64("user_id", u.ID), zap.String("role", string(u.Role)))
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, token, err := h.svc.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid credentials"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "login failed"))
		}
	}
	h.logger.Info("user logged in", zap.Uint64("user_id", u.ID))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"accessToken": token,
		"tokenType":   "bearer",
		"user":        toUserResponse(u),
	})
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if err := h.svc.VerifyEmail(c.Request().Context(), token); err != nil {
		switch err {
		case service.ErrInvalidToken:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid or expired token"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "verification failed"))
		}
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "email verified"})
}
