package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the passwordless sign-in routes. throttle guards
// both endpoints and may be nil.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, throttle gin.HandlerFunc) {
	auth := router.Group("/auth")
	if throttle != nil {
		auth.Use(throttle)
	}
	auth.POST("/email/", h.SendCode)
	auth.POST("/token/", h.Token)
}

// SendCode registers the email if needed and mails a confirmation code.
// The response echoes the request; an omitted username reads as the email.
// POST /auth/email/
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	_, err := h.authService.SendConfirmationCode(ctx, service.RegistrationInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	username := req.Username
	if username == "" {
		username = req.Email
	}
	c.JSON(http.StatusOK, dto.SignupResponse{Email: req.Email, Username: username})
}

// Token exchanges a confirmation code for a bearer token. A wrong code is
// reported inside a 200 body.
// POST /auth/token/
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token, err := h.authService.ExchangeCode(ctx, req.Email, req.ConfirmationCode)
	if errors.Is(err, apperr.ErrInvalidConfirmationCode) {
		c.JSON(http.StatusOK, dto.TokenResponse{Token: dto.MsgInvalidConfirmationCode})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
