package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"contacts_api/internal/middleware"
	"contacts_api/internal/model"
	"contacts_api/internal/service"
	"contacts_api/internal/utils"

	"github.com/gin-gonic/gin"
)

const tokenTypeBearer = "bearer"

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	jwtUtil *utils.JWTUtil
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, jwtUtil *utils.JWTUtil, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: s, jwtUtil: jwtUtil, logger: logger}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		internalError(c, h.logger, "Failed to register user", err)
		return
	}
	writeResult(c, res.Result, http.StatusCreated, gin.H{"message": res.Message}, keyMessage)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		internalError(c, h.logger, "Failed to sign in", err)
		return
	}

	var body model.SignInResponse
	if res.OK() {
		body = model.SignInResponse{Name: res.User.Name, AccessToken: res.Token, TokenType: tokenTypeBearer}
	}
	writeResult(c, res.Result, http.StatusOK, body, keyMessage)
}

// WhoAmI decodes the bearer token itself so an expired token can be
// reported as such.
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	tokenString, ok := middleware.BearerToken(c)
	if !ok {
		middleware.Unauthorized(c, middleware.MsgNotAuthenticated)
		return
	}

	claims, err := h.jwtUtil.Decode(tokenString)
	if err != nil {
		if errors.Is(err, utils.ErrExpiredToken) {
			middleware.Unauthorized(c, "Token expired")
			return
		}
		middleware.Unauthorized(c, middleware.MsgInvalidToken)
		return
	}
	sub, err := utils.Subject(claims)
	if err != nil {
		middleware.Unauthorized(c, middleware.MsgInvalidToken)
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		middleware.Unauthorized(c, middleware.MsgInvalidToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sub": sub, "expires_at": exp.Time.UTC()})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg gin.IRouter) {
	rg.POST("/signup", h.SignUp)
	rg.POST("/signin", h.SignIn)
	rg.GET("/whoami", h.WhoAmI)
}
