package handler

import (
	"errors"
	"net/http"

	"centros-turnos-api/internal/schema"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge int
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, cookieMaxAge int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, maxAge, "/auth", "", h.secureCookie, true)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req schema.LoginIn
	if err := schema.BindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, response.RefreshToken, h.cookieMaxAge)
	utils.JSONResponse(c, http.StatusOK, response)
}

// Refresh generates a new access token from the refresh cookie
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) || errors.Is(err, service.ErrRefreshExpired) {
			utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout revokes the refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err == nil {
		if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
			respondError(c, err)
			return
		}
	}

	h.setRefreshCookie(c, "", -1)
	utils.MessageResponse(c, "Logged out successfully")
}

// Register creates an operator account (admin only)
func (h *AuthHandler) Register(c *gin.Context) {
	var req schema.RegisterIn
	if err := schema.BindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{"user": response})
}
