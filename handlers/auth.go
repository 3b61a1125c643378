package handlers

import (
	"log"
	"net/http"
	"strings"

	"absen_map_dashboard/middleware"
	"absen_map_dashboard/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	tokenService *middleware.TokenService
	username     string
	passwordHash string
	secureCookie bool
}

func NewAuthHandler(tokens *middleware.TokenService, username, passwordHash string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		tokenService: tokens,
		username:     username,
		passwordHash: passwordHash,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": PageTitle})
}

// Login accepts the login form or a JSON body. Form posts get the session
// cookie and a redirect, JSON callers get the token in the body as well.
func (h *AuthHandler) Login(c *gin.Context) {
	isJSON := strings.HasPrefix(c.ContentType(), "application/json")

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		if isJSON {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Title": PageTitle, "Error": "Username dan password wajib diisi"})
		return
	}

	if req.Username != h.username || !middleware.VerifyPassword(h.passwordHash, req.Password) {
		log.Printf("Failed login attempt for user %q", req.Username)
		if isJSON {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Title": PageTitle, "Error": "Username atau password salah", "Username": req.Username})
		return
	}

	token, expires, err := h.tokenService.GenerateToken(req.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.tokenService.TTL.Seconds()), "/", "", h.secureCookie, true)

	if isJSON {
		c.JSON(http.StatusOK, models.LoginResponse{AccessToken: token, ExpiresAt: expires.Unix()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
