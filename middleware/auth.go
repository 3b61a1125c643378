package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"absen_map_dashboard/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const TokenCookie = "token"

// AuthMiddleware guards dashboard routes with a JWT taken from the
// Authorization header or the session cookie. Page requests without a valid
// token are redirected to the login form, API requests get a 401.
func AuthMiddleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			reject(c, err.Error())
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			log.Printf("Token validation error: %v", err)
			reject(c, "Invalid or expired token")
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fmt.Errorf("Authorization header must be in the format: Bearer {token}")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", fmt.Errorf("Authorization header is required")
}

func reject(c *gin.Context, message string) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}

// TokenService issues and validates session tokens.
type TokenService struct {
	JWTSecret []byte
	TTL       time.Duration
	now       func() time.Time
}

func NewTokenService(jwtSecret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		JWTSecret: jwtSecret,
		TTL:       ttl,
		now:       time.Now,
	}
}

// GenerateToken signs an access token for username.
func (s *TokenService) GenerateToken(username string) (string, time.Time, error) {
	issued := s.now()
	expires := issued.Add(s.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
		},
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (s *TokenService) Parse(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.JWTSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// VerifyPassword checks if a password matches the hashed version
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
