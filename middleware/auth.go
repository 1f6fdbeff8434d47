package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret returns the signing secret or an error when it is unconfigured.
// There is no fallback default.
func JWTSecret() ([]byte, error) {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return []byte(s), nil
}

// RequireAuth rejects requests without a valid bearer token. The secret is
// resolved at route-setup time; missing configuration aborts startup.
func RequireAuth() gin.HandlerFunc {
	secret, err := JWTSecret()
	if err != nil {
		panic(err)
	}
	return func(c *gin.Context) {
		userID, role, err := parseToken(c, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// OptionalAuth attaches user identity when a valid token is present and lets
// the request through either way.
func OptionalAuth() gin.HandlerFunc {
	secret, err := JWTSecret()
	if err != nil {
		panic(err)
	}
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if userID, role, err := parseToken(c, secret); err == nil {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get("role"); role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseToken(c *gin.Context, secret []byte) (uint, string, error) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		return 0, "", errors.New("Authorization header is missing")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)
	return uint(id), role, nil
}
