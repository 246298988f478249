package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amrit-pandey/airbnb-clone/internal/server/auth"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/services"
)

const identityKey = "identity"

// sessionMiddleware resolves the session cookie into an Identity. A missing
// or unverifiable cookie yields the anonymous identity; routes that need a
// caller add requireAuth on top.
func (s *HTTPServer) sessionMiddleware() gin.HandlerFunc {
	secret := []byte(s.config.SecretKey)
	cookieName := s.config.CookieName

	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Set(identityKey, services.Identity{})
			c.Next()
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			// invalid token is "anonymous", not a fault
			c.Set(identityKey, services.Identity{})
			c.Next()
			return
		}

		c.Set(identityKey, services.Identity{UserID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

// requireAuth rejects anonymous callers with an explicit 401.
func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c).IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) services.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(services.Identity); ok {
			return id
		}
	}
	return services.Identity{}
}

// corsMiddleware allows the configured SPA origin with credentials, so the
// session cookie survives cross-origin requests.
func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	origin := s.config.CORSOrigin

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// setSessionCookie installs the session token as an HTTP-only cookie.
func (s *HTTPServer) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(s.config.TokenValidityDuration.Seconds())
	c.SetCookie(s.config.CookieName, token, maxAge, "/", "", s.config.CookieSecure, true)
}

// clearSessionCookie removes the session cookie unconditionally.
func (s *HTTPServer) clearSessionCookie(c *gin.Context) {
	c.SetCookie(s.config.CookieName, "", -1, "/", "", s.config.CookieSecure, true)
}
