package middleware

import (
	"strings"

	"link1t-backend/internal/delivery/http/response"
	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/auth"
	"link1t-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the identity provider's session cookie
const SessionCookie = "__session"

func bearerToken(c *gin.Context) string {
	// 1. Try to get token from Header
	if h := c.GetHeader("Authorization"); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return ""
	}
	// 2. Try to get token from Cookie
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session token
func AuthMiddleware(verifier *auth.Verifier, audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			audit.LogUnauthorized(c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c), c.FullPath(), "missing_token")
			c.Error(apperror.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			audit.LogUnauthorized(c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c), c.FullPath(), err.Error())
			c.Error(apperror.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}

		setCaller(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// and otherwise lets the request through as anonymous.
func OptionalAuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := verifier.Verify(c.Request.Context(), token); err == nil {
				setCaller(c, claims)
			}
		}
		c.Next()
	}
}

func setCaller(c *gin.Context, claims *auth.Claims) {
	c.Set(domain.KeyCaller, domain.CallerIdentity{UserID: claims.Subject, Email: claims.Email})
}

// Caller returns the identity resolved by the auth middlewares; empty when anonymous
func Caller(c *gin.Context) domain.CallerIdentity {
	if v, ok := c.Get(domain.KeyCaller); ok {
		if caller, ok := v.(domain.CallerIdentity); ok {
			return caller
		}
	}
	return domain.CallerIdentity{}
}
