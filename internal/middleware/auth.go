package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

const (
	ContextSession = "session"
	ContextClaims  = "claims"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*model.TokenClaims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate verifies the JWT token and stores the session in the context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			return
		}

		claims, err := m.validator.ValidateToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized(err))
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextSession, claims.Session())
		c.Next()
	}
}

// RequireAdmin lets only the administrator through. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			return
		}
		if !session.IsAdmin {
			httputil.RespondWithError(c, errors.Forbidden("administrator access required"))
			return
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) (model.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return model.Session{}, false
	}
	session, ok := v.(model.Session)
	return session, ok
}

func ClaimsFrom(c *gin.Context) (*model.TokenClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*model.TokenClaims)
	return claims, ok
}
