package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/askarbek/moviehub/internal/authctx"
	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/repository"
	"github.com/askarbek/moviehub/internal/token"
)

const (
	errUnauthorized = "Unauthorized"

	userContextKey = "authUser"
)

// Auth is the access gate: it extracts the bearer token, verifies it, and
// resolves the claim to a live user record. A missing or malformed header
// is rejected before the credential store is ever consulted; a valid claim
// whose subject no longer exists (user deregistered after issuance) is
// rejected the same way.
func Auth(tokens *token.Service, users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve token subject", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}

		ctx := authctx.WithUsername(c.Request.Context(), user.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by Auth, or nil on
// unauthenticated requests.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// RequireSelf runs after Auth on routes with a :username parameter and
// rejects requests whose authenticated identity does not own the target
// account.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Username != c.Param("username") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
