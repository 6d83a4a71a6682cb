package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pedrohsilva/tarefas-api/internal/auth"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

const (
	errUnauthorized = "Unauthorized"

	// CurrentUserKey is the gin context key under which the resolved
	// *domain.User is stored.
	CurrentUserKey = "currentUser"
)

// CurrentUser validates the Bearer token and resolves its subject to a
// live user record. Both checks are mandatory: a syntactically valid,
// unexpired token belonging to a deleted user is rejected, so deleted
// accounts lose access immediately.
func CurrentUser(tokens *auth.TokenIssuer, users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		subject, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), subject)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				logger.ErrorContext(c.Request.Context(), "resolve current user", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// MustCurrentUser pulls the resolved user out of the gin context.
// Only valid on routes behind CurrentUser.
func MustCurrentUser(c *gin.Context) *domain.User {
	return c.MustGet(CurrentUserKey).(*domain.User)
}
