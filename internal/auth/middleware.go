package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mramadan/socialmedia/internal/entities"
)

// ContextKeyUser is the gin context key under which the resolved user is
// stored for protected handlers.
const ContextKeyUser = "auth_user"

// Middleware resolves a bearer token on incoming requests.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireUser returns a handler that extracts the Authorization bearer
// token, resolves it to a user and stores the user in the request context.
// Every authentication failure short-circuits the request with 401 and a
// WWW-Authenticate: Bearer header; a directory infrastructure failure maps
// to 500 instead.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			// Absent header or wrong scheme is the same failure class
			// as a forged token.
			abortUnauthorized(c, ErrTokenMalformed)
			return
		}

		user, err := m.service.ResolveUser(c.Request.Context(), token, TokenTypeAccess)
		if err != nil {
			if IsAuthFailure(err) {
				abortUnauthorized(c, err)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"detail": "internal server error",
			})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user injected by RequireUser.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}

// extractBearerToken pulls the credential out of "Bearer <token>".
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// abortUnauthorized writes the uniform 401 response for authentication
// failures. Every failure kind maps to 401, never 403.
func abortUnauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": err.Error(),
	})
}
