package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/service"
	"yamdb/internal/middleware/auth"
)

const (
	subjectKey = "subject"
	userKey    = "user"
)

// Authenticate resolves the bearer token, if any, into the request subject.
// Requests without a bearer token continue as anonymous; a token that does
// not verify is rejected with 401.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(subjectKey, permission.Anonymous())

		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, err := auth.TokenFromHeader(header)
		if err != nil {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperr.ErrNotAuthenticated) {
				c.Header("WWW-Authenticate", `Bearer realm="api"`)
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: dto.MsgInvalidToken})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: dto.MsgServerError})
			return
		}

		c.Set(subjectKey, permission.SubjectFromUser(user))
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentSubject returns the caller set by Authenticate, anonymous if unset.
func CurrentSubject(c *gin.Context) permission.Subject {
	if v, ok := c.Get(subjectKey); ok {
		if s, ok := v.(permission.Subject); ok {
			return s
		}
	}
	return permission.Anonymous()
}

// CurrentUser returns the authenticated account, or nil for anonymous callers.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// SetSubject is used by tests and internal callers to impersonate a user.
func SetSubject(c *gin.Context, user *models.User) {
	c.Set(subjectKey, permission.SubjectFromUser(user))
	c.Set(userKey, user)
}
