package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/permission"
)

// Authorize runs the request-level check of policy for action. Anonymous
// callers that are refused get 401, authenticated ones 403.
func Authorize(policy permission.Policy, action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := CurrentSubject(c)
		if policy.AdmitRequest(subject, action) {
			c.Next()
			return
		}
		Deny(c, subject)
	}
}

// Deny aborts with the status matching who was refused.
func Deny(c *gin.Context, subject permission.Subject) {
	if !subject.Authenticated() {
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: dto.MsgNotAuthenticated})
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Detail: dto.MsgForbidden})
}
