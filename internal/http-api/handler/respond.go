package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/repository"
)

const (
	requestTimeout  = 5 * time.Second
	maxPageSize     = 100
	defaultPageSize = 10
)

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError maps the error taxonomy to a status and body. Unknown errors
// are logged and answered with 500.
func respondError(c *gin.Context, err error) {
	if v, ok := apperr.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, v.Fields)
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: dto.MsgNotAuthenticated})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Detail: dto.MsgForbidden})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: dto.MsgNotFound})
	case errors.Is(err, apperr.ErrThrottled):
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Detail: dto.MsgThrottled})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: dto.MsgServerError})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: dto.MsgNotFound})
}

// bindJSON decodes and validates the body into obj. An empty body is
// validated as an empty object.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BindingError(err).Fields)
		return false
	}
	return true
}

// idParam parses a numeric path parameter. A malformed id matches no route,
// so it is answered with 404.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

// admitObject runs the object-level check and aborts when it fails.
func admitObject(c *gin.Context, policy permission.Policy, action permission.Action, obj any) bool {
	subject := middleware.CurrentSubject(c)
	if policy.AdmitObject(subject, action, obj) {
		return true
	}
	middleware.Deny(c, subject)
	return false
}

// pager reads ?page= and ?page_size=.
type pager struct {
	size int
}

func newPager(size int) pager {
	if size <= 0 {
		size = defaultPageSize
	}
	return pager{size: size}
}

func (p pager) page(c *gin.Context) (repository.Page, bool) {
	page := repository.Page{Number: 1, Size: p.size}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "Invalid page."})
			return page, false
		}
		page.Number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = min(n, maxPageSize)
		}
	}
	return page, true
}

// respondPage writes the list envelope, or 404 for a page past the end.
func respondPage[T any](c *gin.Context, results []T, count int64, page repository.Page) {
	if page.Number > 1 && int64(page.Offset()) >= count {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "Invalid page."})
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(results, count, page, absoluteURL(c)))
}

func absoluteURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Scheme = "http"
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	}
	u.Host = c.Request.Host
	return &u
}
