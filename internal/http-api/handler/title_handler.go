package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/http-api/service"
)

type TitleHandler struct {
	titleService service.TitleService
	policy       permission.Policy
	pager        pager
}

func NewTitleHandler(titleService service.TitleService, pageSize int) *TitleHandler {
	return &TitleHandler{
		titleService: titleService,
		policy:       permission.New(permission.AdminWriteOrReadOnly),
		pager:        newPager(pageSize),
	}
}

func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	titles := router.Group("/titles")
	{
		titles.GET("/", middleware.Authorize(h.policy, permission.ActionList), h.List)
		titles.POST("/", middleware.Authorize(h.policy, permission.ActionCreate), h.Create)
		titles.GET("/:title_id/", middleware.Authorize(h.policy, permission.ActionRetrieve), h.Get)
		titles.PATCH("/:title_id/", middleware.Authorize(h.policy, permission.ActionUpdate), h.Update)
		titles.DELETE("/:title_id/", middleware.Authorize(h.policy, permission.ActionDelete), h.Delete)
	}
}

// List supports ?category=&genre= (slugs), ?name= (partial) and ?year=.
// GET /titles/
func (h *TitleHandler) List(c *gin.Context) {
	page, ok := h.pager.page(c)
	if !ok {
		return
	}

	filter := repository.TitleFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"year": []string{"Enter a number."}})
			return
		}
		filter.Year = &year
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	titles, count, err := h.titleService.List(ctx, filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, dto.Map(titles, dto.FromModelToTitleResponse), count, page)
}

// POST /titles/
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.TitleRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.titleService.Create(ctx, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(title))
}

// GET /titles/:title_id/
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.titleService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// PATCH /titles/:title_id/
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "title_id")
	if !ok {
		return
	}
	var req dto.TitleRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.titleService.Update(ctx, id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// DELETE /titles/:title_id/
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.titleService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
