package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/service"
)

// TaxonomyHandler serves one tag collection, /categories/ or /genres/.
// Tags can be listed, created and deleted, not updated.
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
	policy          permission.Policy
	pager           pager
}

func NewTaxonomyHandler(taxonomyService service.TaxonomyService, pageSize int) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
		policy:          permission.New(permission.AdminWriteOrReadOnly),
		pager:           newPager(pageSize),
	}
}

func (h *TaxonomyHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/" + string(h.taxonomyService.Taxonomy()))
	{
		tags.GET("/", middleware.Authorize(h.policy, permission.ActionList), h.List)
		tags.POST("/", middleware.Authorize(h.policy, permission.ActionCreate), h.Create)
		tags.DELETE("/:slug/", middleware.Authorize(h.policy, permission.ActionDelete), h.Delete)
	}
}

// List filters by exact name with ?search=.
func (h *TaxonomyHandler) List(c *gin.Context) {
	page, ok := h.pager.page(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tags, count, err := h.taxonomyService.List(ctx, c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, dto.Map(tags, dto.FromModelToTagResponse), count, page)
}

func (h *TaxonomyHandler) Create(c *gin.Context) {
	var req dto.TagRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tag := req.ToModel()
	if err := h.taxonomyService.Create(ctx, tag); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTagResponse(tag))
}

func (h *TaxonomyHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.taxonomyService.Delete(ctx, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
