package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	policy        permission.Policy
	pager         pager
}

func NewReviewHandler(reviewService service.ReviewService, pageSize int) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		policy:        permission.New(permission.ModeratedWrite),
		pager:         newPager(pageSize),
	}
}

// RegisterRoutes registers the reviews nested under a title.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/titles/:title_id/reviews")
	{
		reviews.GET("/", middleware.Authorize(h.policy, permission.ActionList), h.List)
		reviews.POST("/", middleware.Authorize(h.policy, permission.ActionCreate), h.Create)
		reviews.GET("/:review_id/", middleware.Authorize(h.policy, permission.ActionRetrieve), h.Get)
		reviews.PATCH("/:review_id/", middleware.Authorize(h.policy, permission.ActionUpdate), h.Update)
		reviews.DELETE("/:review_id/", middleware.Authorize(h.policy, permission.ActionDelete), h.Delete)
	}
}

// GET /titles/:title_id/reviews/
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}
	page, ok := h.pager.page(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, count, err := h.reviewService.List(ctx, titleID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, dto.Map(reviews, dto.FromModelToReviewResponse), count, page)
}

// Create posts the caller's review of the title. One per title and author.
// POST /titles/:title_id/reviews/
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.reviewService.Create(ctx, middleware.CurrentSubject(c), titleID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) load(c *gin.Context, action permission.Action) (*models.Review, bool) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return nil, false
	}
	reviewID, ok := idParam(c, "review_id")
	if !ok {
		return nil, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.reviewService.Get(ctx, titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !admitObject(c, h.policy, action, review) {
		return nil, false
	}
	return review, true
}

// GET /titles/:title_id/reviews/:review_id/
func (h *ReviewHandler) Get(c *gin.Context) {
	review, ok := h.load(c, permission.ActionRetrieve)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// PATCH /titles/:title_id/reviews/:review_id/
func (h *ReviewHandler) Update(c *gin.Context) {
	review, ok := h.load(c, permission.ActionUpdate)
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.reviewService.Update(ctx, review, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(updated))
}

// DELETE /titles/:title_id/reviews/:review_id/
func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := h.load(c, permission.ActionDelete)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.reviewService.Delete(ctx, review); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
