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

type CommentHandler struct {
	commentService service.CommentService
	policy         permission.Policy
	pager          pager
}

func NewCommentHandler(commentService service.CommentService, pageSize int) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		policy:         permission.New(permission.ModeratedWrite),
		pager:          newPager(pageSize),
	}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("/", middleware.Authorize(h.policy, permission.ActionList), h.List)
		comments.POST("/", middleware.Authorize(h.policy, permission.ActionCreate), h.Create)
		comments.GET("/:comment_id/", middleware.Authorize(h.policy, permission.ActionRetrieve), h.Get)
		comments.PATCH("/:comment_id/", middleware.Authorize(h.policy, permission.ActionUpdate), h.Update)
		comments.DELETE("/:comment_id/", middleware.Authorize(h.policy, permission.ActionDelete), h.Delete)
	}
}

func parentIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	if titleID, ok = idParam(c, "title_id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = idParam(c, "review_id"); !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}
	page, ok := h.pager.page(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, count, err := h.commentService.List(ctx, titleID, reviewID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, dto.Map(comments, dto.FromModelToCommentResponse), count, page)
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.commentService.Create(ctx, middleware.CurrentSubject(c), titleID, reviewID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) load(c *gin.Context, action permission.Action) (*models.Comment, bool) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return nil, false
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return nil, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.commentService.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !admitObject(c, h.policy, action, comment) {
		return nil, false
	}
	return comment, true
}

func (h *CommentHandler) Get(c *gin.Context) {
	comment, ok := h.load(c, permission.ActionRetrieve)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	comment, ok := h.load(c, permission.ActionUpdate)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.commentService.Update(ctx, comment, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(updated))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	comment, ok := h.load(c, permission.ActionDelete)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.commentService.Delete(ctx, comment); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
