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

type UserHandler struct {
	userService service.UserService
	policy      permission.Policy
	pager       pager
}

func NewUserHandler(userService service.UserService, pageSize int) *UserHandler {
	return &UserHandler{
		userService: userService,
		policy:      permission.New(permission.OwnerOrAdmin),
		pager:       newPager(pageSize),
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/", middleware.Authorize(h.policy, permission.ActionList), h.List)
		users.POST("/", middleware.Authorize(h.policy, permission.ActionCreate), h.Create)

		users.GET("/me/", middleware.Authorize(h.policy, permission.ActionRetrieve), h.Me)
		users.PATCH("/me/", middleware.Authorize(h.policy, permission.ActionUpdate), h.UpdateMe)

		users.GET("/:username/", middleware.Authorize(h.policy, permission.ActionRetrieve), h.Get)
		users.PATCH("/:username/", middleware.Authorize(h.policy, permission.ActionUpdate), h.Update)
		users.DELETE("/:username/", middleware.Authorize(h.policy, permission.ActionDelete), h.Delete)
	}
}

// List returns accounts, optionally filtered by a username fragment.
// GET /users/?search=
func (h *UserHandler) List(c *gin.Context) {
	page, ok := h.pager.page(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, count, err := h.userService.List(ctx, c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, dto.Map(users, dto.FromModelToUserResponse), count, page)
}

// Create adds an account on behalf of an admin.
// POST /users/
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user := req.ToModel()
	if err := h.userService.Create(ctx, middleware.CurrentSubject(c), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// load fetches the account named in the path and runs the object check.
func (h *UserHandler) load(c *gin.Context, action permission.Action) (*models.User, bool) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.userService.Get(ctx, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !admitObject(c, h.policy, action, user) {
		return nil, false
	}
	return user, true
}

// GET /users/:username/
func (h *UserHandler) Get(c *gin.Context) {
	user, ok := h.load(c, permission.ActionRetrieve)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PATCH /users/:username/
func (h *UserHandler) Update(c *gin.Context) {
	user, ok := h.load(c, permission.ActionUpdate)
	if !ok {
		return
	}
	h.patch(c, user)
}

// DELETE /users/:username/
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := h.load(c, permission.ActionDelete)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.userService.Delete(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's own profile.
// GET /users/me/
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		middleware.Deny(c, middleware.CurrentSubject(c))
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PATCH /users/me/
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		middleware.Deny(c, middleware.CurrentSubject(c))
		return
	}
	h.patch(c, user)
}

func (h *UserHandler) patch(c *gin.Context, user *models.User) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.userService.Update(ctx, middleware.CurrentSubject(c), user, req.ToPatch()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}
