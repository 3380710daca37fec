package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
)

// UserHandler handles user, role and permission management HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func userView(user *entity.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"branch_code": user.BranchCode,
		"roles":       user.GetRoleNames(),
		"permissions": user.GetPermissions(),
		"created_at":  user.CreatedAt,
		"updated_at":  user.UpdatedAt,
	}
}

// List handles listing users with pagination
// @Summary List Users
// @Description Get a paginated list of users with their roles
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Search query"
// @Success 200 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(pagination.DefaultPerPage)))

	output, err := h.userService.ListUsers(c.Request.Context(), &service.ListUsersInput{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	users := make([]gin.H, len(output.Items))
	for i := range output.Items {
		users[i] = userView(&output.Items[i])
	}

	response.OK(c, "Users retrieved successfully", gin.H{
		"items":      users,
		"pagination": output.Pagination,
	})
}

// Get handles getting a single user by ID
// @Summary Get User
// @Description Get a user by ID with roles and permissions
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", gin.H{"user": userView(user)})
}

// Create handles creating a staff user
// @Summary Create User
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "User"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &service.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		BranchCode: req.BranchCode,
		RoleIDs:    req.RoleIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", gin.H{"user": userView(user)})
}

// Update handles a partial user update
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), &service.UpdateUserInput{
		ID:         userID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		BranchCode: req.BranchCode,
		RoleIDs:    req.RoleIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", gin.H{"user": userView(user)})
}

// UpdateRoles handles updating user roles
// @Summary Update User Roles
// @Description Replace the roles assigned to a user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request.SyncRolesRequest true "Role IDs"
// @Success 200 {object} response.APIResponse
// @Router /users/{id}/roles [put]
func (h *UserHandler) UpdateRoles(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.SyncRolesRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUserRoles(c.Request.Context(), &service.UpdateUserRolesInput{
		UserID:  userID,
		RoleIDs: req.RoleIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User roles updated successfully", gin.H{"user": userView(user)})
}

// Delete handles deleting a user
// @Summary Delete User
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actorID := GetUserID(c)
	if actorID == nil {
		response.Unauthorized(c, "Unauthenticated")
		return
	}

	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), *actorID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}

// ListRoles handles listing all roles
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Roles retrieved successfully", roles)
}

func (h *UserHandler) CreateRole(c *gin.Context) {
	var req request.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.userService.CreateRole(c.Request.Context(), &service.RoleInput{
		Name:          req.Name,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Role created successfully", role)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req request.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.userService.UpdateRole(c.Request.Context(), id, &service.RoleInput{
		Name:          req.Name,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role updated successfully", role)
}

func (h *UserHandler) DeleteRole(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteRole(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role deleted successfully", nil)
}

// ListPermissions handles listing all permissions
func (h *UserHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.userService.ListPermissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Permissions retrieved successfully", permissions)
}

func (h *UserHandler) CreatePermission(c *gin.Context) {
	var req request.PermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	permission, err := h.userService.CreatePermission(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Permission created successfully", permission)
}

func (h *UserHandler) UpdatePermission(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req request.PermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	permission, err := h.userService.UpdatePermission(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Permission updated successfully", permission)
}

func (h *UserHandler) DeletePermission(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeletePermission(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Permission deleted successfully", nil)
}
