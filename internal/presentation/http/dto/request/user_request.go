package request

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Email      string  `json:"email" binding:"required,email,max=255"`
	Password   string  `json:"password" binding:"required,min=8"`
	BranchCode *string `json:"branch_code" binding:"omitempty,max=20"`
	RoleIDs    []uint  `json:"role_ids"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	Email      *string `json:"email" binding:"omitempty,email,max=255"`
	Password   *string `json:"password" binding:"omitempty,min=8"`
	BranchCode *string `json:"branch_code" binding:"omitempty,max=20"`
	RoleIDs    []uint  `json:"role_ids"`
}

// SyncRolesRequest replaces a user's roles
type SyncRolesRequest struct {
	RoleIDs []uint `json:"role_ids"`
}

// RoleRequest represents a role create/update request
type RoleRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	PermissionIDs []uint `json:"permission_ids"`
}

// PermissionRequest represents a permission create/update request
type PermissionRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
