package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

const minPasswordLength = 8

var validate = validator.New()

// UserService handles user management operations
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	branchRepo     repository.BranchRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	branchRepo repository.BranchRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		branchRepo:     branchRepo,
	}
}

// ListUsersInput represents the input for listing users
type ListUsersInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListUsers returns a paginated list of users with their roles
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*pagination.PaginatedResult[entity.User], error) {
	params := &pagination.PaginationParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	BranchCode *string
	RoleIDs    []uint
}

// UpdateUserInput represents the update user input; nil fields are left unchanged.
// An empty BranchCode detaches the user from any branch.
type UpdateUserInput struct {
	ID         uuid.UUID
	Name       *string
	Email      *string
	Password   *string
	BranchCode *string
	RoleIDs    []uint
}

// resolveBranch normalises code and checks the branch exists. Empty means none.
func (s *UserService) resolveBranch(ctx context.Context, code *string) (*string, error) {
	if code == nil {
		return nil, nil
	}
	normalized := utils.NormalizeBranchCode(*code)
	if normalized == "" {
		return nil, nil
	}
	branch, err := s.branchRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewFieldError("branch_code", "The selected branch code is invalid.")
	}
	return &normalized, nil
}

func (s *UserService) resolveRoles(ctx context.Context, ids []uint) ([]entity.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	roles, err := s.roleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(uniqueIDs(ids)) {
		return nil, apperror.NewFieldError("role_ids", "One or more selected roles are invalid.")
	}
	return roles, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func validateUserFields(name, email string, password *string) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "The name field is required."})
	}
	if err := validate.Var(email, "required,email"); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "The email must be a valid email address."})
	}
	if password != nil && len(*password) < minPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "The password must be at least 8 characters."})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateUser creates a staff account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateUserFields(input.Name, email, &input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	branchCode, err := s.resolveBranch(ctx, input.BranchCode)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:       strings.TrimSpace(input.Name),
		Email:      email,
		Password:   hashedPassword,
		BranchCode: branchCode,
		Roles:      roles,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, err
	}

	log.Printf("User %s created", user.Email)
	return s.GetUser(ctx, user.ID)
}

// UpdateUser updates a staff account and, when RoleIDs is non-nil, its roles
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if err := validateUserFields(user.Name, user.Email, input.Password); err != nil {
		return nil, err
	}

	if input.Email != nil {
		other, err := s.userRepo.GetByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, apperror.NewConflictError("Email already registered")
		}
	}
	if input.BranchCode != nil {
		if user.BranchCode, err = s.resolveBranch(ctx, input.BranchCode); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		if user.Password, err = utils.HashPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, err
	}

	if input.RoleIDs != nil {
		return s.UpdateUserRoles(ctx, &UpdateUserRolesInput{UserID: user.ID, RoleIDs: input.RoleIDs})
	}
	return s.GetUser(ctx, user.ID)
}

// UpdateUserRolesInput represents the input for updating user roles
type UpdateUserRolesInput struct {
	UserID  uuid.UUID
	RoleIDs []uint
}

// UpdateUserRoles replaces the roles assigned to a user
func (s *UserService) UpdateUserRoles(ctx context.Context, input *UpdateUserRolesInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	roles, err := s.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}

	if err := s.userRepo.SyncRoles(ctx, input.UserID, ids); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, input.UserID)
}

// DeleteUser soft deletes a user. Users cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all available roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// RoleInput represents the create/update role input
type RoleInput struct {
	Name          string
	PermissionIDs []uint
}

func (s *UserService) resolvePermissions(ctx context.Context, ids []uint) ([]entity.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	perms, err := s.permissionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(uniqueIDs(ids)) {
		return nil, apperror.NewFieldError("permission_ids", "One or more selected permissions are invalid.")
	}
	return perms, nil
}

// CreateRole creates a role with the given permissions
func (s *UserService) CreateRole(ctx context.Context, input *RoleInput) (*entity.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "The name field is required.")
	}
	perms, err := s.resolvePermissions(ctx, input.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role := &entity.Role{Name: name, GuardName: "web", Permissions: perms}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A role with this name already exists")
		}
		return nil, err
	}
	return s.roleRepo.GetWithPermissions(ctx, role.ID)
}

// UpdateRole renames a role and replaces its permissions
func (s *UserService) UpdateRole(ctx context.Context, id uint, input *RoleInput) (*entity.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "The name field is required.")
	}
	if role.Name == entity.RoleSuperAdmin && name != entity.RoleSuperAdmin {
		return nil, apperror.NewBadRequestError("The super-admin role cannot be renamed")
	}
	perms, err := s.resolvePermissions(ctx, input.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role.Name = name
	if err := s.roleRepo.Update(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A role with this name already exists")
		}
		return nil, err
	}

	ids := make([]uint, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID)
	}
	if err := s.roleRepo.SyncPermissions(ctx, id, ids); err != nil {
		return nil, err
	}
	return s.roleRepo.GetWithPermissions(ctx, id)
}

// DeleteRole deletes a role. The super-admin role is permanent.
func (s *UserService) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return apperror.NewNotFoundError("Role")
	}
	if role.Name == entity.RoleSuperAdmin {
		return apperror.NewBadRequestError("The super-admin role cannot be deleted")
	}
	return s.roleRepo.Delete(ctx, id)
}

// ListPermissions returns all available permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// CreatePermission creates a permission
func (s *UserService) CreatePermission(ctx context.Context, name string) (*entity.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "The name field is required.")
	}
	perm := &entity.Permission{Name: name, GuardName: "web"}
	if err := s.permissionRepo.Create(ctx, perm); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A permission with this name already exists")
		}
		return nil, err
	}
	return perm, nil
}

// UpdatePermission renames a permission
func (s *UserService) UpdatePermission(ctx context.Context, id uint, name string) (*entity.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "The name field is required.")
	}
	perm, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, apperror.NewNotFoundError("Permission")
	}
	perm.Name = name
	if err := s.permissionRepo.Update(ctx, perm); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A permission with this name already exists")
		}
		return nil, err
	}
	return perm, nil
}

// DeletePermission deletes a permission and detaches it from every role
func (s *UserService) DeletePermission(ctx context.Context, id uint) error {
	perm, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if perm == nil {
		return apperror.NewNotFoundError("Permission")
	}
	return s.permissionRepo.Delete(ctx, id)
}
