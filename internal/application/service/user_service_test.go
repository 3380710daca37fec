package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

type fakeRBAC struct {
	users       map[uuid.UUID]*entity.User
	roles       map[uint]*entity.Role
	permissions map[uint]*entity.Permission
}

func newFakeRBAC() *fakeRBAC {
	perms := map[uint]*entity.Permission{
		1: {ID: 1, Name: "access-pos"},
		2: {ID: 2, Name: "manage-users"},
	}
	return &fakeRBAC{
		users:       map[uuid.UUID]*entity.User{},
		permissions: perms,
		roles: map[uint]*entity.Role{
			1: {ID: 1, Name: entity.RoleSuperAdmin, Permissions: []entity.Permission{*perms[1], *perms[2]}},
			2: {ID: 2, Name: "manager", Permissions: []entity.Permission{*perms[1]}},
		},
	}
}

type fakeUserRepo struct{ *fakeRBAC }
type fakeRoleRepo struct{ *fakeRBAC }
type fakePermissionRepo struct{ *fakeRBAC }

func (r fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r fakeUserRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r fakeUserRepo) GetWithRoles(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	loaded := *u
	loaded.Roles = nil
	for _, role := range u.Roles {
		loaded.Roles = append(loaded.Roles, *r.roles[role.ID])
	}
	return &loaded, nil
}

func (r fakeUserRepo) SyncRoles(_ context.Context, userID uuid.UUID, roleIDs []uint) error {
	u := r.users[userID]
	u.Roles = nil
	for _, id := range roleIDs {
		u.Roles = append(u.Roles, *r.roles[id])
	}
	return nil
}

func (r fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return repository.ErrDuplicateKey
		}
	}
	role.ID = uint(len(r.roles) + 1)
	r.roles[role.ID] = role
	return nil
}

func (r fakeRoleRepo) GetByID(_ context.Context, id uint) (*entity.Role, error) {
	return r.roles[id], nil
}

func (r fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

func (r fakeRoleRepo) GetByIDs(_ context.Context, ids []uint) ([]entity.Role, error) {
	var out []entity.Role
	for _, id := range uniqueIDs(ids) {
		if role, ok := r.roles[id]; ok {
			out = append(out, *role)
		}
	}
	return out, nil
}

func (r fakeRoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.roles[role.ID] = role
	return nil
}

func (r fakeRoleRepo) Delete(_ context.Context, id uint) error {
	delete(r.roles, id)
	return nil
}

func (r fakeRoleRepo) List(context.Context) ([]entity.Role, error) {
	var out []entity.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r fakeRoleRepo) GetWithPermissions(_ context.Context, id uint) (*entity.Role, error) {
	return r.roles[id], nil
}

func (r fakeRoleRepo) SyncPermissions(_ context.Context, roleID uint, permissionIDs []uint) error {
	role := r.roles[roleID]
	role.Permissions = nil
	for _, id := range permissionIDs {
		role.Permissions = append(role.Permissions, *r.permissions[id])
	}
	return nil
}

func (r fakePermissionRepo) Create(_ context.Context, p *entity.Permission) error {
	for _, existing := range r.permissions {
		if existing.Name == p.Name {
			return repository.ErrDuplicateKey
		}
	}
	p.ID = uint(len(r.permissions) + 1)
	r.permissions[p.ID] = p
	return nil
}

func (r fakePermissionRepo) GetByID(_ context.Context, id uint) (*entity.Permission, error) {
	return r.permissions[id], nil
}

func (r fakePermissionRepo) GetByName(_ context.Context, name string) (*entity.Permission, error) {
	for _, p := range r.permissions {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r fakePermissionRepo) GetByIDs(_ context.Context, ids []uint) ([]entity.Permission, error) {
	var out []entity.Permission
	for _, id := range uniqueIDs(ids) {
		if p, ok := r.permissions[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r fakePermissionRepo) Update(_ context.Context, p *entity.Permission) error {
	r.permissions[p.ID] = p
	return nil
}

func (r fakePermissionRepo) Delete(_ context.Context, id uint) error {
	delete(r.permissions, id)
	return nil
}

func (r fakePermissionRepo) List(context.Context) ([]entity.Permission, error) {
	var out []entity.Permission
	for _, p := range r.permissions {
		out = append(out, *p)
	}
	return out, nil
}

func newUserService() (*UserService, *fakeRBAC) {
	rbac := newFakeRBAC()
	branches := newFakeBranchRepo(&entity.Branch{BranchName: "Johar Town", BranchCode: "JR"})
	return NewUserService(fakeUserRepo{rbac}, fakeRoleRepo{rbac}, fakePermissionRepo{rbac}, branches), rbac
}

func TestCreateUser(t *testing.T) {
	svc, rbac := newUserService()
	ctx := context.Background()
	branch := " jr "

	user, err := svc.CreateUser(ctx, &CreateUserInput{
		Name: "Counter One", Email: "Counter@Shop.pk", Password: "secret123", BranchCode: &branch, RoleIDs: []uint{2},
	})
	require.NoError(t, err)
	assert.Equal(t, "counter@shop.pk", user.Email)
	require.NotNil(t, user.BranchCode)
	assert.Equal(t, "JR", *user.BranchCode)
	assert.Equal(t, []string{"manager"}, user.GetRoleNames())
	assert.True(t, utils.CheckPasswordHash("secret123", rbac.users[user.ID].Password))

	_, err = svc.CreateUser(ctx, &CreateUserInput{Name: "Dup", Email: "counter@shop.pk", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestCreateUserRejectsUnknownBranchAndRoles(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	missing := "XX"

	_, err := svc.CreateUser(ctx, &CreateUserInput{Name: "A", Email: "a@shop.pk", Password: "secret123", BranchCode: &missing})
	require.True(t, apperror.IsValidation(err))
	assert.Equal(t, "branch_code", apperror.GetAppError(err).Errors[0].Field)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Name: "A", Email: "a@shop.pk", Password: "secret123", RoleIDs: []uint{2, 99}})
	require.True(t, apperror.IsValidation(err))
	assert.Equal(t, "role_ids", apperror.GetAppError(err).Errors[0].Field)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Name: "", Email: "nope", Password: "short"})
	assert.Len(t, apperror.GetAppError(err).Errors, 3)
}

func TestUpdateUserRolesAndBranch(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{Name: "A", Email: "a@shop.pk", Password: "secret123", RoleIDs: []uint{2}})
	require.NoError(t, err)

	branch := "JR"
	updated, err := svc.UpdateUser(ctx, &UpdateUserInput{ID: user.ID, BranchCode: &branch, RoleIDs: []uint{1}})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
	assert.Equal(t, "JR", *updated.BranchCode)

	none := ""
	updated, err = svc.UpdateUser(ctx, &UpdateUserInput{ID: user.ID, BranchCode: &none})
	require.NoError(t, err)
	assert.Nil(t, updated.BranchCode)

	cleared, err := svc.UpdateUserRoles(ctx, &UpdateUserRolesInput{UserID: user.ID, RoleIDs: []uint{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.Roles)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{Name: "A", Email: "a@shop.pk", Password: "secret123"})
	require.NoError(t, err)

	assert.Error(t, svc.DeleteUser(ctx, user.ID, user.ID))
	require.NoError(t, svc.DeleteUser(ctx, uuid.New(), user.ID))
	_, err = svc.GetUser(ctx, user.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestRoleManagement(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &RoleInput{Name: "cashier", PermissionIDs: []uint{1}})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 1)

	_, err = svc.CreateRole(ctx, &RoleInput{Name: "cashier"})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	role, err = svc.UpdateRole(ctx, role.ID, &RoleInput{Name: "cashier", PermissionIDs: []uint{1, 2}})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)

	_, err = svc.UpdateRole(ctx, 1, &RoleInput{Name: "boss"})
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Error(t, svc.DeleteRole(ctx, 1))
	assert.NoError(t, svc.DeleteRole(ctx, role.ID))
}

func TestPermissionManagement(t *testing.T) {
	svc, rbac := newUserService()
	ctx := context.Background()

	perm, err := svc.CreatePermission(ctx, "view-reports")
	require.NoError(t, err)

	_, err = svc.CreatePermission(ctx, "view-reports")
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	perm, err = svc.UpdatePermission(ctx, perm.ID, "view-all-reports")
	require.NoError(t, err)
	assert.Equal(t, "view-all-reports", rbac.permissions[perm.ID].Name)

	require.NoError(t, svc.DeletePermission(ctx, perm.ID))
	assert.Error(t, svc.DeletePermission(ctx, perm.ID))
}

func TestLogin(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()
	branch := "JR"
	_, err := users.CreateUser(ctx, &CreateUserInput{
		Name: "A", Email: "a@shop.pk", Password: "secret123", BranchCode: &branch, RoleIDs: []uint{2},
	})
	require.NoError(t, err)

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	auth := NewAuthService(users.userRepo, jwtManager)

	_, err = auth.Login(ctx, &LoginInput{Email: "a@shop.pk", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = auth.Login(ctx, &LoginInput{Email: "ghost@shop.pk", Password: "secret123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	out, err := auth.Login(ctx, &LoginInput{Email: " A@shop.pk", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, out.ExpiresIn)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "JR", claims.BranchCode)
	assert.Equal(t, []string{"manager"}, claims.Roles)
	assert.Equal(t, []string{"access-pos"}, claims.Permissions)
}
