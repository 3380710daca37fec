package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	infraRepo "github.com/zaylabs/dryclean-api/internal/infrastructure/repository"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. It also binds the
// caller's branch to the request context: admins see every branch, everyone
// else only their own.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("user_permissions", claims.Permissions)
		c.Set("branch_code", claims.BranchCode)

		ctx := c.Request.Context()
		if claims.BranchCode != "" {
			ctx = infraRepo.WithBranch(ctx, claims.BranchCode)
		}
		if hasAnyRole(claims.Roles, entity.RoleSuperAdmin, entity.RoleAdmin) {
			ctx = infraRepo.WithSkipBranchScope(ctx, true)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func hasAnyRole(have []string, want ...string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// RequirePermission creates a middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions, exists := c.Get("user_permissions")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userPermissions, ok := permissions.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, p := range userPermissions {
			if p == permission {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "You do not have permission to perform this action")
		c.Abort()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get("user_roles")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRolesList, ok := userRoles.([]string)
		if !ok || !hasAnyRole(userRolesList, roles...) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
