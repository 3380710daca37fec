package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   time.Duration
}

// Login authenticates a user and returns an access token carrying roles,
// permissions and branch code
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		log.Printf("Failed login for %s", user.Email)
		return nil, apperror.ErrInvalidCredentials
	}

	user, err = s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	sub := utils.TokenSubject{
		UserID:      user.ID,
		Email:       user.Email,
		Roles:       user.GetRoleNames(),
		Permissions: user.GetPermissions(),
	}
	if user.BranchCode != nil {
		sub.BranchCode = *user.BranchCode
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(sub)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   s.jwtManager.AccessTokenExpiry(),
	}, nil
}
