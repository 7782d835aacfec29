package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/user/repository"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/utils"
	"github.com/alfrdzley/openmusic-api-v3/pkg/jwt"
)

// ErrInvalidCredentials indicates a login failure. It deliberately does not
// say whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type userService struct {
	repo   repository.RepositoryInterface
	tokens *jwt.Manager
}

func NewUserService(repo repository.RepositoryInterface, tokens *jwt.Manager) ServiceInterface {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:       utils.NewID("user"),
		Username: req.Username,
		Password: string(hash),
		Fullname: req.Fullname,
	}

	// The unique index on username is the arbiter for concurrent registrations;
	// the repository translates its violation to Conflict.
	return s.repo.Create(ctx, u)
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if fail.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.repo.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh issues a new access token for a stored, still-valid refresh token.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := s.repo.VerifyRefreshToken(ctx, refreshToken); err != nil {
		return "", err
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", fail.NotFound("refresh token is not valid")
	}

	return s.tokens.GenerateAccessToken(claims.UserID)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}
