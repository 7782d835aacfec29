package service

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (string, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
}
