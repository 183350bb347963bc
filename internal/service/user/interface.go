package user_service

import (
	"context"

	"blogly-service/internal/model"
)

type Service interface {
	CreateUser(ctx context.Context, user *model.CreateUserDTO) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, id int64, update *model.UpdateUserDTO) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
