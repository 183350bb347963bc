package user_repository

import (
	"context"

	"blogly-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, update *model.UpdateUserDTO) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}
