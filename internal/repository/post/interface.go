package post_repository

import (
	"context"

	"blogly-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetByUser(ctx context.Context, userID int64) ([]*model.Post, error)
	GetByTag(ctx context.Context, tagID int64) ([]*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}
