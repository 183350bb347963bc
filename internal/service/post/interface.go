package post_service

import (
	"context"

	"blogly-service/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id int64, update *model.UpdatePostDTO) error
	DeletePost(ctx context.Context, id int64) (int64, error)
}
