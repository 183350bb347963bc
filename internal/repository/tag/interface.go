package tag_repository

import (
	"context"

	"blogly-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, name string) (*model.Tag, error)
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)
	ListByPost(ctx context.Context, postID int64) ([]*model.Tag, error)
	Update(ctx context.Context, id int64, update *model.UpdateTagDTO) (*model.Tag, error)
	Delete(ctx context.Context, id int64) error
	TagPost(ctx context.Context, postID int64, tagIDs []int64) error
	UntagPost(ctx context.Context, postID int64, tagIDs []int64) error
	ClearPostTags(ctx context.Context, postID int64) error
	ClearTagPosts(ctx context.Context, tagID int64) error
}
