package tag_service

import (
	"context"

	"blogly-service/internal/model"
)

type Service interface {
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
	GetTagByID(ctx context.Context, id int64) (*model.TagDetailed, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
	UpdateTag(ctx context.Context, id int64, update *model.UpdateTagDTO) (*model.Tag, error)
	DeleteTag(ctx context.Context, id int64) error
}
