package tag_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/metrics"
	"blogly-service/internal/model"
	post_repository "blogly-service/internal/repository/post"
	"blogly-service/internal/repository/postgres"
	tag_repository "blogly-service/internal/repository/tag"
)

type TagService struct {
	tagRepo  tag_repository.Repository
	postRepo post_repository.Repository
	uow      postgres.UnitOfWork
	log      *logger.Logger
	metrics  metrics.Provider
}

func NewTagService(
	tagRepo tag_repository.Repository,
	postRepo post_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		postRepo: postRepo,
		uow:      uow,
		log:      log,
		metrics:  metricsProvider,
	}
}

func (s *TagService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := s.tagRepo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, custom_errors.ErrTagAlreadyExists) {
			s.log.Debug("Tag already exists", slog.String("name", name))
			s.metrics.IncrementTagOperations("create", false)
			return nil, custom_errors.ErrTagAlreadyExists
		}
		s.log.Error("Failed to create tag", slog.String("name", name), slog.String("error", err.Error()))
		s.metrics.IncrementTagOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementTagOperations("create", true)
	return tag, nil
}

func (s *TagService) GetTagByID(ctx context.Context, id int64) (*model.TagDetailed, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrTagNotFound) {
			s.log.Debug("Tag not found", slog.Int64("id", id))
			return nil, custom_errors.ErrTagNotFound
		}
		s.log.Error("Failed to get tag by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	posts, err := s.postRepo.GetByTag(ctx, id)
	if err != nil {
		s.log.Error("Failed to get posts by tag", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &model.TagDetailed{
		Tag:   tag,
		Posts: posts,
	}, nil
}

func (s *TagService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list tags", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return tags, nil
}

func (s *TagService) UpdateTag(ctx context.Context, id int64, update *model.UpdateTagDTO) (*model.Tag, error) {
	tag, err := s.tagRepo.Update(ctx, id, update)
	if err != nil {
		s.metrics.IncrementTagOperations("update", false)
		switch {
		case errors.Is(err, custom_errors.ErrTagNotFound):
			s.log.Debug("Tag not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrTagNotFound
		case errors.Is(err, custom_errors.ErrTagAlreadyExists):
			s.log.Debug("Tag name already taken", slog.Int64("id", id))
			return nil, custom_errors.ErrTagAlreadyExists
		default:
			s.log.Error("Failed to update tag", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	s.metrics.IncrementTagOperations("update", true)
	return tag, nil
}

// DeleteTag removes every association row referencing the tag and then the
// tag row itself, in one transaction. Posts that carried the tag are left
// intact.
func (s *TagService) DeleteTag(ctx context.Context, id int64) (err error) {
	defer func() {
		s.metrics.IncrementTagOperations("delete", err == nil)
	}()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil {
				if !strings.Contains(rollbackErr.Error(), "tx is closed") {
					s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
				}
			}
		}
	}()

	tagRepo := tx.TagRepository()

	if _, err = tagRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, custom_errors.ErrTagNotFound) {
			s.log.Debug("Tag not found for delete", slog.Int64("id", id))
			return custom_errors.ErrTagNotFound
		}
		s.log.Error("Failed to get tag for delete", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tagRepo.ClearTagPosts(ctx, id); err != nil {
		s.log.Error("Failed to clear tag associations", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tagRepo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete tag", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return nil
}
