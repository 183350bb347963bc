package post_service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/metrics"
	"blogly-service/internal/model"
	"blogly-service/internal/repository/postgres"
	tag_repository "blogly-service/internal/repository/tag"
	user_repository "blogly-service/internal/repository/user"

	post_repository "blogly-service/internal/repository/post"
)

type PostService struct {
	postRepo post_repository.Repository
	tagRepo  tag_repository.Repository
	userRepo user_repository.Repository
	uow      postgres.UnitOfWork
	log      *logger.Logger
	metrics  metrics.Provider
}

func NewPostService(
	postRepo post_repository.Repository,
	tagRepo tag_repository.Repository,
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		userRepo: userRepo,
		uow:      uow,
		log:      log,
		metrics:  metricsProvider,
	}
}

// CreatePost inserts the post and its initial tag associations in one
// transaction. The owning user must exist.
func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (result *model.PostDetailed, err error) {
	defer func() {
		s.metrics.IncrementPostOperations("create", err == nil)
	}()

	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("User not found for post creation", slog.Int64("user_id", post.UserID))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get user for post creation", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
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

	postRepo := tx.PostRepository()
	tagRepo := tx.TagRepository()

	newPost := &model.Post{
		UserID:  post.UserID,
		Title:   post.Title,
		Content: post.Content,
	}
	createdPost, err := postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = s.reconcileTags(ctx, tagRepo, createdPost.ID, post.TagIDs); err != nil {
		s.log.Error("Failed to attach tags to post",
			slog.Int64("post_id", createdPost.ID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	tags, err := s.tagRepo.ListByPost(ctx, createdPost.ID)
	if err != nil {
		s.log.Error("Failed to find tags by post", slog.Int64("id", createdPost.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &model.PostDetailed{
		Post:   createdPost,
		Author: author,
		Tags:   tags,
	}, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Author not found", slog.Int64("user_id", post.UserID))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get author", slog.Int64("user_id", post.UserID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	tags, err := s.tagRepo.ListByPost(ctx, id)
	if err != nil {
		s.log.Error("Failed to find tags by post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &model.PostDetailed{
		Post:   post,
		Author: author,
		Tags:   tags,
	}, nil
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID int64) ([]*model.Post, error) {
	posts, err := s.postRepo.GetByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list posts by user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

// UpdatePost applies the supplied title/content fields and reconciles the
// post's tag associations against the desired set, all in one transaction.
// An empty desired set clears every association.
func (s *PostService) UpdatePost(ctx context.Context, id int64, update *model.UpdatePostDTO) (err error) {
	defer func() {
		s.metrics.IncrementPostOperations("update", err == nil)
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

	postRepo := tx.PostRepository()
	tagRepo := tx.TagRepository()

	if _, err = postRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = s.reconcileTags(ctx, tagRepo, id, update.TagIDs); err != nil {
		s.log.Error("Failed to reconcile post tags", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return nil
}

// DeletePost removes the post's tag associations and the post itself in one
// transaction. It returns the owning user's id so callers can navigate back
// to the author.
func (s *PostService) DeletePost(ctx context.Context, id int64) (userID int64, err error) {
	defer func() {
		s.metrics.IncrementPostOperations("delete", err == nil)
	}()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
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

	postRepo := tx.PostRepository()
	tagRepo := tx.TagRepository()

	post, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return 0, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for delete", slog.Int64("id", id), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}

	if err = tagRepo.ClearPostTags(ctx, id); err != nil {
		s.log.Error("Failed to clear post tags", slog.Int64("id", id), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}

	if err = postRepo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete post", slog.Int64("id", id), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return post.UserID, nil
}

// reconcileTags makes the post's stored associations equal the desired set:
// desired minus current is inserted, current minus desired is deleted.
// Applying the same desired set twice is a no-op. Ids that match no existing
// tag are dropped before diffing, so stale input never fails the edit.
func (s *PostService) reconcileTags(ctx context.Context, tagRepo tag_repository.Repository, postID int64, desired []int64) error {
	knownTags, err := tagRepo.List(ctx)
	if err != nil {
		return err
	}
	knownSet := make(map[int64]bool, len(knownTags))
	for _, tag := range knownTags {
		knownSet[tag.ID] = true
	}

	desiredSet := make(map[int64]bool, len(desired))
	for _, id := range desired {
		if knownSet[id] {
			desiredSet[id] = true
		}
	}

	currentTags, err := tagRepo.ListByPost(ctx, postID)
	if err != nil {
		return err
	}
	currentSet := make(map[int64]bool, len(currentTags))
	for _, tag := range currentTags {
		currentSet[tag.ID] = true
	}

	var toAdd, toRemove []int64
	for id := range desiredSet {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range currentSet {
		if !desiredSet[id] {
			toRemove = append(toRemove, id)
		}
	}

	sort.Slice(toAdd, func(i, j int) bool { return toAdd[i] < toAdd[j] })
	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i] < toRemove[j] })

	if err := tagRepo.TagPost(ctx, postID, toAdd); err != nil {
		return err
	}
	return tagRepo.UntagPost(ctx, postID, toRemove)
}
