package user_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/metrics"
	"blogly-service/internal/model"
	"blogly-service/internal/repository/postgres"
	user_repository "blogly-service/internal/repository/user"
)

type UserService struct {
	userRepo user_repository.Repository
	uow      postgres.UnitOfWork
	log      *logger.Logger
	metrics  metrics.Provider
}

func NewUserService(
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		log:      log,
		metrics:  metricsProvider,
	}
}

func (s *UserService) CreateUser(ctx context.Context, user *model.CreateUserDTO) (*model.User, error) {
	newUser := &model.User{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ImageURL:  user.ImageURL,
	}

	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		s.log.Error("Failed to create user", slog.String("error", err.Error()))
		s.metrics.IncrementUserOperations("create", false)
		return nil, err
	}

	s.metrics.IncrementUserOperations("create", true)
	return createdUser, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("User not found", slog.Int64("id", id))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get user by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list users", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, update *model.UpdateUserDTO) (*model.User, error) {
	updatedUser, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("User not found for update", slog.Int64("id", id))
			s.metrics.IncrementUserOperations("update", false)
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to update user", slog.Int64("id", id), slog.String("error", err.Error()))
		s.metrics.IncrementUserOperations("update", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementUserOperations("update", true)
	return updatedUser, nil
}

// DeleteUser removes the user, every post the user owns, and those posts'
// tag associations as explicit ordered deletes inside one transaction. Tags
// themselves are never deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (err error) {
	defer func() {
		s.metrics.IncrementUserOperations("delete", err == nil)
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

	userRepo := tx.UserRepository()
	postRepo := tx.PostRepository()
	tagRepo := tx.TagRepository()

	if _, err = userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("User not found for delete", slog.Int64("id", id))
			return custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get user for delete", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	posts, err := postRepo.GetByUser(ctx, id)
	if err != nil {
		s.log.Error("Failed to get posts for user delete", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	for _, post := range posts {
		if err = tagRepo.ClearPostTags(ctx, post.ID); err != nil {
			s.log.Error("Failed to clear post tags during user delete",
				slog.Int64("post_id", post.ID),
				slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		if err = postRepo.Delete(ctx, post.ID); err != nil {
			s.log.Error("Failed to delete post during user delete",
				slog.Int64("post_id", post.ID),
				slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
	}

	if err = userRepo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete user", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return nil
}
