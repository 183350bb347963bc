package user_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/metrics"
	"blogly-service/internal/model"
	"blogly-service/internal/repository/memory"
	post_repository "blogly-service/internal/repository/post"
	post_memory "blogly-service/internal/repository/post/memory"
	tag_repository "blogly-service/internal/repository/tag"
	tag_memory "blogly-service/internal/repository/tag/memory"
	user_memory "blogly-service/internal/repository/user/memory"
)

type userServiceFixture struct {
	service  *UserService
	postRepo post_repository.Repository
	tagRepo  tag_repository.Repository
}

func setupUserService(t *testing.T) *userServiceFixture {
	log := logger.New("test")
	userRepo := user_memory.NewUserRepository(log)
	tagRepo := tag_memory.NewTagRepository(log)
	postRepo := post_memory.NewPostRepository(log, tagRepo)
	uow := memory.NewMemoryUOW(userRepo, postRepo, tagRepo)

	return &userServiceFixture{
		service:  NewUserService(userRepo, uow, log, metrics.NewNoopProvider()),
		postRepo: postRepo,
		tagRepo:  tagRepo,
	}
}

func TestUserService_CreateUser(t *testing.T) {
	f := setupUserService(t)

	tests := []struct {
		name         string
		dto          *model.CreateUserDTO
		wantImageURL string
	}{
		{
			name:         "with avatar",
			dto:          &model.CreateUserDTO{FirstName: "Alan", LastName: "Alda", ImageURL: "https://example.com/alan.png"},
			wantImageURL: "https://example.com/alan.png",
		},
		{
			name:         "default avatar when none given",
			dto:          &model.CreateUserDTO{FirstName: "Joel", LastName: "Burton"},
			wantImageURL: model.DefaultUserImageURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.service.CreateUser(context.Background(), tt.dto)

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.wantImageURL, got.ImageURL)
		})
	}
}

func TestUserService_GetUserByID(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, &model.CreateUserDTO{FirstName: "Alan", LastName: "Alda"})
	require.NoError(t, err)

	got, err := f.service.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.service.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, &model.CreateUserDTO{FirstName: "Alan", LastName: "Alda"})
	require.NoError(t, err)

	newFirst := "Arthur"
	got, err := f.service.UpdateUser(ctx, created.ID, &model.UpdateUserDTO{FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Arthur", got.FirstName)
	assert.Equal(t, "Alda", got.LastName)

	_, err = f.service.UpdateUser(ctx, 999, &model.UpdateUserDTO{FirstName: &newFirst})
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to posts and their associations", func(t *testing.T) {
		f := setupUserService(t)

		user, err := f.service.CreateUser(ctx, &model.CreateUserDTO{FirstName: "Alan", LastName: "Alda"})
		require.NoError(t, err)

		funny, err := f.tagRepo.Create(ctx, "funny")
		require.NoError(t, err)

		post, err := f.postRepo.Create(ctx, &model.Post{UserID: user.ID, Title: "Test Post", Content: "Test content"})
		require.NoError(t, err)
		require.NoError(t, f.tagRepo.TagPost(ctx, post.ID, []int64{funny.ID}))

		err = f.service.DeleteUser(ctx, user.ID)
		require.NoError(t, err)

		_, err = f.service.GetUserByID(ctx, user.ID)
		assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)

		_, err = f.postRepo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

		orphaned, err := f.tagRepo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, orphaned)

		// tags themselves are never deleted
		tags, err := f.tagRepo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("user not found", func(t *testing.T) {
		f := setupUserService(t)

		err := f.service.DeleteUser(ctx, 999)
		assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
	})
}
