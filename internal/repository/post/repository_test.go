package post_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/model"
	post_repository "blogly-service/internal/repository/post"
	post_memory "blogly-service/internal/repository/post/memory"
	tag_repository "blogly-service/internal/repository/tag"
	tag_memory "blogly-service/internal/repository/tag/memory"
)

func setupPostTest(t *testing.T) (post_repository.Repository, tag_repository.Repository) {
	log := logger.New("test")
	tagRepo := tag_memory.NewTagRepository(log)
	return post_memory.NewPostRepository(log, tagRepo), tagRepo
}

func TestPostRepository_Create(t *testing.T) {
	repo, _ := setupPostTest(t)

	got, err := repo.Create(context.Background(), &model.Post{
		UserID:  1,
		Title:   "Test Post",
		Content: "Test content",
	})

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.NotZero(t, got.ID)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "Test Post", got.Title)
	assert.Equal(t, "Test content", got.Content)
	assert.True(t, got.CreatedAt.Valid)
}

func TestPostRepository_GetByID(t *testing.T) {
	repo, _ := setupPostTest(t)

	created, err := repo.Create(context.Background(), &model.Post{UserID: 1, Title: "Test Post", Content: "Test content"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{
			name: "successful get",
			id:   created.ID,
		},
		{
			name:    "post not found",
			id:      999,
			wantErr: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, created.ID, got.ID)
				assert.Equal(t, created.Title, got.Title)
			}
		})
	}
}

func TestPostRepository_GetByUser(t *testing.T) {
	repo, _ := setupPostTest(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &model.Post{UserID: 1, Title: "First", Content: "a"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Post{UserID: 2, Title: "Other", Content: "b"})
	require.NoError(t, err)
	third, err := repo.Create(ctx, &model.Post{UserID: 1, Title: "Third", Content: "c"})
	require.NoError(t, err)

	got, err := repo.GetByUser(ctx, 1)

	assert.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, third.ID, got[1].ID)

	empty, err := repo.GetByUser(ctx, 999)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostRepository_GetByTag(t *testing.T) {
	repo, tagRepo := setupPostTest(t)
	ctx := context.Background()

	funny, err := tagRepo.Create(ctx, "funny")
	require.NoError(t, err)

	tagged, err := repo.Create(ctx, &model.Post{UserID: 1, Title: "Tagged", Content: "a"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Post{UserID: 1, Title: "Plain", Content: "b"})
	require.NoError(t, err)

	require.NoError(t, tagRepo.TagPost(ctx, tagged.ID, []int64{funny.ID}))

	got, err := repo.GetByTag(ctx, funny.ID)

	assert.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tagged.ID, got[0].ID)
}

func TestPostRepository_Update(t *testing.T) {
	repo, _ := setupPostTest(t)

	created, err := repo.Create(context.Background(), &model.Post{UserID: 1, Title: "Test Post", Content: "Test content"})
	require.NoError(t, err)

	newTitle := "Updated Title"

	tests := []struct {
		name        string
		id          int64
		update      *model.UpdatePostDTO
		wantTitle   string
		wantContent string
		wantErr     error
	}{
		{
			name:        "partial update keeps untouched fields",
			id:          created.ID,
			update:      &model.UpdatePostDTO{Title: &newTitle},
			wantTitle:   "Updated Title",
			wantContent: "Test content",
		},
		{
			name:        "empty update returns the stored row",
			id:          created.ID,
			update:      &model.UpdatePostDTO{},
			wantTitle:   "Updated Title",
			wantContent: "Test content",
		},
		{
			name:    "post not found",
			id:      999,
			update:  &model.UpdatePostDTO{Title: &newTitle},
			wantErr: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Update(context.Background(), tt.id, tt.update)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.wantTitle, got.Title)
				assert.Equal(t, tt.wantContent, got.Content)
				assert.Equal(t, created.CreatedAt.Time, got.CreatedAt.Time)
			}
		})
	}
}

func TestPostRepository_Delete(t *testing.T) {
	repo, _ := setupPostTest(t)

	created, err := repo.Create(context.Background(), &model.Post{UserID: 1, Title: "Test Post", Content: "Test content"})
	require.NoError(t, err)

	err = repo.Delete(context.Background(), created.ID)
	assert.NoError(t, err)

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)

	err = repo.Delete(context.Background(), created.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
}
