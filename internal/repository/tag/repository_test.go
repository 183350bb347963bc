package tag_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/model"
	tag_repository "blogly-service/internal/repository/tag"
	"blogly-service/internal/repository/tag/memory"
)

func setupTagTest(t *testing.T) tag_repository.Repository {
	log := logger.New("test")
	return memory.NewTagRepository(log)
}

func TestTagRepository_Create(t *testing.T) {
	repo := setupTagTest(t)

	tests := []struct {
		name    string
		tagName string
		wantErr error
	}{
		{
			name:    "successful creation",
			tagName: "funny",
		},
		{
			name:    "duplicate name",
			tagName: "funny",
			wantErr: custom_errors.ErrTagAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Create(context.Background(), tt.tagName)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.NotZero(t, got.ID)
				assert.Equal(t, tt.tagName, got.Name)
			}
		})
	}
}

func TestTagRepository_Update(t *testing.T) {
	repo := setupTagTest(t)

	funny, err := repo.Create(context.Background(), "funny")
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), "serious")
	require.NoError(t, err)

	sameName := "funny"
	takenName := "serious"
	freshName := "hilarious"

	tests := []struct {
		name    string
		id      int64
		update  *model.UpdateTagDTO
		want    string
		wantErr error
	}{
		{
			name:   "rename",
			id:     funny.ID,
			update: &model.UpdateTagDTO{Name: &freshName},
			want:   "hilarious",
		},
		{
			name:   "rename to own name is allowed",
			id:     funny.ID,
			update: &model.UpdateTagDTO{Name: &freshName},
			want:   "hilarious",
		},
		{
			name:    "rename to a taken name",
			id:      funny.ID,
			update:  &model.UpdateTagDTO{Name: &takenName},
			wantErr: custom_errors.ErrTagAlreadyExists,
		},
		{
			name:    "tag not found",
			id:      999,
			update:  &model.UpdateTagDTO{Name: &sameName},
			wantErr: custom_errors.ErrTagNotFound,
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
				assert.Equal(t, tt.want, got.Name)
			}
		})
	}
}

func TestTagRepository_TagPost(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	funny, err := repo.Create(ctx, "funny")
	require.NoError(t, err)
	serious, err := repo.Create(ctx, "serious")
	require.NoError(t, err)

	const postID = int64(1)

	err = repo.TagPost(ctx, postID, []int64{funny.ID, serious.ID, 999})
	require.NoError(t, err)

	tags, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, funny.ID, tags[0].ID)
	assert.Equal(t, serious.ID, tags[1].ID)

	// tagging again with the same set changes nothing
	err = repo.TagPost(ctx, postID, []int64{funny.ID})
	require.NoError(t, err)
	tags, err = repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestTagRepository_UntagPost(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	funny, err := repo.Create(ctx, "funny")
	require.NoError(t, err)
	serious, err := repo.Create(ctx, "serious")
	require.NoError(t, err)

	const postID = int64(1)
	require.NoError(t, repo.TagPost(ctx, postID, []int64{funny.ID, serious.ID}))

	err = repo.UntagPost(ctx, postID, []int64{funny.ID})
	require.NoError(t, err)

	tags, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, serious.ID, tags[0].ID)

	// removing an association that is not there is not an error
	err = repo.UntagPost(ctx, postID, []int64{funny.ID})
	assert.NoError(t, err)
}

func TestTagRepository_ClearPostTags(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	funny, err := repo.Create(ctx, "funny")
	require.NoError(t, err)

	const postID = int64(1)
	require.NoError(t, repo.TagPost(ctx, postID, []int64{funny.ID}))

	require.NoError(t, repo.ClearPostTags(ctx, postID))

	tags, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepository_ClearTagPosts(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	funny, err := repo.Create(ctx, "funny")
	require.NoError(t, err)

	require.NoError(t, repo.TagPost(ctx, 1, []int64{funny.ID}))
	require.NoError(t, repo.TagPost(ctx, 2, []int64{funny.ID}))

	require.NoError(t, repo.ClearTagPosts(ctx, funny.ID))

	for _, postID := range []int64{1, 2} {
		tags, err := repo.ListByPost(ctx, postID)
		require.NoError(t, err)
		assert.Empty(t, tags)
	}
}
