package memory

import (
	"context"

	post_repository "blogly-service/internal/repository/post"
	"blogly-service/internal/repository/postgres"
	tag_repository "blogly-service/internal/repository/tag"
	user_repository "blogly-service/internal/repository/user"
)

// MemoryUnitOfWork satisfies postgres.UnitOfWork over the in-memory
// repositories. Commit and Rollback are no-ops; it exists so services can
// be exercised against isolated storage in tests.
type MemoryUnitOfWork struct {
	users user_repository.Repository
	posts post_repository.Repository
	tags  tag_repository.Repository
}

func NewMemoryUOW(
	users user_repository.Repository,
	posts post_repository.Repository,
	tags tag_repository.Repository,
) *MemoryUnitOfWork {
	return &MemoryUnitOfWork{users: users, posts: posts, tags: tags}
}

func (uow *MemoryUnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &MemoryTransaction{users: uow.users, posts: uow.posts, tags: uow.tags}, nil
}

type MemoryTransaction struct {
	users user_repository.Repository
	posts post_repository.Repository
	tags  tag_repository.Repository
}

func (t *MemoryTransaction) Commit(ctx context.Context) error   { return nil }
func (t *MemoryTransaction) Rollback(ctx context.Context) error { return nil }

func (t *MemoryTransaction) UserRepository() user_repository.Repository {
	return t.users
}

func (t *MemoryTransaction) PostRepository() post_repository.Repository {
	return t.posts
}

func (t *MemoryTransaction) TagRepository() tag_repository.Repository {
	return t.tags
}
