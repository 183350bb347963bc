package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/model"
)

// AssociationSource resolves which posts carry a tag. The memory tag
// repository implements it so GetByTag works against in-memory state.
type AssociationSource interface {
	PostIDsByTag(tagID int64) []int64
}

type PostRepository struct {
	log          *logger.Logger
	mu           sync.RWMutex
	posts        map[int64]*model.Post
	associations AssociationSource
	nextID       int64
}

func NewPostRepository(log *logger.Logger, associations AssociationSource) *PostRepository {
	return &PostRepository{
		log:          log,
		posts:        make(map[int64]*model.Post),
		associations: associations,
		nextID:       1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	newPost := &model.Post{
		ID:        p.nextID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: pgtype.Timestamp{Time: time.Now(), Valid: true},
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) GetByUser(ctx context.Context, userID int64) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, post := range p.posts {
		if post.UserID == userID {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}

	sortPostsByID(result)
	return result, nil
}

func (p *PostRepository) GetByTag(ctx context.Context, tagID int64) ([]*model.Post, error) {
	if p.associations == nil {
		return nil, nil
	}

	postIDs := p.associations.PostIDsByTag(tagID)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, id := range postIDs {
		if post, exists := p.posts[id]; exists {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}

	sortPostsByID(result)
	return result, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, post := range p.posts {
		postCopy := *post
		result = append(result, &postCopy)
	}

	sortPostsByID(result)
	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	return nil
}

func sortPostsByID(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
}
