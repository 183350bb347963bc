package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/model"
)

type TagRepository struct {
	log        *logger.Logger
	mu         sync.RWMutex
	tags       map[int64]*model.Tag
	tagsByName map[string]*model.Tag
	postTags   map[int64]map[int64]bool
	tagPosts   map[int64]map[int64]bool
	nextID     int64
}

func NewTagRepository(log *logger.Logger) *TagRepository {
	return &TagRepository{
		log:        log,
		tags:       make(map[int64]*model.Tag),
		tagsByName: make(map[string]*model.Tag),
		postTags:   make(map[int64]map[int64]bool),
		tagPosts:   make(map[int64]map[int64]bool),
		nextID:     1,
	}
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.tagsByName[name]; exists {
		return nil, custom_errors.ErrTagAlreadyExists
	}

	tag := &model.Tag{
		ID:   t.nextID,
		Name: name,
	}
	t.nextID++

	t.tags[tag.ID] = tag
	t.tagsByName[tag.Name] = tag
	t.tagPosts[tag.ID] = make(map[int64]bool)

	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tag, exists := t.tags[id]
	if !exists {
		t.log.Debug("Tag not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrTagNotFound
	}

	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []*model.Tag
	for _, tag := range t.tags {
		tagCopy := *tag
		result = append(result, &tagCopy)
	}

	sortTagsByID(result)
	return result, nil
}

func (t *TagRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []*model.Tag
	if tagMap, exists := t.postTags[postID]; exists {
		for tagID := range tagMap {
			if tag, found := t.tags[tagID]; found {
				tagCopy := *tag
				result = append(result, &tagCopy)
			}
		}
	}

	sortTagsByID(result)
	return result, nil
}

func (t *TagRepository) Update(ctx context.Context, id int64, update *model.UpdateTagDTO) (*model.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tag, exists := t.tags[id]
	if !exists {
		return nil, custom_errors.ErrTagNotFound
	}

	if update.Name != nil {
		if other, found := t.tagsByName[*update.Name]; found && other.ID != id {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		delete(t.tagsByName, tag.Name)
		tag.Name = *update.Name
		t.tagsByName[tag.Name] = tag
	}

	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) Delete(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tag, exists := t.tags[id]
	if !exists {
		return custom_errors.ErrTagNotFound
	}

	delete(t.tagsByName, tag.Name)
	delete(t.tags, id)
	return nil
}

func (t *TagRepository) TagPost(ctx context.Context, postID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.postTags[postID]; !exists {
		t.postTags[postID] = make(map[int64]bool)
	}

	for _, tagID := range tagIDs {
		if _, found := t.tags[tagID]; !found {
			continue
		}
		t.postTags[postID][tagID] = true
		if _, exists := t.tagPosts[tagID]; !exists {
			t.tagPosts[tagID] = make(map[int64]bool)
		}
		t.tagPosts[tagID][postID] = true
	}

	return nil
}

func (t *TagRepository) UntagPost(ctx context.Context, postID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, tagID := range tagIDs {
		if tagMap, found := t.postTags[postID]; found {
			delete(tagMap, tagID)
		}
		if postMap, found := t.tagPosts[tagID]; found {
			delete(postMap, postID)
		}
	}

	return nil
}

func (t *TagRepository) ClearPostTags(ctx context.Context, postID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tagMap, exists := t.postTags[postID]; exists {
		for tagID := range tagMap {
			if postMap, found := t.tagPosts[tagID]; found {
				delete(postMap, postID)
			}
		}
	}
	delete(t.postTags, postID)

	return nil
}

func (t *TagRepository) ClearTagPosts(ctx context.Context, tagID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if postMap, exists := t.tagPosts[tagID]; exists {
		for postID := range postMap {
			if tagMap, found := t.postTags[postID]; found {
				delete(tagMap, tagID)
			}
		}
	}
	delete(t.tagPosts, tagID)

	return nil
}

// PostIDsByTag implements the memory post repository's AssociationSource.
func (t *TagRepository) PostIDsByTag(tagID int64) []int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var postIDs []int64
	for postID := range t.tagPosts[tagID] {
		postIDs = append(postIDs, postID)
	}

	sort.Slice(postIDs, func(i, j int) bool { return postIDs[i] < postIDs[j] })
	return postIDs
}

func sortTagsByID(tags []*model.Tag) {
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].ID < tags[j].ID
	})
}
