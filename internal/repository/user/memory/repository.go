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

type UserRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	users  map[int64]*model.User
	nextID int64
}

func NewUserRepository(log *logger.Logger) *UserRepository {
	return &UserRepository{
		log:    log,
		users:  make(map[int64]*model.User),
		nextID: 1,
	}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	imageURL := user.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultUserImageURL
	}

	newUser := &model.User{
		ID:        u.nextID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ImageURL:  imageURL,
	}
	u.nextID++

	u.users[newUser.ID] = newUser

	result := *newUser
	return &result, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, exists := u.users[id]
	if !exists {
		u.log.Debug("User not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrUserNotFound
	}

	result := *user
	return &result, nil
}

func (u *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var result []*model.User
	for _, user := range u.users {
		userCopy := *user
		result = append(result, &userCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (u *UserRepository) Update(ctx context.Context, id int64, update *model.UpdateUserDTO) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, exists := u.users[id]
	if !exists {
		return nil, custom_errors.ErrUserNotFound
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.ImageURL != nil {
		user.ImageURL = *update.ImageURL
	}

	result := *user
	return &result, nil
}

func (u *UserRepository) Delete(ctx context.Context, id int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.users[id]; !exists {
		return custom_errors.ErrUserNotFound
	}

	delete(u.users, id)
	return nil
}
