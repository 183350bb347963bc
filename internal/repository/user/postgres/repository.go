package user_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/model"
	"blogly-service/internal/repository/postgres/db"
)

type UserRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewUserRepository(db db.PgDB, log *logger.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	imageURL := user.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultUserImageURL
	}

	args := pgx.NamedArgs{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"image_url":  imageURL,
	}

	query := `
		INSERT INTO users (first_name, last_name, image_url)
		VALUES (@first_name, @last_name, @image_url)
		RETURNING id, first_name, last_name, image_url`

	var createdUser model.User
	err := u.db.QueryRow(ctx, query, args).Scan(
		&createdUser.ID,
		&createdUser.FirstName,
		&createdUser.LastName,
		&createdUser.ImageURL,
	)
	if err != nil {
		u.log.Error("Error creating user", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &createdUser, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, first_name, last_name, image_url FROM users WHERE id = @id`

	user := &model.User{}
	err := u.db.QueryRow(ctx, query, args).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			u.log.Debug("User not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrUserNotFound
		}
		u.log.Error("Error getting user by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return user, nil
}

func (u *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT id, first_name, last_name, image_url FROM users ORDER BY id`

	rows, err := u.db.Query(ctx, query)
	if err != nil {
		u.log.Error("Error listing users", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.ImageURL); err != nil {
			u.log.Error("Error scanning user during List", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		u.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return users, nil
}

func (u *UserRepository) Update(ctx context.Context, id int64, update *model.UpdateUserDTO) (*model.User, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.FirstName != nil {
		setClauses = append(setClauses, "first_name = @first_name")
		args["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		setClauses = append(setClauses, "last_name = @last_name")
		args["last_name"] = *update.LastName
	}
	if update.ImageURL != nil {
		setClauses = append(setClauses, "image_url = @image_url")
		args["image_url"] = *update.ImageURL
	}

	// An update with no supplied fields is a no-op that still succeeds and
	// returns the stored row unchanged.
	if len(setClauses) == 0 {
		return u.GetByID(ctx, id)
	}

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @id RETURNING id, first_name, last_name, image_url"

	var updatedUser model.User
	err := u.db.QueryRow(ctx, query, args).Scan(
		&updatedUser.ID,
		&updatedUser.FirstName,
		&updatedUser.LastName,
		&updatedUser.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			u.log.Debug("User not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrUserNotFound
		}
		u.log.Error("Error updating user", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &updatedUser, nil
}

func (u *UserRepository) Delete(ctx context.Context, id int64) error {
	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM users WHERE id = @id`

	result, err := u.db.Exec(ctx, query, args)
	if err != nil {
		u.log.Error("Error deleting user", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrUserNotFound
	}
	return nil
}
