package tag_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/model"
	"blogly-service/internal/repository/postgres/db"
)

const uniqueViolationCode = "23505"

type TagRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewTagRepository(db db.PgDB, log *logger.Logger) *TagRepository {
	return &TagRepository{db: db, log: log}
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	query := `
		INSERT INTO tags(name)
		VALUES (@name)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name`

	args := pgx.NamedArgs{"name": name}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == uniqueViolationCode {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		t.log.Error("Error creating tag", slog.String("name", name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

func (t *TagRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, name FROM tags WHERE id = @id`

	tag := &model.Tag{}
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			t.log.Debug("Tag not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrTagNotFound
		}
		t.log.Error("Error getting tag by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return tag, nil
}

func (t *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	query := `SELECT id, name FROM tags ORDER BY id`

	rows, err := t.db.Query(ctx, query)
	if err != nil {
		t.log.Error("Error listing tags", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return t.scanTags(rows)
}

func (t *TagRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		INNER JOIN posts_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = @post_id
		ORDER BY t.id`

	args := pgx.NamedArgs{"post_id": postID}

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.log.Error("Error finding tags by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return t.scanTags(rows)
}

func (t *TagRepository) scanTags(rows pgx.Rows) ([]*model.Tag, error) {
	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			t.log.Error("Error scanning tag row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		t.log.Error("Error iterating tag rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return tags, nil
}

func (t *TagRepository) Update(ctx context.Context, id int64, update *model.UpdateTagDTO) (*model.Tag, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Name != nil {
		setClauses = append(setClauses, "name = @name")
		args["name"] = *update.Name
	}

	if len(setClauses) == 0 {
		return t.GetByID(ctx, id)
	}

	query := "UPDATE tags SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @id RETURNING id, name"

	var updatedTag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&updatedTag.ID, &updatedTag.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			t.log.Debug("Tag not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrTagNotFound
		}
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == uniqueViolationCode {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		t.log.Error("Error updating tag", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &updatedTag, nil
}

func (t *TagRepository) Delete(ctx context.Context, id int64) error {
	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM tags WHERE id = @id`

	result, err := t.db.Exec(ctx, query, args)
	if err != nil {
		t.log.Error("Error deleting tag", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrTagNotFound
	}
	return nil
}

func (t *TagRepository) TagPost(ctx context.Context, postID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO posts_tags (post_id, tag_id) VALUES (@post_id, @tag_id)`

	for _, tagID := range tagIDs {
		batch.Queue(query, pgx.NamedArgs{
			"post_id": postID,
			"tag_id":  tagID,
		})
	}

	br := t.db.SendBatch(ctx, batch)
	defer br.Close()

	for range tagIDs {
		_, err := br.Exec()
		if err != nil {
			// The composite key enforces set semantics: inserting an
			// association that already exists is not an error.
			if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == uniqueViolationCode {
				continue
			}
			t.log.Error("Error tagging post",
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to tag post: %w", err)
		}
	}
	return nil
}

func (t *TagRepository) UntagPost(ctx context.Context, postID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `DELETE FROM posts_tags WHERE post_id = @post_id AND tag_id = @tag_id`

	for _, tagID := range tagIDs {
		batch.Queue(query, pgx.NamedArgs{
			"post_id": postID,
			"tag_id":  tagID,
		})
	}

	br := t.db.SendBatch(ctx, batch)
	defer br.Close()

	for range tagIDs {
		_, err := br.Exec()
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			t.log.Error("Error untagging post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

func (t *TagRepository) ClearPostTags(ctx context.Context, postID int64) error {
	args := pgx.NamedArgs{"post_id": postID}
	query := `DELETE FROM posts_tags WHERE post_id = @post_id`

	_, err := t.db.Exec(ctx, query, args)
	if err != nil {
		t.log.Error("Error clearing post tags", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (t *TagRepository) ClearTagPosts(ctx context.Context, tagID int64) error {
	args := pgx.NamedArgs{"tag_id": tagID}
	query := `DELETE FROM posts_tags WHERE tag_id = @tag_id`

	_, err := t.db.Exec(ctx, query, args)
	if err != nil {
		t.log.Error("Error clearing tag associations", slog.Int64("tag_id", tagID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}
