package delivery_http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"blogly-service/internal/model"
	"blogly-service/internal/validation"
)

type newPostPage struct {
	User    *model.User
	Missing map[string]bool
	Title   string
	Content string
	Tags    []*model.Tag
	Checked map[int64]bool
}

type editPostPage struct {
	Post    *model.Post
	Missing map[string]bool
	Tags    []*model.Tag
	Checked map[int64]bool
}

func (s *Server) newPostForm(c fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return err
	}

	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return err
	}

	return s.render(c, "new_post.html", newPostPage{
		User:    user,
		Missing: map[string]bool{},
		Tags:    tags,
		Checked: map[int64]bool{},
	})
}

func (s *Server) createPost(c fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}

	form := validation.PostForm{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	tagIDs := formTagIDs(c)

	if result := validation.Check(form); !result.Valid {
		user, err := s.userService.GetUserByID(c.Context(), userID)
		if err != nil {
			return err
		}
		tags, err := s.tagService.ListTags(c.Context())
		if err != nil {
			return err
		}
		return s.render(c, "new_post.html", newPostPage{
			User:    user,
			Missing: result.Missing,
			Title:   form.Title,
			Content: form.Content,
			Tags:    tags,
			Checked: checkedSet(tagIDs),
		})
	}

	if _, err := s.postService.CreatePost(c.Context(), &model.CreatePostDTO{
		UserID:  userID,
		Title:   form.Title,
		Content: form.Content,
		TagIDs:  tagIDs,
	}); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To(userLink(userID))
}

func (s *Server) showPost(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, "post.html", post)
}

func (s *Server) editPostForm(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		return err
	}

	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return err
	}

	checked := make(map[int64]bool, len(post.Tags))
	for _, tag := range post.Tags {
		checked[tag.ID] = true
	}

	return s.render(c, "post_edit.html", editPostPage{
		Post:    post.Post,
		Missing: map[string]bool{},
		Tags:    tags,
		Checked: checked,
	})
}

func (s *Server) editPost(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	form := validation.PostForm{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	tagIDs := formTagIDs(c)

	if result := validation.Check(form); !result.Valid {
		tags, err := s.tagService.ListTags(c.Context())
		if err != nil {
			return err
		}
		return s.render(c, "post_edit.html", editPostPage{
			Post:    &model.Post{ID: id, Title: form.Title, Content: form.Content},
			Missing: result.Missing,
			Tags:    tags,
			Checked: checkedSet(tagIDs),
		})
	}

	update := &model.UpdatePostDTO{
		Title:   &form.Title,
		Content: &form.Content,
		TagIDs:  tagIDs,
	}
	if err := s.postService.UpdatePost(c.Context(), id, update); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To(fmt.Sprintf("/posts/%d", id))
}

func (s *Server) deletePost(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	userID, err := s.postService.DeletePost(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To(userLink(userID))
}

func checkedSet(tagIDs []int64) map[int64]bool {
	checked := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		checked[id] = true
	}
	return checked
}
