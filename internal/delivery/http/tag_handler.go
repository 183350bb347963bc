package delivery_http

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/model"
	"blogly-service/internal/validation"
)

type tagsPage struct {
	Tags []*model.Tag
}

type newTagPage struct {
	Missing   map[string]bool
	Duplicate bool
	Name      string
}

type editTagPage struct {
	Tag       *model.Tag
	Missing   map[string]bool
	Duplicate bool
}

func (s *Server) listTags(c fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, "tags.html", tagsPage{Tags: tags})
}

func (s *Server) newTagForm(c fiber.Ctx) error {
	return s.render(c, "new_tag.html", newTagPage{Missing: map[string]bool{}})
}

func (s *Server) createTag(c fiber.Ctx) error {
	form := validation.TagForm{Name: c.FormValue("tag_name")}

	if result := validation.Check(form); !result.Valid {
		return s.render(c, "new_tag.html", newTagPage{
			Missing: result.Missing,
			Name:    form.Name,
		})
	}

	_, err := s.tagService.CreateTag(c.Context(), form.Name)
	if err != nil {
		if errors.Is(err, custom_errors.ErrTagAlreadyExists) {
			return s.render(c, "new_tag.html", newTagPage{
				Missing:   map[string]bool{},
				Duplicate: true,
				Name:      form.Name,
			})
		}
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To("/tags")
}

func (s *Server) showTag(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tag, err := s.tagService.GetTagByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, "tag.html", tag)
}

func (s *Server) editTagForm(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tag, err := s.tagService.GetTagByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, "tag_edit.html", editTagPage{
		Tag:     tag.Tag,
		Missing: map[string]bool{},
	})
}

func (s *Server) editTag(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	form := validation.TagForm{Name: c.FormValue("tag_name")}

	if result := validation.Check(form); !result.Valid {
		return s.render(c, "tag_edit.html", editTagPage{
			Tag:     &model.Tag{ID: id, Name: form.Name},
			Missing: result.Missing,
		})
	}

	if _, err := s.tagService.UpdateTag(c.Context(), id, &model.UpdateTagDTO{Name: &form.Name}); err != nil {
		if errors.Is(err, custom_errors.ErrTagAlreadyExists) {
			return s.render(c, "tag_edit.html", editTagPage{
				Tag:       &model.Tag{ID: id, Name: form.Name},
				Missing:   map[string]bool{},
				Duplicate: true,
			})
		}
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To("/tags")
}

func (s *Server) deleteTag(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := s.tagService.DeleteTag(c.Context(), id); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To("/tags")
}
