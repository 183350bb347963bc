package delivery_http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"blogly-service/internal/model"
	"blogly-service/internal/validation"
)

type usersPage struct {
	Users []*model.User
}

type userPage struct {
	User  *model.User
	Posts []*model.Post
}

type newUserPage struct {
	Missing   map[string]bool
	FirstName string
	LastName  string
	ImageURL  string
}

type editUserPage struct {
	User *model.User
}

func (s *Server) listUsers(c fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, "users.html", usersPage{Users: users})
}

func (s *Server) newUserForm(c fiber.Ctx) error {
	return s.render(c, "new_user.html", newUserPage{Missing: map[string]bool{}})
}

func (s *Server) createUser(c fiber.Ctx) error {
	form := validation.UserForm{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		ImageURL:  c.FormValue("image_url"),
	}

	if result := validation.Check(form); !result.Valid {
		return s.render(c, "new_user.html", newUserPage{
			Missing:   result.Missing,
			FirstName: form.FirstName,
			LastName:  form.LastName,
			ImageURL:  form.ImageURL,
		})
	}

	_, err := s.userService.CreateUser(c.Context(), &model.CreateUserDTO{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  form.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To("/users")
}

func (s *Server) showUser(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return err
	}

	posts, err := s.postService.ListPostsByUser(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, "user.html", userPage{User: user, Posts: posts})
}

func (s *Server) editUserForm(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, "user_edit.html", editUserPage{User: user})
}

func (s *Server) editUser(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	update := &model.UpdateUserDTO{
		FirstName: optionalField(c, "first_name"),
		LastName:  optionalField(c, "last_name"),
		ImageURL:  optionalField(c, "image_url"),
	}

	if _, err := s.userService.UpdateUser(c.Context(), id, update); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To("/users")
}

func (s *Server) deleteUser(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To("/users")
}

func userLink(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}
