package delivery_http

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"blogly-service/internal/custom_errors"
	"blogly-service/internal/logger"
	"blogly-service/internal/metrics"
	post_service "blogly-service/internal/service/post"
	tag_service "blogly-service/internal/service/tag"
	user_service "blogly-service/internal/service/user"
)

//go:embed assets/default_user.png
var defaultUserImage []byte

type Server struct {
	app         *fiber.App
	tmpl        *template.Template
	userService user_service.Service
	postService post_service.Service
	tagService  tag_service.Service
	address     string
	port        int
	log         *logger.Logger
	metrics     metrics.Provider
}

func NewServer(
	userService user_service.Service,
	postService post_service.Service,
	tagService tag_service.Service,
	address string,
	port int,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *Server {
	s := &Server{
		tmpl:        mustParseTemplates(),
		userService: userService,
		postService: postService,
		tagService:  tagService,
		address:     address,
		port:        port,
		log:         log,
		metrics:     metricsProvider,
	}

	app := fiber.New(fiber.Config{
		AppName:      "blogly-service",
		ErrorHandler: s.errorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(s.metricsMiddleware)

	s.app = app
	s.setupRoutes()
	return s
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	s.log.Info("Starting HTTP server", slog.Int("port", s.port))
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) setupRoutes() {
	s.app.Get("/", func(c fiber.Ctx) error {
		return c.Redirect().Status(fiber.StatusFound).To("/users")
	})

	s.app.Get("/static/uploads/default_user.png", s.defaultAvatar)

	s.app.Get("/users", s.listUsers)
	s.app.Get("/users/new", s.newUserForm)
	s.app.Post("/users/new", s.createUser)
	s.app.Get("/users/:id", s.showUser)
	s.app.Get("/users/:id/edit", s.editUserForm)
	s.app.Post("/users/:id/edit", s.editUser)
	s.app.Post("/users/:id/delete", s.deleteUser)
	s.app.Get("/users/:id/posts/new", s.newPostForm)
	s.app.Post("/users/:id/posts/new", s.createPost)

	s.app.Get("/posts/:id", s.showPost)
	s.app.Get("/posts/:id/edit", s.editPostForm)
	s.app.Post("/posts/:id/edit", s.editPost)
	s.app.Post("/posts/:id/delete", s.deletePost)

	s.app.Get("/tags", s.listTags)
	s.app.Get("/tags/new", s.newTagForm)
	s.app.Post("/tags/new", s.createTag)
	s.app.Get("/tags/:id", s.showTag)
	s.app.Get("/tags/:id/edit", s.editTagForm)
	s.app.Post("/tags/:id/edit", s.editTag)
	s.app.Post("/tags/:id/delete", s.deleteTag)
}

func (s *Server) defaultAvatar(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(defaultUserImage)
}

func (s *Server) metricsMiddleware(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
	}

	method := c.Method()
	path := c.Route().Path
	statusLabel := strconv.Itoa(status)

	s.metrics.IncrementHTTPRequests(method, path, statusLabel)
	s.metrics.RecordHTTPRequestDuration(method, path, statusLabel, time.Since(start))

	return err
}

func (s *Server) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, custom_errors.ErrUserNotFound),
		errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrTagNotFound):
		code = fiber.StatusNotFound
	}

	if code == fiber.StatusInternalServerError {
		s.log.Error("Request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}

	return c.Status(code).SendString(fiber.NewError(code).Message)
}

func (s *Server) render(c fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("Failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()))
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// parseID parses an integer path segment. A non-integer segment means the
// resource cannot exist, so it maps to 404 rather than a client error.
func parseID(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

// formTagIDs collects the repeated "tags" values, parses and deduplicates
// them. Values that are not integers are dropped.
func formTagIDs(c fiber.Ctx) []int64 {
	values := c.Request().PostArgs().PeekMulti("tags")

	seen := make(map[int64]bool, len(values))
	var tagIDs []int64
	for _, raw := range values {
		id, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		tagIDs = append(tagIDs, id)
	}
	return tagIDs
}

// optionalField returns nil when the submitted value is absent or empty, so
// the store leaves the existing value untouched.
func optionalField(c fiber.Ctx, name string) *string {
	value := c.FormValue(name)
	if value == "" {
		return nil
	}
	return &value
}
