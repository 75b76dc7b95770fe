package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"postapi/internal/auth"
	"postapi/internal/http/middleware"
	"postapi/internal/service"
)

// Pinger is the slice of the database handle health checks need. Both
// *sql.DB and the pgx pool adapter satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type signupRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HealthCheck reports whether the database answers a ping.
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe that always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Signup registers a new user and returns it together with an access token.
func Signup(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, token, err := userSvc.Signup(c.UserContext(), req.Handle, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrHandleRequired):
				return writeError(c, fiber.StatusBadRequest, "HANDLE_REQUIRED", "handle is required")
			case errors.Is(err, service.ErrPasswordRequired):
				return writeError(c, fiber.StatusBadRequest, "PASSWORD_REQUIRED", "password is required")
			case errors.Is(err, service.ErrHandleTaken):
				return writeError(c, fiber.StatusConflict, "HANDLE_TAKEN", "handle already registered")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":  user,
			"token": token,
		})
	}
}

// Login verifies credentials and returns an access token.
func Login(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		token, err := userSvc.Login(c.UserContext(), req.Handle, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid handle or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{"token": token})
	}
}

// CreatePost creates a post owned by the authenticated user.
func CreatePost(postSvc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserIDFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		var req createPostRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		post, err := postSvc.Create(c.UserContext(), userID, req.Title, req.Body)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTitleRequired):
				return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
			case errors.Is(err, service.ErrBodyRequired):
				return writeError(c, fiber.StatusBadRequest, "BODY_REQUIRED", "body is required")
			case errors.Is(err, service.ErrOwnerNotFound):
				// Token is valid but the account is gone
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "account no longer exists")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(post)
	}
}

// ListPosts returns the authenticated user's posts in creation order.
func ListPosts(postSvc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserIDFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		posts, err := postSvc.List(c.UserContext(), userID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(posts)
	}
}

// DeletePost deletes one of the authenticated user's posts by id.
func DeletePost(postSvc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserIDFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		postID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil || postID <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := postSvc.Delete(c.UserContext(), userID, postID); err != nil {
			switch {
			case errors.Is(err, service.ErrPostNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "post not found")
			case errors.Is(err, service.ErrForbidden):
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "post belongs to another user")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db Pinger, tokens *auth.Manager, userSvc service.UserService, postSvc service.PostService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", Signup(userSvc))
	authGroup.Post("/login", Login(userSvc))

	posts := app.Group("/api/posts", middleware.RequireAuth(tokens))
	posts.Post("/", CreatePost(postSvc))
	posts.Get("/", ListPosts(postSvc))
	posts.Delete("/:id", DeletePost(postSvc))
}
