package handlers

import (
	"log"
	"strings"

	"muebleria/internal/middleware"
	"muebleria/internal/models"
	"muebleria/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BlogHandler handles HTTP requests for the blog.
type BlogHandler struct {
	service  *services.BlogService
	validate *validator.Validate
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only blog routes.
func (h *BlogHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/blog", h.HandleGetPosts)
	router.Get("/blog/recent", h.HandleGetRecentPosts)
	router.Get("/blog/:id", h.HandleGetPost)
}

// RegisterRoutes registers the authenticated blog routes.
func (h *BlogHandler) RegisterRoutes(router fiber.Router) {
	blogRoutes := router.Group("/blog")
	blogRoutes.Post("/", h.HandleCreatePost)
	blogRoutes.Post("/:id/comments", h.HandleAddComment)
	blogRoutes.Post("/:id/like", h.HandleToggleLike)
}

// HandleGetPosts lists posts, optionally filtered by ?categoria=<slug>.
func (h *BlogHandler) HandleGetPosts(c *fiber.Ctx) error {
	posts, err := h.service.GetPosts(c.Query("categoria"))
	if err != nil {
		if strings.Contains(err.Error(), "invalid blog category") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid category",
				"error":   err.Error(),
			})
		}
		log.Printf("Error getting blog posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve posts",
			"error":   err.Error(),
		})
	}
	return c.JSON(posts)
}

// HandleGetRecentPosts lists the latest posts.
func (h *BlogHandler) HandleGetRecentPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 3)
	posts, err := h.service.GetRecentPosts(limit)
	if err != nil {
		log.Printf("Error getting recent blog posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve posts",
			"error":   err.Error(),
		})
	}
	return c.JSON(posts)
}

// HandleGetPost retrieves one post with its comments.
func (h *BlogHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.service.GetPost(c.Params("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error getting blog post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve post",
			"error":   err.Error(),
		})
	}
	return c.JSON(post)
}

// HandleCreatePost creates a post authored by the authenticated user.
func (h *BlogHandler) HandleCreatePost(c *fiber.Ctx) error {
	var post models.BlogPost
	if err := c.BodyParser(&post); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	post.AuthorID = middleware.UserID(c)
	if err := h.validate.Struct(post); err != nil {
		return validationError(c, err)
	}
	if err := h.service.CreatePost(&post); err != nil {
		if strings.Contains(err.Error(), "invalid blog category") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid category",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating blog post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create post",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// AddCommentRequest is the request body for commenting on a post.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// HandleAddComment attaches a comment to a post.
func (h *BlogHandler) HandleAddComment(c *fiber.Ctx) error {
	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	comment, err := h.service.AddComment(c.Params("id"), middleware.UserID(c), req.Text)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error adding comment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add comment",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleToggleLike likes or unlikes a post for the authenticated user.
func (h *BlogHandler) HandleToggleLike(c *fiber.Ctx) error {
	liked, count, err := h.service.ToggleLike(c.Params("id"), middleware.UserID(c))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error toggling like: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not toggle like",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"liked": liked,
		"likes": count,
	})
}
