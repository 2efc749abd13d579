package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type forumService interface {
	ListPosts(ctx context.Context, category string, page, limit int) ([]models.ForumPost, models.PaginationMeta, error)
	GetPost(ctx context.Context, id int64) (*models.ForumPost, error)
	CreatePost(ctx context.Context, input services.CreatePostInput) (*models.ForumPost, error)
	ListComments(ctx context.Context, postID int64) ([]models.ForumComment, error)
	CreateComment(ctx context.Context, input services.CreateCommentInput) (*models.ForumComment, error)
}

type ForumHandler struct {
	service forumService
}

func NewForumHandler(service *services.ForumService) *ForumHandler {
	return &ForumHandler{service: service}
}

func (h *ForumHandler) ListPosts(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	posts, meta, err := h.service.ListPosts(c.Context(), c.Query("category"), page, limit)
	if err != nil {
		return mapForumError(c, err)
	}

	return c.JSON(fiber.Map{"posts": posts, "pagination": meta})
}

func (h *ForumHandler) GetPost(c *fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || postID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	post, err := h.service.GetPost(c.Context(), postID)
	if err != nil {
		return mapForumError(c, err)
	}

	return c.JSON(fiber.Map{"post": post})
}

type createPostRequest struct {
	UserID   int64  `json:"user_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (h *ForumHandler) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	post, err := h.service.CreatePost(c.Context(), services.CreatePostInput{
		UserID:   req.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return mapForumError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

func (h *ForumHandler) ListComments(c *fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Query("postId"), 10, 64)
	if err != nil || postID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	comments, err := h.service.ListComments(c.Context(), postID)
	if err != nil {
		return mapForumError(c, err)
	}

	return c.JSON(fiber.Map{"comments": comments})
}

type createCommentRequest struct {
	PostID  int64  `json:"post_id"`
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

func (h *ForumHandler) CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	comment, err := h.service.CreateComment(c.Context(), services.CreateCommentInput{
		PostID:  req.PostID,
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		return mapForumError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

func mapForumError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process forum request"})
	}
}
