package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type achievementStore interface {
	ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error)
	CreateAchievement(ctx context.Context, input storage.CreateAchievementInput) (*models.Achievement, error)
}

// AchievementHandler talks to storage directly; achievements carry no
// derived state, so a service layer would add nothing here.
type AchievementHandler struct {
	store achievementStore
}

func NewAchievementHandler(store storage.Store) *AchievementHandler {
	return &AchievementHandler{store: store}
}

func (h *AchievementHandler) ListAchievements(c *fiber.Ctx) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	achievements, err := h.store.ListAchievements(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{"achievements": achievements})
}

type createAchievementRequest struct {
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Points      int     `json:"points"`
}

func (h *AchievementHandler) CreateAchievement(c *fiber.Ctx) error {
	var req createAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID <= 0 || strings.TrimSpace(req.Name) == "" || req.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and name are required"})
	}

	achievement, err := h.store.CreateAchievement(c.Context(), storage.CreateAchievementInput{
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Points:      req.Points,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"achievement": achievement})
}
