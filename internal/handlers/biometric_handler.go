package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

const defaultRecentDays = 7

type biometricService interface {
	CheckIn(ctx context.Context, userID int64, metrics services.CheckInMetrics, notes *string) (*models.Biometric, *models.User, error)
	RecordBiometric(ctx context.Context, userID int64, metrics services.CheckInMetrics, notes *string) (*models.Biometric, error)
	RecentBiometrics(ctx context.Context, userID int64, days int) ([]models.Biometric, error)
	History(ctx context.Context, userID int64) ([]models.Biometric, error)
}

type BiometricHandler struct {
	service biometricService
}

func NewBiometricHandler(service *services.EngagementService) *BiometricHandler {
	return &BiometricHandler{service: service}
}

type checkInRequest struct {
	UserID     int64                   `json:"user_id"`
	Biometrics services.CheckInMetrics `json:"biometrics"`
	Notes      *string                 `json:"notes"`
}

func (h *BiometricHandler) CheckIn(c *fiber.Ctx) error {
	var req checkInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	biometric, user, err := h.service.CheckIn(c.Context(), req.UserID, req.Biometrics, req.Notes)
	if err != nil {
		return mapBiometricError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Check-in successful",
		"biometric":  biometric,
		"engagement": user.Engagement(),
	})
}

type createBiometricRequest struct {
	UserID int64   `json:"user_id"`
	Notes  *string `json:"notes"`
	services.CheckInMetrics
}

func (h *BiometricHandler) CreateBiometric(c *fiber.Ctx) error {
	var req createBiometricRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	biometric, err := h.service.RecordBiometric(c.Context(), req.UserID, req.CheckInMetrics, req.Notes)
	if err != nil {
		return mapBiometricError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"biometric": biometric})
}

func (h *BiometricHandler) ListBiometrics(c *fiber.Ctx) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	biometrics, err := h.service.History(c.Context(), userID)
	if err != nil {
		return mapBiometricError(c, err)
	}

	return c.JSON(fiber.Map{"biometrics": biometrics})
}

func (h *BiometricHandler) RecentBiometrics(c *fiber.Ctx) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	days := defaultRecentDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be an integer"})
		}
		days = parsed
	}

	biometrics, err := h.service.RecentBiometrics(c.Context(), userID, days)
	if err != nil {
		return mapBiometricError(c, err)
	}

	return c.JSON(fiber.Map{"biometrics": biometrics})
}

func parseUserIDQuery(c *fiber.Ctx) (int64, error) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid user id")
	}
	return userID, nil
}

func mapBiometricError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidMetric):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process biometric request"})
	}
}
