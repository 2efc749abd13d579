package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/services"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type protocolService interface {
	CreateProtocol(ctx context.Context, input services.CreateProtocolInput) (*models.Protocol, error)
	ListProtocols(ctx context.Context, userID int64) ([]models.Protocol, error)
	ListActiveProtocols(ctx context.Context, userID int64) ([]models.Protocol, error)
	GetProtocol(ctx context.Context, id int64) (*models.Protocol, error)
	UpdateProtocol(ctx context.Context, id int64, input storage.UpdateProtocolInput) (*models.Protocol, error)
	DeleteProtocol(ctx context.Context, id int64) error
	CheckIn(ctx context.Context, input services.ProtocolCheckInInput) (*models.ProtocolCheckIn, error)
	ListCheckIns(ctx context.Context, protocolID int64) ([]models.ProtocolCheckIn, error)
}

type ProtocolHandler struct {
	service protocolService
}

func NewProtocolHandler(service *services.ProtocolService) *ProtocolHandler {
	return &ProtocolHandler{service: service}
}

type createProtocolRequest struct {
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
}

func (h *ProtocolHandler) CreateProtocol(c *fiber.Ctx) error {
	var req createProtocolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	protocol, err := h.service.CreateProtocol(c.Context(), services.CreateProtocolInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"protocol": protocol})
}

func (h *ProtocolHandler) ListProtocols(c *fiber.Ctx) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	protocols, err := h.service.ListProtocols(c.Context(), userID)
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"protocols": protocols})
}

func (h *ProtocolHandler) ListActiveProtocols(c *fiber.Ctx) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	protocols, err := h.service.ListActiveProtocols(c.Context(), userID)
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"protocols": protocols})
}

func (h *ProtocolHandler) GetProtocol(c *fiber.Ctx) error {
	protocolID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || protocolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid protocol id"})
	}

	protocol, err := h.service.GetProtocol(c.Context(), protocolID)
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"protocol": protocol})
}

type updateProtocolRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration"`
	CurrentDay  *int    `json:"current_day"`
	IsActive    *bool   `json:"is_active"`
	IsCompleted *bool   `json:"is_completed"`
}

func (h *ProtocolHandler) UpdateProtocol(c *fiber.Ctx) error {
	protocolID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || protocolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid protocol id"})
	}

	var req updateProtocolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	protocol, err := h.service.UpdateProtocol(c.Context(), protocolID, storage.UpdateProtocolInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		CurrentDay:  req.CurrentDay,
		IsActive:    req.IsActive,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"protocol": protocol})
}

func (h *ProtocolHandler) DeleteProtocol(c *fiber.Ctx) error {
	protocolID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || protocolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid protocol id"})
	}

	if err := h.service.DeleteProtocol(c.Context(), protocolID); err != nil {
		return mapProtocolError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type protocolCheckInRequest struct {
	ProtocolID int64   `json:"protocol_id"`
	UserID     int64   `json:"user_id"`
	Notes      *string `json:"notes"`
}

func (h *ProtocolHandler) CheckIn(c *fiber.Ctx) error {
	var req protocolCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ProtocolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "protocol_id is required"})
	}
	if req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	checkIn, err := h.service.CheckIn(c.Context(), services.ProtocolCheckInInput{
		ProtocolID: req.ProtocolID,
		UserID:     req.UserID,
		Notes:      req.Notes,
	})
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"check_in": checkIn})
}

func (h *ProtocolHandler) ListCheckIns(c *fiber.Ctx) error {
	protocolID, err := strconv.ParseInt(c.Query("protocolId"), 10, 64)
	if err != nil || protocolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid protocol id"})
	}

	checkIns, err := h.service.ListCheckIns(c.Context(), protocolID)
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"check_ins": checkIns})
}

func mapProtocolError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrProtocolNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Protocol not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process protocol request"})
	}
}
