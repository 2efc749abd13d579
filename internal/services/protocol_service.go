package services

import (
	"context"
	"errors"
	"strings"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/storage"
)

var (
	ErrProtocolNotFound = errors.New("protocol not found")
	ErrInvalidInput     = errors.New("invalid input")
)

type protocolStore interface {
	ListProtocols(ctx context.Context, userID int64) ([]models.Protocol, error)
	ListActiveProtocols(ctx context.Context, userID int64) ([]models.Protocol, error)
	GetProtocol(ctx context.Context, id int64) (*models.Protocol, error)
	CreateProtocol(ctx context.Context, input storage.CreateProtocolInput) (*models.Protocol, error)
	UpdateProtocol(ctx context.Context, id int64, input storage.UpdateProtocolInput) (*models.Protocol, error)
	DeleteProtocol(ctx context.Context, id int64) error
	CreateProtocolCheckIn(ctx context.Context, input storage.CreateProtocolCheckInInput) (*models.ProtocolCheckIn, error)
	ListProtocolCheckIns(ctx context.Context, protocolID int64) ([]models.ProtocolCheckIn, error)
}

type streakAdvancer interface {
	AdvanceStreak(ctx context.Context, userID int64) (*models.User, error)
}

type ProtocolService struct {
	store      protocolStore
	engagement streakAdvancer
}

func NewProtocolService(store storage.Store, engagement *EngagementService) *ProtocolService {
	return &ProtocolService{store: store, engagement: engagement}
}

type CreateProtocolInput struct {
	UserID      int64
	Name        string
	Description *string
	Duration    int
}

func (s *ProtocolService) CreateProtocol(ctx context.Context, input CreateProtocolInput) (*models.Protocol, error) {
	if input.UserID <= 0 || strings.TrimSpace(input.Name) == "" || input.Duration <= 0 {
		return nil, ErrInvalidInput
	}

	protocol, err := s.store.CreateProtocol(ctx, storage.CreateProtocolInput{
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Duration:    input.Duration,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return protocol, nil
}

func (s *ProtocolService) ListProtocols(ctx context.Context, userID int64) ([]models.Protocol, error) {
	return s.store.ListProtocols(ctx, userID)
}

func (s *ProtocolService) ListActiveProtocols(ctx context.Context, userID int64) ([]models.Protocol, error) {
	return s.store.ListActiveProtocols(ctx, userID)
}

func (s *ProtocolService) GetProtocol(ctx context.Context, id int64) (*models.Protocol, error) {
	protocol, err := s.store.GetProtocol(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, err
	}
	return protocol, nil
}

func (s *ProtocolService) UpdateProtocol(
	ctx context.Context,
	id int64,
	input storage.UpdateProtocolInput,
) (*models.Protocol, error) {
	protocol, err := s.store.UpdateProtocol(ctx, id, input)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, err
	}
	return protocol, nil
}

func (s *ProtocolService) DeleteProtocol(ctx context.Context, id int64) error {
	err := s.store.DeleteProtocol(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrProtocolNotFound
	}
	return err
}

type ProtocolCheckInInput struct {
	ProtocolID int64
	UserID     int64
	Notes      *string
}

// CheckIn records a protocol check-in, advances the protocol's day counter
// (completing it once past its duration) and applies the streak policy.
func (s *ProtocolService) CheckIn(ctx context.Context, input ProtocolCheckInInput) (*models.ProtocolCheckIn, error) {
	protocol, err := s.store.GetProtocol(ctx, input.ProtocolID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, err
	}

	checkIn, err := s.store.CreateProtocolCheckIn(ctx, storage.CreateProtocolCheckInInput{
		ProtocolID: input.ProtocolID,
		UserID:     input.UserID,
		Notes:      input.Notes,
	})
	if err != nil {
		// The protocol was just fetched, so a missing row here is the user.
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	currentDay := protocol.CurrentDay + 1
	isCompleted := currentDay > protocol.Duration
	if _, err := s.store.UpdateProtocol(ctx, protocol.ID, storage.UpdateProtocolInput{
		CurrentDay:  &currentDay,
		IsCompleted: &isCompleted,
	}); err != nil {
		return nil, err
	}

	if input.UserID > 0 {
		if _, err := s.engagement.AdvanceStreak(ctx, input.UserID); err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
	}

	return checkIn, nil
}

func (s *ProtocolService) ListCheckIns(ctx context.Context, protocolID int64) ([]models.ProtocolCheckIn, error) {
	return s.store.ListProtocolCheckIns(ctx, protocolID)
}
