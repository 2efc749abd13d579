package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/go-playground/validator/v10"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidMetric = errors.New("metric values must be integers between 0 and 100")
)

var validate = validator.New()

// CheckInMetrics carries the optional self-reported levels of one check-in.
// Values are validated against [0,100] and never clamped.
type CheckInMetrics struct {
	SleepQuality *int `json:"sleep_quality" validate:"omitempty,gte=0,lte=100"`
	EnergyLevel  *int `json:"energy_level" validate:"omitempty,gte=0,lte=100"`
	StressLevel  *int `json:"stress_level" validate:"omitempty,gte=0,lte=100"`
	FocusLevel   *int `json:"focus_level" validate:"omitempty,gte=0,lte=100"`
	MoodLevel    *int `json:"mood_level" validate:"omitempty,gte=0,lte=100"`
}

type engagementStore interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUserEngagement(ctx context.Context, id int64, score, streak int, lastCheckIn *time.Time) (*models.User, error)
	CreateBiometric(ctx context.Context, input storage.CreateBiometricInput) (*models.Biometric, error)
	ListBiometrics(ctx context.Context, userID int64) ([]models.Biometric, error)
	RecentBiometrics(ctx context.Context, userID int64, days int) ([]models.Biometric, error)
}

// EngagementService owns the derived score/streak state. All mutations for a
// given user run under that user's lock so concurrent check-ins cannot
// overwrite each other with stale values.
type EngagementService struct {
	store  engagementStore
	policy StreakPolicy

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

func NewEngagementService(store storage.Store, policy StreakPolicy) *EngagementService {
	return &EngagementService{
		store:     store,
		policy:    policy,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

func (s *EngagementService) lockUser(userID int64) *sync.Mutex {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock
}

// CheckIn appends a biometric entry, recomputes the wellness score over the
// trailing window and applies the streak policy, as one unit per user.
func (s *EngagementService) CheckIn(
	ctx context.Context,
	userID int64,
	metrics CheckInMetrics,
	notes *string,
) (*models.Biometric, *models.User, error) {
	if err := validate.Struct(metrics); err != nil {
		return nil, nil, ErrInvalidMetric
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	biometric, err := s.store.CreateBiometric(ctx, storage.CreateBiometricInput{
		UserID:       userID,
		SleepQuality: metrics.SleepQuality,
		EnergyLevel:  metrics.EnergyLevel,
		StressLevel:  metrics.StressLevel,
		FocusLevel:   metrics.FocusLevel,
		MoodLevel:    metrics.MoodLevel,
		Notes:        notes,
	})
	if err != nil {
		return nil, nil, err
	}

	score, err := s.windowScore(ctx, userID, user.BiohackScore)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	streak := s.policy.Next(user.CurrentStreak, user.LastCheckIn, now)

	updated, err := s.store.UpdateUserEngagement(ctx, userID, score, streak, &now)
	if err != nil {
		return nil, nil, err
	}

	return biometric, updated, nil
}

// RecordBiometric appends an entry and refreshes the score without touching
// the streak; this backs direct biometric submissions outside a check-in.
func (s *EngagementService) RecordBiometric(
	ctx context.Context,
	userID int64,
	metrics CheckInMetrics,
	notes *string,
) (*models.Biometric, error) {
	if err := validate.Struct(metrics); err != nil {
		return nil, ErrInvalidMetric
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	biometric, err := s.store.CreateBiometric(ctx, storage.CreateBiometricInput{
		UserID:       userID,
		SleepQuality: metrics.SleepQuality,
		EnergyLevel:  metrics.EnergyLevel,
		StressLevel:  metrics.StressLevel,
		FocusLevel:   metrics.FocusLevel,
		MoodLevel:    metrics.MoodLevel,
		Notes:        notes,
	})
	if err != nil {
		return nil, err
	}

	score, err := s.windowScore(ctx, userID, user.BiohackScore)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.UpdateUserEngagement(ctx, userID, score, user.CurrentStreak, user.LastCheckIn); err != nil {
		return nil, err
	}

	return biometric, nil
}

// AdvanceStreak applies the continuity policy without adding a biometric
// entry; protocol check-ins go through here so both check-in kinds follow
// the same policy.
func (s *EngagementService) AdvanceStreak(ctx context.Context, userID int64) (*models.User, error) {
	lock := s.lockUser(userID)
	defer lock.Unlock()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	streak := s.policy.Next(user.CurrentStreak, user.LastCheckIn, now)
	return s.store.UpdateUserEngagement(ctx, userID, user.BiohackScore, streak, &now)
}

// CurrentState is a pure read of the cached engagement values; nothing is
// recomputed here.
func (s *EngagementService) CurrentState(ctx context.Context, userID int64) (*models.EngagementState, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	state := user.Engagement()
	return &state, nil
}

func (s *EngagementService) RecentBiometrics(ctx context.Context, userID int64, days int) ([]models.Biometric, error) {
	return s.store.RecentBiometrics(ctx, userID, days)
}

func (s *EngagementService) History(ctx context.Context, userID int64) ([]models.Biometric, error) {
	return s.store.ListBiometrics(ctx, userID)
}

// windowScore derives the score for the trailing window, falling back to the
// existing score when the window is empty.
func (s *EngagementService) windowScore(ctx context.Context, userID int64, current int) (int, error) {
	window, err := s.store.RecentBiometrics(ctx, userID, scoreWindowDays)
	if err != nil {
		return 0, err
	}
	if score, ok := CompositeScore(window); ok {
		return score, nil
	}
	return current, nil
}
