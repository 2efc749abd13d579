package services

import (
	"context"
	"testing"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/storage"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*storage.MemStore, *models.User) {
	t.Helper()
	store := storage.NewMemStore(zap.NewNop().Sugar())
	user, err := store.CreateUser(context.Background(), storage.CreateUserInput{
		Username:     "testuser",
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return store, user
}

func TestCheckInComputesScoreAndStartsStreak(t *testing.T) {
	store, user := newTestStore(t)
	service := NewEngagementService(store, DefaultStreakPolicy())

	biometric, updated, err := service.CheckIn(context.Background(), user.ID, CheckInMetrics{
		SleepQuality: intPtr(80),
		EnergyLevel:  intPtr(70),
		StressLevel:  intPtr(30),
		FocusLevel:   intPtr(60),
		MoodLevel:    intPtr(75),
	}, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if biometric.ID == 0 {
		t.Fatal("expected biometric to be assigned an id")
	}
	if updated.BiohackScore != 71 {
		t.Fatalf("expected score 71, got %d", updated.BiohackScore)
	}
	if updated.CurrentStreak != 1 {
		t.Fatalf("expected first check-in to start streak at 1, got %d", updated.CurrentStreak)
	}
	if updated.LastCheckIn == nil {
		t.Fatal("expected last check-in to be set")
	}
}

func TestCheckInStreakProgression(t *testing.T) {
	store, user := newTestStore(t)
	service := NewEngagementService(store, DefaultStreakPolicy())
	ctx := context.Background()

	_, updated, err := service.CheckIn(ctx, user.ID, CheckInMetrics{SleepQuality: intPtr(80)}, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if updated.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", updated.CurrentStreak)
	}

	// Backdate the last check-in past the hold window but inside the
	// break window: the next check-in extends the streak.
	backdated := time.Now().Add(-21 * time.Hour)
	if _, err := store.UpdateUserEngagement(ctx, user.ID, updated.BiohackScore, updated.CurrentStreak, &backdated); err != nil {
		t.Fatalf("UpdateUserEngagement: %v", err)
	}
	_, updated, err = service.CheckIn(ctx, user.ID, CheckInMetrics{SleepQuality: intPtr(80)}, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if updated.CurrentStreak != 2 {
		t.Fatalf("expected streak 2 after 21h gap, got %d", updated.CurrentStreak)
	}

	// Inside the hold window: streak is unchanged.
	backdated = time.Now().Add(-2 * time.Hour)
	if _, err := store.UpdateUserEngagement(ctx, user.ID, updated.BiohackScore, updated.CurrentStreak, &backdated); err != nil {
		t.Fatalf("UpdateUserEngagement: %v", err)
	}
	_, updated, err = service.CheckIn(ctx, user.ID, CheckInMetrics{SleepQuality: intPtr(80)}, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if updated.CurrentStreak != 2 {
		t.Fatalf("expected streak to hold at 2 after 2h gap, got %d", updated.CurrentStreak)
	}

	// Past the break window: streak resets.
	backdated = time.Now().Add(-49 * time.Hour)
	if _, err := store.UpdateUserEngagement(ctx, user.ID, updated.BiohackScore, updated.CurrentStreak, &backdated); err != nil {
		t.Fatalf("UpdateUserEngagement: %v", err)
	}
	_, updated, err = service.CheckIn(ctx, user.ID, CheckInMetrics{SleepQuality: intPtr(80)}, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if updated.CurrentStreak != 1 {
		t.Fatalf("expected streak to reset to 1 after 49h gap, got %d", updated.CurrentStreak)
	}
}

func TestCheckInRejectsOutOfRangeMetrics(t *testing.T) {
	store, user := newTestStore(t)
	service := NewEngagementService(store, DefaultStreakPolicy())
	ctx := context.Background()

	_, _, err := service.CheckIn(ctx, user.ID, CheckInMetrics{SleepQuality: intPtr(101)}, nil)
	if err != ErrInvalidMetric {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}
	_, _, err = service.CheckIn(ctx, user.ID, CheckInMetrics{MoodLevel: intPtr(-1)}, nil)
	if err != ErrInvalidMetric {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}

	// Rejected check-ins must not touch the ledger or the streak.
	history, err := service.History(ctx, user.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history after rejected check-ins, got %d entries", len(history))
	}
	state, err := service.CurrentState(ctx, user.ID)
	if err != nil {
		t.Fatalf("CurrentState: %v", err)
	}
	if state.CurrentStreak != 0 || state.LastCheckIn != nil {
		t.Fatalf("expected untouched engagement state, got %+v", state)
	}
}

func TestCheckInUnknownUser(t *testing.T) {
	store := storage.NewMemStore(zap.NewNop().Sugar())
	service := NewEngagementService(store, DefaultStreakPolicy())

	_, _, err := service.CheckIn(context.Background(), 42, CheckInMetrics{SleepQuality: intPtr(50)}, nil)
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecordBiometricLeavesStreakAlone(t *testing.T) {
	store, user := newTestStore(t)
	service := NewEngagementService(store, DefaultStreakPolicy())
	ctx := context.Background()

	biometric, err := service.RecordBiometric(ctx, user.ID, CheckInMetrics{
		SleepQuality: intPtr(80),
		EnergyLevel:  intPtr(70),
		StressLevel:  intPtr(30),
		FocusLevel:   intPtr(60),
		MoodLevel:    intPtr(75),
	}, nil)
	if err != nil {
		t.Fatalf("RecordBiometric: %v", err)
	}
	if biometric.UserID != user.ID {
		t.Fatalf("expected biometric for user %d, got %d", user.ID, biometric.UserID)
	}

	state, err := service.CurrentState(ctx, user.ID)
	if err != nil {
		t.Fatalf("CurrentState: %v", err)
	}
	if state.BiohackScore != 71 {
		t.Fatalf("expected score 71, got %d", state.BiohackScore)
	}
	if state.CurrentStreak != 0 || state.LastCheckIn != nil {
		t.Fatalf("expected streak untouched by direct biometric, got %+v", state)
	}
}

func TestCurrentStateIsPureRead(t *testing.T) {
	store, user := newTestStore(t)
	service := NewEngagementService(store, DefaultStreakPolicy())
	ctx := context.Background()

	if _, _, err := service.CheckIn(ctx, user.ID, CheckInMetrics{SleepQuality: intPtr(60)}, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	first, err := service.CurrentState(ctx, user.ID)
	if err != nil {
		t.Fatalf("CurrentState: %v", err)
	}
	second, err := service.CurrentState(ctx, user.ID)
	if err != nil {
		t.Fatalf("CurrentState: %v", err)
	}
	if first.BiohackScore != second.BiohackScore || first.CurrentStreak != second.CurrentStreak {
		t.Fatalf("expected repeated reads to be identical, got %+v then %+v", first, second)
	}
}
