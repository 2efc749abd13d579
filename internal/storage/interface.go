package storage

import (
	"context"
	"errors"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist,
	// regardless of which backend is in use.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("storage: duplicate")
)

type CreateUserInput struct {
	Username     string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Email        *string
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	// UpdateUserEngagement overwrites the derived score/streak/last-check-in
	// triple. It is the only mutation path for those fields.
	UpdateUserEngagement(ctx context.Context, id int64, score, streak int, lastCheckIn *time.Time) (*models.User, error)
}

type CreateBiometricInput struct {
	UserID       int64
	SleepQuality *int
	EnergyLevel  *int
	StressLevel  *int
	FocusLevel   *int
	MoodLevel    *int
	Notes        *string
}

// BiometricStore is the append-only ledger of check-in entries. Entries get
// their id and timestamp on insert and are never mutated afterwards.
type BiometricStore interface {
	CreateBiometric(ctx context.Context, input CreateBiometricInput) (*models.Biometric, error)
	// ListBiometrics returns the full history, most recent first.
	ListBiometrics(ctx context.Context, userID int64) ([]models.Biometric, error)
	// RecentBiometrics returns entries dated within the trailing window,
	// oldest first, ties broken by id. The lower bound is closed. A
	// non-positive days yields an empty slice.
	RecentBiometrics(ctx context.Context, userID int64, days int) ([]models.Biometric, error)
}

type CreateProtocolInput struct {
	UserID      int64
	Name        string
	Description *string
	Duration    int
}

type UpdateProtocolInput struct {
	Name        *string
	Description *string
	Duration    *int
	CurrentDay  *int
	IsCompleted *bool
	IsActive    *bool
}

type ProtocolStore interface {
	ListProtocols(ctx context.Context, userID int64) ([]models.Protocol, error)
	ListActiveProtocols(ctx context.Context, userID int64) ([]models.Protocol, error)
	GetProtocol(ctx context.Context, id int64) (*models.Protocol, error)
	CreateProtocol(ctx context.Context, input CreateProtocolInput) (*models.Protocol, error)
	UpdateProtocol(ctx context.Context, id int64, input UpdateProtocolInput) (*models.Protocol, error)
	DeleteProtocol(ctx context.Context, id int64) error
}

type CreateProtocolCheckInInput struct {
	ProtocolID int64
	UserID     int64
	Notes      *string
}

type ProtocolCheckInStore interface {
	CreateProtocolCheckIn(ctx context.Context, input CreateProtocolCheckInInput) (*models.ProtocolCheckIn, error)
	ListProtocolCheckIns(ctx context.Context, protocolID int64) ([]models.ProtocolCheckIn, error)
}

type CreateAchievementInput struct {
	UserID      int64
	Name        string
	Description *string
	Points      int
}

type AchievementStore interface {
	ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error)
	CreateAchievement(ctx context.Context, input CreateAchievementInput) (*models.Achievement, error)
}

type ForumPostFilter struct {
	Category string
	Offset   int
	Limit    int
}

type CreateForumPostInput struct {
	UserID   int64
	Title    string
	Content  string
	Category string
}

type CreateForumCommentInput struct {
	PostID  int64
	UserID  int64
	Content string
}

type ForumStore interface {
	// ListForumPosts returns one page, newest first, plus the total count.
	ListForumPosts(ctx context.Context, filter ForumPostFilter) ([]models.ForumPost, int, error)
	GetForumPost(ctx context.Context, id int64) (*models.ForumPost, error)
	CreateForumPost(ctx context.Context, input CreateForumPostInput) (*models.ForumPost, error)
	ListForumComments(ctx context.Context, postID int64) ([]models.ForumComment, error)
	// CreateForumComment inserts the comment and bumps the post's comment
	// count as one unit. ErrNotFound if the post does not exist.
	CreateForumComment(ctx context.Context, input CreateForumCommentInput) (*models.ForumComment, error)
}

// Store is the full capability set the application is written against. Both
// backends implement it; the contract tests run against this interface so the
// variants stay behaviorally equivalent. Creates that reference a missing
// parent row (user, protocol, post) return ErrNotFound on every backend.
type Store interface {
	UserStore
	BiometricStore
	ProtocolStore
	ProtocolCheckInStore
	AchievementStore
	ForumStore
	Close()
}
