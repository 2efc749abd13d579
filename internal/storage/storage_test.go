package storage

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danivc/BioHackerBack/internal/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// missingID is far above anything a serial column hands out, so lookups with
// it miss on a database that already holds data.
const missingID = int64(1) << 62

var nameSeq atomic.Int64

// uniqueName keeps the contract suite re-runnable against a persistent
// database: unique-constraint and count assertions never collide with rows
// left by earlier runs.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), nameSeq.Add(1))
}

func seedUser(t *testing.T, store Store) int64 {
	t.Helper()
	user, err := store.CreateUser(context.Background(), CreateUserInput{
		Username:     uniqueName("user"),
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user.ID
}

func TestMemStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemStore(zap.NewNop().Sugar())
	})
}

func TestPostgresStoreContract(t *testing.T) {
	dbUrl := os.Getenv("TEST_DB_URL")
	if dbUrl == "" {
		t.Skip("TEST_DB_URL not set")
	}
	runStoreContract(t, func(t *testing.T) Store {
		pool, err := database.Connect(dbUrl)
		require.NoError(t, err)
		store := NewPostgresStore(pool, zap.NewNop().Sugar())
		t.Cleanup(store.Close)
		return store
	})
}

// runStoreContract is the behavioral contract every Store variant must
// satisfy; both backends run the identical suite.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("CreateUserDuplicateUsername", func(t *testing.T) {
		store := newStore(t)
		username := uniqueName("user")

		_, err := store.CreateUser(ctx, CreateUserInput{Username: username, PasswordHash: "x"})
		require.NoError(t, err)

		_, err = store.CreateUser(ctx, CreateUserInput{Username: username, PasswordHash: "y"})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("GetUserNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetUser(ctx, missingID)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.UpdateUserEngagement(ctx, missingID, 50, 1, nil)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateUserEngagementOverwritesTriple", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)

		checkedIn := time.Now().Truncate(time.Second)
		updated, err := store.UpdateUserEngagement(ctx, userID, 71, 3, &checkedIn)
		require.NoError(t, err)
		require.Equal(t, 71, updated.BiohackScore)
		require.Equal(t, 3, updated.CurrentStreak)
		require.NotNil(t, updated.LastCheckIn)
		require.True(t, updated.LastCheckIn.Equal(checkedIn))
	})

	t.Run("BiometricLedgerAppendAndWindow", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)

		for i := 0; i < 3; i++ {
			quality := 70 + i
			_, err := store.CreateBiometric(ctx, CreateBiometricInput{
				UserID:       userID,
				SleepQuality: &quality,
			})
			require.NoError(t, err)
		}

		// A just-appended entry is always inside the trailing window.
		recent, err := store.RecentBiometrics(ctx, userID, 7)
		require.NoError(t, err)
		require.Len(t, recent, 3)

		// Window reads come oldest first, ties broken by id.
		for i := 1; i < len(recent); i++ {
			require.LessOrEqual(t, recent[i-1].ID, recent[i].ID)
		}

		// Full history comes newest first.
		history, err := store.ListBiometrics(ctx, userID)
		require.NoError(t, err)
		require.Len(t, history, 3)
		require.Equal(t, recent[len(recent)-1].ID, history[0].ID)
	})

	t.Run("RecentBiometricsNonPositiveDays", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)

		quality := 80
		_, err := store.CreateBiometric(ctx, CreateBiometricInput{UserID: userID, SleepQuality: &quality})
		require.NoError(t, err)

		for _, days := range []int{0, -1} {
			recent, err := store.RecentBiometrics(ctx, userID, days)
			require.NoError(t, err)
			require.Empty(t, recent)
		}
	})

	t.Run("BiometricsScopedToUser", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)
		otherID := seedUser(t, store)

		quality := 80
		_, err := store.CreateBiometric(ctx, CreateBiometricInput{UserID: userID, SleepQuality: &quality})
		require.NoError(t, err)

		recent, err := store.RecentBiometrics(ctx, otherID, 7)
		require.NoError(t, err)
		require.Empty(t, recent)
	})

	t.Run("CreatesRejectMissingUser", func(t *testing.T) {
		store := newStore(t)

		quality := 80
		_, err := store.CreateBiometric(ctx, CreateBiometricInput{UserID: missingID, SleepQuality: &quality})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.CreateProtocol(ctx, CreateProtocolInput{UserID: missingID, Name: "Fasting", Duration: 14})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.CreateAchievement(ctx, CreateAchievementInput{UserID: missingID, Name: "First Steps", Points: 5})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.CreateForumPost(ctx, CreateForumPostInput{
			UserID:   missingID,
			Title:    "t",
			Content:  "c",
			Category: uniqueName("category"),
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ProtocolCheckInRejectsMissingParents", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)

		_, err := store.CreateProtocolCheckIn(ctx, CreateProtocolCheckInInput{
			ProtocolID: missingID,
			UserID:     userID,
		})
		require.ErrorIs(t, err, ErrNotFound)

		protocol, err := store.CreateProtocol(ctx, CreateProtocolInput{UserID: userID, Name: "Sauna", Duration: 7})
		require.NoError(t, err)

		_, err = store.CreateProtocolCheckIn(ctx, CreateProtocolCheckInInput{
			ProtocolID: protocol.ID,
			UserID:     missingID,
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreateForumCommentUnknownPost", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)

		_, err := store.CreateForumComment(ctx, CreateForumCommentInput{
			PostID:  missingID,
			UserID:  userID,
			Content: "hello",
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ForumCommentBumpsCount", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)

		post, err := store.CreateForumPost(ctx, CreateForumPostInput{
			UserID:   userID,
			Title:    "t",
			Content:  "c",
			Category: uniqueName("category"),
		})
		require.NoError(t, err)

		_, err = store.CreateForumComment(ctx, CreateForumCommentInput{
			PostID:  post.ID,
			UserID:  userID,
			Content: "nice",
		})
		require.NoError(t, err)

		refreshed, err := store.GetForumPost(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, 1, refreshed.CommentCount)
	})

	t.Run("ListForumPostsNewestFirst", func(t *testing.T) {
		store := newStore(t)
		userID := seedUser(t, store)
		category := uniqueName("category")

		var lastID int64
		for i := 0; i < 3; i++ {
			post, err := store.CreateForumPost(ctx, CreateForumPostInput{
				UserID:   userID,
				Title:    "t",
				Content:  "c",
				Category: category,
			})
			require.NoError(t, err)
			lastID = post.ID
		}

		posts, total, err := store.ListForumPosts(ctx, ForumPostFilter{Category: category, Offset: 0, Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, posts, 3)
		require.Equal(t, lastID, posts[0].ID)
	})
}
