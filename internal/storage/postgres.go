package storage

import (
	"context"
	"errors"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	uniqueViolationCode = "23505"
	fkViolationCode     = "23503"
)

type PostgresStore struct {
	pool          *pgxpool.Pool
	logger        *zap.SugaredLogger
	users         *repository.UserRepository
	biometrics    *repository.BiometricRepository
	protocols     *repository.ProtocolRepository
	checkIns      *repository.ProtocolCheckInRepository
	achievements  *repository.AchievementRepository
	forumPosts    *repository.ForumPostRepository
	forumComments *repository.ForumCommentRepository
}

func NewPostgresStore(pool *pgxpool.Pool, logger *zap.SugaredLogger) *PostgresStore {
	return &PostgresStore{
		pool:          pool,
		logger:        logger,
		users:         repository.NewUserRepository(pool),
		biometrics:    repository.NewBiometricRepository(pool),
		protocols:     repository.NewProtocolRepository(pool),
		checkIns:      repository.NewProtocolCheckInRepository(pool),
		achievements:  repository.NewAchievementRepository(pool),
		forumPosts:    repository.NewForumPostRepository(pool),
		forumComments: repository.NewForumCommentRepository(pool),
	}
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// mapErr translates driver-level sentinels into backend-neutral ones.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return ErrDuplicate
		case fkViolationCode:
			return ErrNotFound
		}
	}
	return err
}

// --- UserStore ---

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	return user, mapErr(err)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	return user, mapErr(err)
}

func (s *PostgresStore) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	user, err := s.users.Create(ctx, repository.CreateUserInput{
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
	})
	if err != nil {
		s.logger.Errorf("create user: %v", err)
	}
	return user, mapErr(err)
}

func (s *PostgresStore) UpdateUserEngagement(
	ctx context.Context,
	id int64,
	score, streak int,
	lastCheckIn *time.Time,
) (*models.User, error) {
	user, err := s.users.UpdateEngagement(ctx, id, score, streak, lastCheckIn)
	return user, mapErr(err)
}

// --- BiometricStore ---

func (s *PostgresStore) CreateBiometric(ctx context.Context, input CreateBiometricInput) (*models.Biometric, error) {
	biometric, err := s.biometrics.Create(ctx, repository.CreateBiometricInput{
		UserID:       input.UserID,
		SleepQuality: input.SleepQuality,
		EnergyLevel:  input.EnergyLevel,
		StressLevel:  input.StressLevel,
		FocusLevel:   input.FocusLevel,
		MoodLevel:    input.MoodLevel,
		Notes:        input.Notes,
	})
	if err != nil {
		s.logger.Errorf("create biometric: %v", err)
	}
	return biometric, mapErr(err)
}

func (s *PostgresStore) ListBiometrics(ctx context.Context, userID int64) ([]models.Biometric, error) {
	biometrics, err := s.biometrics.ListByUserID(ctx, userID)
	return biometrics, mapErr(err)
}

func (s *PostgresStore) RecentBiometrics(ctx context.Context, userID int64, days int) ([]models.Biometric, error) {
	if days <= 0 {
		return []models.Biometric{}, nil
	}
	biometrics, err := s.biometrics.ListRecent(ctx, userID, days)
	return biometrics, mapErr(err)
}

// --- ProtocolStore ---

func (s *PostgresStore) ListProtocols(ctx context.Context, userID int64) ([]models.Protocol, error) {
	protocols, err := s.protocols.ListByUserID(ctx, userID)
	return protocols, mapErr(err)
}

func (s *PostgresStore) ListActiveProtocols(ctx context.Context, userID int64) ([]models.Protocol, error) {
	protocols, err := s.protocols.ListActiveByUserID(ctx, userID)
	return protocols, mapErr(err)
}

func (s *PostgresStore) GetProtocol(ctx context.Context, id int64) (*models.Protocol, error) {
	protocol, err := s.protocols.GetByID(ctx, id)
	return protocol, mapErr(err)
}

func (s *PostgresStore) CreateProtocol(ctx context.Context, input CreateProtocolInput) (*models.Protocol, error) {
	protocol, err := s.protocols.Create(ctx, repository.CreateProtocolInput{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
	})
	return protocol, mapErr(err)
}

func (s *PostgresStore) UpdateProtocol(ctx context.Context, id int64, input UpdateProtocolInput) (*models.Protocol, error) {
	protocol, err := s.protocols.Update(ctx, id, repository.UpdateProtocolInput{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		CurrentDay:  input.CurrentDay,
		IsCompleted: input.IsCompleted,
		IsActive:    input.IsActive,
	})
	return protocol, mapErr(err)
}

func (s *PostgresStore) DeleteProtocol(ctx context.Context, id int64) error {
	deleted, err := s.protocols.Delete(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// --- ProtocolCheckInStore ---

func (s *PostgresStore) CreateProtocolCheckIn(
	ctx context.Context,
	input CreateProtocolCheckInInput,
) (*models.ProtocolCheckIn, error) {
	checkIn, err := s.checkIns.Create(ctx, repository.CreateProtocolCheckInInput{
		ProtocolID: input.ProtocolID,
		UserID:     input.UserID,
		Notes:      input.Notes,
	})
	return checkIn, mapErr(err)
}

func (s *PostgresStore) ListProtocolCheckIns(ctx context.Context, protocolID int64) ([]models.ProtocolCheckIn, error) {
	checkIns, err := s.checkIns.ListByProtocolID(ctx, protocolID)
	return checkIns, mapErr(err)
}

// --- AchievementStore ---

func (s *PostgresStore) ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error) {
	achievements, err := s.achievements.ListByUserID(ctx, userID)
	return achievements, mapErr(err)
}

func (s *PostgresStore) CreateAchievement(ctx context.Context, input CreateAchievementInput) (*models.Achievement, error) {
	achievement, err := s.achievements.Create(ctx, repository.CreateAchievementInput{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Points:      input.Points,
	})
	return achievement, mapErr(err)
}

// --- ForumStore ---

func (s *PostgresStore) ListForumPosts(ctx context.Context, filter ForumPostFilter) ([]models.ForumPost, int, error) {
	posts, total, err := s.forumPosts.List(ctx, repository.ForumPostFilter{
		Category: filter.Category,
		Offset:   filter.Offset,
		Limit:    filter.Limit,
	})
	return posts, total, mapErr(err)
}

func (s *PostgresStore) GetForumPost(ctx context.Context, id int64) (*models.ForumPost, error) {
	post, err := s.forumPosts.GetByID(ctx, id)
	return post, mapErr(err)
}

func (s *PostgresStore) CreateForumPost(ctx context.Context, input CreateForumPostInput) (*models.ForumPost, error) {
	post, err := s.forumPosts.Create(ctx, repository.CreateForumPostInput{
		UserID:   input.UserID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	})
	return post, mapErr(err)
}

func (s *PostgresStore) ListForumComments(ctx context.Context, postID int64) ([]models.ForumComment, error) {
	comments, err := s.forumComments.ListByPostID(ctx, postID)
	return comments, mapErr(err)
}

func (s *PostgresStore) CreateForumComment(
	ctx context.Context,
	input CreateForumCommentInput,
) (*models.ForumComment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txComments := repository.NewForumCommentRepository(tx)
	txPosts := repository.NewForumPostRepository(tx)

	if err := txPosts.IncrementCommentCount(ctx, input.PostID); err != nil {
		return nil, mapErr(err)
	}

	comment, err := txComments.Create(ctx, repository.CreateForumCommentInput{
		PostID:  input.PostID,
		UserID:  input.UserID,
		Content: input.Content,
	})
	if err != nil {
		return nil, mapErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return comment, nil
}

// --- Compile-time assertion ---
var _ Store = (*PostgresStore)(nil)
