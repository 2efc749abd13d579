package repository

import (
	"context"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CreateUserInput struct {
	Username     string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Email        *string
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password, first_name, last_name, email, biohack_score, current_streak, last_check_in, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.BiohackScore,
		&user.CurrentStreak,
		&user.LastCheckIn,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	query := `
		INSERT INTO users (username, password, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `
	`
	return scanUser(r.db.QueryRow(
		ctx,
		query,
		input.Username,
		input.PasswordHash,
		input.FirstName,
		input.LastName,
		input.Email,
	))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) UpdateEngagement(
	ctx context.Context,
	id int64,
	score int,
	streak int,
	lastCheckIn *time.Time,
) (*models.User, error) {
	query := `
		UPDATE users
		SET biohack_score = $2, current_streak = $3, last_check_in = $4
		WHERE id = $1
		RETURNING ` + userColumns + `
	`
	return scanUser(r.db.QueryRow(ctx, query, id, score, streak, lastCheckIn))
}
