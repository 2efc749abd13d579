package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateProtocolInput struct {
	UserID      int64
	Name        string
	Description *string
	Duration    int
}

// UpdateProtocolInput carries partial updates; nil fields are left untouched.
type UpdateProtocolInput struct {
	Name        *string
	Description *string
	Duration    *int
	CurrentDay  *int
	IsCompleted *bool
	IsActive    *bool
}

type ProtocolRepository struct {
	db DBTX
}

func NewProtocolRepository(db DBTX) *ProtocolRepository {
	return &ProtocolRepository{db: db}
}

const protocolColumns = `id, user_id, name, description, duration, current_day, is_completed, is_active, created_at`

func scanProtocol(row pgx.Row) (*models.Protocol, error) {
	var p models.Protocol
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Duration,
		&p.CurrentDay,
		&p.IsCompleted,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProtocolRepository) Create(ctx context.Context, input CreateProtocolInput) (*models.Protocol, error) {
	query := `
		INSERT INTO protocols (user_id, name, description, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + protocolColumns + `
	`
	return scanProtocol(r.db.QueryRow(ctx, query, input.UserID, input.Name, input.Description, input.Duration))
}

func (r *ProtocolRepository) GetByID(ctx context.Context, id int64) (*models.Protocol, error) {
	query := `SELECT ` + protocolColumns + ` FROM protocols WHERE id = $1`
	return scanProtocol(r.db.QueryRow(ctx, query, id))
}

func (r *ProtocolRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Protocol, error) {
	query := `
		SELECT ` + protocolColumns + `
		FROM protocols
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, userID)
}

func (r *ProtocolRepository) ListActiveByUserID(ctx context.Context, userID int64) ([]models.Protocol, error) {
	query := `
		SELECT ` + protocolColumns + `
		FROM protocols
		WHERE user_id = $1 AND is_active AND NOT is_completed
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, userID)
}

func (r *ProtocolRepository) Update(ctx context.Context, id int64, input UpdateProtocolInput) (*models.Protocol, error) {
	setParts := []string{}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Duration != nil {
		addSet("duration", *input.Duration)
	}
	if input.CurrentDay != nil {
		addSet("current_day", *input.CurrentDay)
	}
	if input.IsCompleted != nil {
		addSet("is_completed", *input.IsCompleted)
	}
	if input.IsActive != nil {
		addSet("is_active", *input.IsActive)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE protocols
		SET %s
		WHERE id = $1
		RETURNING `+protocolColumns+`
	`, strings.Join(setParts, ", "))

	return scanProtocol(r.db.QueryRow(ctx, query, args...))
}

func (r *ProtocolRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM protocols WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProtocolRepository) list(ctx context.Context, query string, args ...any) ([]models.Protocol, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	protocols := make([]models.Protocol, 0)
	for rows.Next() {
		var p models.Protocol
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Description,
			&p.Duration,
			&p.CurrentDay,
			&p.IsCompleted,
			&p.IsActive,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		protocols = append(protocols, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return protocols, nil
}
