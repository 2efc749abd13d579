package repository

import (
	"context"

	"github.com/danivc/BioHackerBack/internal/models"
)

type CreateAchievementInput struct {
	UserID      int64
	Name        string
	Description *string
	Points      int
}

type AchievementRepository struct {
	db DBTX
}

func NewAchievementRepository(db DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Create(
	ctx context.Context,
	input CreateAchievementInput,
) (*models.Achievement, error) {
	query := `
		INSERT INTO achievements (user_id, name, description, points)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, description, points, completed_at
	`
	var achievement models.Achievement
	err := r.db.QueryRow(ctx, query, input.UserID, input.Name, input.Description, input.Points).Scan(
		&achievement.ID,
		&achievement.UserID,
		&achievement.Name,
		&achievement.Description,
		&achievement.Points,
		&achievement.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *AchievementRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Achievement, error) {
	query := `
		SELECT id, user_id, name, description, points, completed_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]models.Achievement, 0)
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Name,
			&a.Description,
			&a.Points,
			&a.CompletedAt,
		); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return achievements, nil
}
