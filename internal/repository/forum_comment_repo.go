package repository

import (
	"context"

	"github.com/danivc/BioHackerBack/internal/models"
)

type CreateForumCommentInput struct {
	PostID  int64
	UserID  int64
	Content string
}

type ForumCommentRepository struct {
	db DBTX
}

func NewForumCommentRepository(db DBTX) *ForumCommentRepository {
	return &ForumCommentRepository{db: db}
}

func (r *ForumCommentRepository) Create(
	ctx context.Context,
	input CreateForumCommentInput,
) (*models.ForumComment, error) {
	query := `
		INSERT INTO forum_comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, user_id, content, created_at
	`
	var comment models.ForumComment
	err := r.db.QueryRow(ctx, query, input.PostID, input.UserID, input.Content).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *ForumCommentRepository) ListByPostID(ctx context.Context, postID int64) ([]models.ForumComment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at
		FROM forum_comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.ForumComment, 0)
	for rows.Next() {
		var comment models.ForumComment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
