package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateForumPostInput struct {
	UserID   int64
	Title    string
	Content  string
	Category string
}

type ForumPostFilter struct {
	Category string
	Offset   int
	Limit    int
}

type ForumPostRepository struct {
	db DBTX
}

func NewForumPostRepository(db DBTX) *ForumPostRepository {
	return &ForumPostRepository{db: db}
}

const forumPostColumns = `id, user_id, title, content, category, comment_count, created_at`

func scanForumPost(row pgx.Row) (*models.ForumPost, error) {
	var post models.ForumPost
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.Category,
		&post.CommentCount,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ForumPostRepository) Create(ctx context.Context, input CreateForumPostInput) (*models.ForumPost, error) {
	query := `
		INSERT INTO forum_posts (user_id, title, content, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + forumPostColumns + `
	`
	return scanForumPost(r.db.QueryRow(ctx, query, input.UserID, input.Title, input.Content, input.Category))
}

func (r *ForumPostRepository) GetByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	query := `SELECT ` + forumPostColumns + ` FROM forum_posts WHERE id = $1`
	return scanForumPost(r.db.QueryRow(ctx, query, id))
}

// List returns one page of posts, newest first, plus the total match count.
func (r *ForumPostRepository) List(ctx context.Context, filter ForumPostFilter) ([]models.ForumPost, int, error) {
	args := []any{}
	whereParts := []string{}

	if category := strings.TrimSpace(filter.Category); category != "" {
		args = append(args, category)
		whereParts = append(whereParts, fmt.Sprintf("category = $%d", len(args)))
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM forum_posts %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT `+forumPostColumns+`
		FROM forum_posts
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := make([]models.ForumPost, 0)
	for rows.Next() {
		var post models.ForumPost
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Title,
			&post.Content,
			&post.Category,
			&post.CommentCount,
			&post.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *ForumPostRepository) IncrementCommentCount(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE forum_posts SET comment_count = comment_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
