package services

import (
	"context"
	"errors"
	"strings"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/storage"
)

var ErrPostNotFound = errors.New("post not found")

// defaultListLimit guards direct callers; the HTTP layer applies its own
// defaults before reaching here.
const defaultListLimit = 10

type forumStore interface {
	ListForumPosts(ctx context.Context, filter storage.ForumPostFilter) ([]models.ForumPost, int, error)
	GetForumPost(ctx context.Context, id int64) (*models.ForumPost, error)
	CreateForumPost(ctx context.Context, input storage.CreateForumPostInput) (*models.ForumPost, error)
	ListForumComments(ctx context.Context, postID int64) ([]models.ForumComment, error)
	CreateForumComment(ctx context.Context, input storage.CreateForumCommentInput) (*models.ForumComment, error)
}

type ForumService struct {
	store forumStore
}

func NewForumService(store storage.Store) *ForumService {
	return &ForumService{store: store}
}

func (s *ForumService) ListPosts(
	ctx context.Context,
	category string,
	page, limit int,
) ([]models.ForumPost, models.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}

	posts, total, err := s.store.ListForumPosts(ctx, storage.ForumPostFilter{
		Category: category,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return posts, models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *ForumService) GetPost(ctx context.Context, id int64) (*models.ForumPost, error) {
	post, err := s.store.GetForumPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

type CreatePostInput struct {
	UserID   int64
	Title    string
	Content  string
	Category string
}

func (s *ForumService) CreatePost(ctx context.Context, input CreatePostInput) (*models.ForumPost, error) {
	if input.UserID <= 0 ||
		strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Content) == "" ||
		strings.TrimSpace(input.Category) == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.store.CreateForumPost(ctx, storage.CreateForumPostInput{
		UserID:   input.UserID,
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *ForumService) ListComments(ctx context.Context, postID int64) ([]models.ForumComment, error) {
	return s.store.ListForumComments(ctx, postID)
}

type CreateCommentInput struct {
	PostID  int64
	UserID  int64
	Content string
}

func (s *ForumService) CreateComment(ctx context.Context, input CreateCommentInput) (*models.ForumComment, error) {
	if input.PostID <= 0 || input.UserID <= 0 || strings.TrimSpace(input.Content) == "" {
		return nil, ErrInvalidInput
	}

	comment, err := s.store.CreateForumComment(ctx, storage.CreateForumCommentInput{
		PostID:  input.PostID,
		UserID:  input.UserID,
		Content: input.Content,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return comment, nil
}
