package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"go.uber.org/zap"
)

// MemStore keeps everything in process memory. It backs the demo/static
// deployment mode and the contract tests; ids are monotonic per table.
type MemStore struct {
	mu sync.RWMutex

	users           map[int64]*models.User
	biometrics      map[int64]*models.Biometric
	protocols       map[int64]*models.Protocol
	protocolCheckIn map[int64]*models.ProtocolCheckIn
	achievements    map[int64]*models.Achievement
	forumPosts      map[int64]*models.ForumPost
	forumComments   map[int64]*models.ForumComment

	userID         int64
	biometricID    int64
	protocolID     int64
	checkInID      int64
	achievementID  int64
	forumPostID    int64
	forumCommentID int64

	logger *zap.SugaredLogger
}

func NewMemStore(logger *zap.SugaredLogger) *MemStore {
	return &MemStore{
		users:           make(map[int64]*models.User),
		biometrics:      make(map[int64]*models.Biometric),
		protocols:       make(map[int64]*models.Protocol),
		protocolCheckIn: make(map[int64]*models.ProtocolCheckIn),
		achievements:    make(map[int64]*models.Achievement),
		forumPosts:      make(map[int64]*models.ForumPost),
		forumComments:   make(map[int64]*models.ForumComment),
		logger:          logger,
	}
}

func (s *MemStore) Close() {}

// userExistsLocked mirrors the user_id foreign keys of the SQL schema so
// both backends reject creates that reference a missing user.
func (s *MemStore) userExistsLocked(id int64) bool {
	_, ok := s.users[id]
	return ok
}

// --- UserStore ---

func (s *MemStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == input.Username {
			return nil, ErrDuplicate
		}
	}

	s.userID++
	user := &models.User{
		ID:            s.userID,
		Username:      input.Username,
		Password:      input.PasswordHash,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		BiohackScore:  50,
		CurrentStreak: 0,
		CreatedAt:     time.Now(),
	}
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *MemStore) UpdateUserEngagement(
	ctx context.Context,
	id int64,
	score, streak int,
	lastCheckIn *time.Time,
) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.BiohackScore = score
	user.CurrentStreak = streak
	user.LastCheckIn = lastCheckIn

	copied := *user
	return &copied, nil
}

// --- BiometricStore ---

func (s *MemStore) CreateBiometric(ctx context.Context, input CreateBiometricInput) (*models.Biometric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userExistsLocked(input.UserID) {
		return nil, ErrNotFound
	}

	s.biometricID++
	biometric := &models.Biometric{
		ID:           s.biometricID,
		UserID:       input.UserID,
		Date:         time.Now(),
		SleepQuality: input.SleepQuality,
		EnergyLevel:  input.EnergyLevel,
		StressLevel:  input.StressLevel,
		FocusLevel:   input.FocusLevel,
		MoodLevel:    input.MoodLevel,
		Notes:        input.Notes,
	}
	s.biometrics[biometric.ID] = biometric

	copied := *biometric
	return &copied, nil
}

func (s *MemStore) ListBiometrics(ctx context.Context, userID int64) ([]models.Biometric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	biometrics := make([]models.Biometric, 0)
	for _, b := range s.biometrics {
		if b.UserID == userID {
			biometrics = append(biometrics, *b)
		}
	}
	sort.Slice(biometrics, func(i, j int) bool {
		if !biometrics[i].Date.Equal(biometrics[j].Date) {
			return biometrics[i].Date.After(biometrics[j].Date)
		}
		return biometrics[i].ID > biometrics[j].ID
	})
	return biometrics, nil
}

func (s *MemStore) RecentBiometrics(ctx context.Context, userID int64, days int) ([]models.Biometric, error) {
	if days <= 0 {
		return []models.Biometric{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	biometrics := make([]models.Biometric, 0)
	for _, b := range s.biometrics {
		if b.UserID == userID && !b.Date.Before(cutoff) {
			biometrics = append(biometrics, *b)
		}
	}
	sort.Slice(biometrics, func(i, j int) bool {
		if !biometrics[i].Date.Equal(biometrics[j].Date) {
			return biometrics[i].Date.Before(biometrics[j].Date)
		}
		return biometrics[i].ID < biometrics[j].ID
	})
	return biometrics, nil
}

// --- ProtocolStore ---

func (s *MemStore) ListProtocols(ctx context.Context, userID int64) ([]models.Protocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProtocolsLocked(userID, false), nil
}

func (s *MemStore) ListActiveProtocols(ctx context.Context, userID int64) ([]models.Protocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProtocolsLocked(userID, true), nil
}

func (s *MemStore) listProtocolsLocked(userID int64, activeOnly bool) []models.Protocol {
	protocols := make([]models.Protocol, 0)
	for _, p := range s.protocols {
		if p.UserID != userID {
			continue
		}
		if activeOnly && (!p.IsActive || p.IsCompleted) {
			continue
		}
		protocols = append(protocols, *p)
	}
	sort.Slice(protocols, func(i, j int) bool {
		if !protocols[i].CreatedAt.Equal(protocols[j].CreatedAt) {
			return protocols[i].CreatedAt.After(protocols[j].CreatedAt)
		}
		return protocols[i].ID > protocols[j].ID
	})
	return protocols
}

func (s *MemStore) GetProtocol(ctx context.Context, id int64) (*models.Protocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	protocol, ok := s.protocols[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *protocol
	return &copied, nil
}

func (s *MemStore) CreateProtocol(ctx context.Context, input CreateProtocolInput) (*models.Protocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userExistsLocked(input.UserID) {
		return nil, ErrNotFound
	}

	s.protocolID++
	protocol := &models.Protocol{
		ID:          s.protocolID,
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		CurrentDay:  1,
		IsCompleted: false,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	s.protocols[protocol.ID] = protocol

	copied := *protocol
	return &copied, nil
}

func (s *MemStore) UpdateProtocol(ctx context.Context, id int64, input UpdateProtocolInput) (*models.Protocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	protocol, ok := s.protocols[id]
	if !ok {
		return nil, ErrNotFound
	}
	if input.Name != nil {
		protocol.Name = *input.Name
	}
	if input.Description != nil {
		protocol.Description = input.Description
	}
	if input.Duration != nil {
		protocol.Duration = *input.Duration
	}
	if input.CurrentDay != nil {
		protocol.CurrentDay = *input.CurrentDay
	}
	if input.IsCompleted != nil {
		protocol.IsCompleted = *input.IsCompleted
	}
	if input.IsActive != nil {
		protocol.IsActive = *input.IsActive
	}

	copied := *protocol
	return &copied, nil
}

func (s *MemStore) DeleteProtocol(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.protocols[id]; !ok {
		return ErrNotFound
	}
	delete(s.protocols, id)
	return nil
}

// --- ProtocolCheckInStore ---

func (s *MemStore) CreateProtocolCheckIn(
	ctx context.Context,
	input CreateProtocolCheckInInput,
) (*models.ProtocolCheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.protocols[input.ProtocolID]; !ok {
		return nil, ErrNotFound
	}
	if !s.userExistsLocked(input.UserID) {
		return nil, ErrNotFound
	}

	s.checkInID++
	checkIn := &models.ProtocolCheckIn{
		ID:          s.checkInID,
		ProtocolID:  input.ProtocolID,
		UserID:      input.UserID,
		CheckInDate: time.Now(),
		Notes:       input.Notes,
	}
	s.protocolCheckIn[checkIn.ID] = checkIn

	copied := *checkIn
	return &copied, nil
}

func (s *MemStore) ListProtocolCheckIns(ctx context.Context, protocolID int64) ([]models.ProtocolCheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checkIns := make([]models.ProtocolCheckIn, 0)
	for _, c := range s.protocolCheckIn {
		if c.ProtocolID == protocolID {
			checkIns = append(checkIns, *c)
		}
	}
	sort.Slice(checkIns, func(i, j int) bool {
		if !checkIns[i].CheckInDate.Equal(checkIns[j].CheckInDate) {
			return checkIns[i].CheckInDate.After(checkIns[j].CheckInDate)
		}
		return checkIns[i].ID > checkIns[j].ID
	})
	return checkIns, nil
}

// --- AchievementStore ---

func (s *MemStore) ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	achievements := make([]models.Achievement, 0)
	for _, a := range s.achievements {
		if a.UserID == userID {
			achievements = append(achievements, *a)
		}
	}
	sort.Slice(achievements, func(i, j int) bool {
		if !achievements[i].CompletedAt.Equal(achievements[j].CompletedAt) {
			return achievements[i].CompletedAt.After(achievements[j].CompletedAt)
		}
		return achievements[i].ID > achievements[j].ID
	})
	return achievements, nil
}

func (s *MemStore) CreateAchievement(ctx context.Context, input CreateAchievementInput) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userExistsLocked(input.UserID) {
		return nil, ErrNotFound
	}

	s.achievementID++
	achievement := &models.Achievement{
		ID:          s.achievementID,
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Points:      input.Points,
		CompletedAt: time.Now(),
	}
	s.achievements[achievement.ID] = achievement

	copied := *achievement
	return &copied, nil
}

// --- ForumStore ---

func (s *MemStore) ListForumPosts(ctx context.Context, filter ForumPostFilter) ([]models.ForumPost, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category := strings.TrimSpace(filter.Category)
	posts := make([]models.ForumPost, 0)
	for _, p := range s.forumPosts {
		if category != "" && p.Category != category {
			continue
		}
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})

	total := len(posts)
	if filter.Offset >= total {
		return []models.ForumPost{}, total, nil
	}
	posts = posts[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(posts) {
		posts = posts[:filter.Limit]
	}
	return posts, total, nil
}

func (s *MemStore) GetForumPost(ctx context.Context, id int64) (*models.ForumPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.forumPosts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (s *MemStore) CreateForumPost(ctx context.Context, input CreateForumPostInput) (*models.ForumPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userExistsLocked(input.UserID) {
		return nil, ErrNotFound
	}

	s.forumPostID++
	post := &models.ForumPost{
		ID:           s.forumPostID,
		UserID:       input.UserID,
		Title:        input.Title,
		Content:      input.Content,
		Category:     input.Category,
		CommentCount: 0,
		CreatedAt:    time.Now(),
	}
	s.forumPosts[post.ID] = post

	copied := *post
	return &copied, nil
}

func (s *MemStore) ListForumComments(ctx context.Context, postID int64) ([]models.ForumComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]models.ForumComment, 0)
	for _, c := range s.forumComments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (s *MemStore) CreateForumComment(
	ctx context.Context,
	input CreateForumCommentInput,
) (*models.ForumComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.forumPosts[input.PostID]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.userExistsLocked(input.UserID) {
		return nil, ErrNotFound
	}

	s.forumCommentID++
	comment := &models.ForumComment{
		ID:        s.forumCommentID,
		PostID:    input.PostID,
		UserID:    input.UserID,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}
	s.forumComments[comment.ID] = comment
	post.CommentCount++

	copied := *comment
	return &copied, nil
}

// --- Compile-time assertion ---
var _ Store = (*MemStore)(nil)
