package storage

import (
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/pkg/utils"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// SeedDemoData loads the demo user and sample content so the dashboard,
// protocol tracker, achievements view and forum render on a fresh install.
// Idempotent: a second call is a no-op.
func (s *MemStore) SeedDemoData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return
	}

	now := time.Now()

	passwordHash, err := utils.HashPassword("password123")
	if err != nil {
		passwordHash = ""
	}

	s.userID++
	demo := &models.User{
		ID:            s.userID,
		Username:      "johndoe",
		Password:      passwordHash,
		FirstName:     strPtr("John"),
		LastName:      strPtr("Doe"),
		Email:         strPtr("john@example.com"),
		BiohackScore:  78,
		CurrentStreak: 12,
		LastCheckIn:   &now,
		CreatedAt:     now,
	}
	s.users[demo.ID] = demo

	sampleProtocols := []models.Protocol{
		{Name: "Morning Cold Exposure", Description: strPtr("5-minute cold shower every morning to boost immunity and energy"), Duration: 30, CurrentDay: 8},
		{Name: "Meditation & Breathwork", Description: strPtr("10-minute meditation and breathwork routine"), Duration: 14, CurrentDay: 12},
		{Name: "Nootropic Stack", Description: strPtr("Daily nootropic stack for cognitive enhancement"), Duration: 21, CurrentDay: 5},
		{Name: "Intermittent Fasting", Description: strPtr("16:8 intermittent fasting protocol"), Duration: 30, CurrentDay: 3},
	}
	for _, p := range sampleProtocols {
		s.protocolID++
		protocol := p
		protocol.ID = s.protocolID
		protocol.UserID = demo.ID
		protocol.IsActive = true
		protocol.CreatedAt = now
		s.protocols[protocol.ID] = &protocol
	}

	// One sample entry per day for the trailing week, steady mid-range values.
	for i := 6; i >= 0; i-- {
		s.biometricID++
		s.biometrics[s.biometricID] = &models.Biometric{
			ID:           s.biometricID,
			UserID:       demo.ID,
			Date:         now.AddDate(0, 0, -i),
			SleepQuality: intPtr(80),
			EnergyLevel:  intPtr(72),
			StressLevel:  intPtr(45),
			FocusLevel:   intPtr(70),
			MoodLevel:    intPtr(75),
		}
	}

	sampleAchievements := []models.Achievement{
		{Name: "30-Day Streak", Description: strPtr("Completed protocols for 30 days in a row"), Points: 25, CompletedAt: now.AddDate(0, 0, -2)},
		{Name: "Protocol Master", Description: strPtr("Completed 5 protocols successfully"), Points: 40, CompletedAt: now.AddDate(0, 0, -7)},
	}
	for _, a := range sampleAchievements {
		s.achievementID++
		achievement := a
		achievement.ID = s.achievementID
		achievement.UserID = demo.ID
		s.achievements[achievement.ID] = &achievement
	}

	samplePosts := []models.ForumPost{
		{
			Title:        "Anyone tried Lion's Mane + Bacopa stack?",
			Content:      "I've been researching cognitive enhancement supplements and this combo keeps coming up. Has anyone here tried it and what were your results?",
			Category:     "Cognitive Enhancement",
			CommentCount: 24,
			CreatedAt:    now.Add(-2 * time.Hour),
		},
		{
			Title:        "My experience with sleep tracking rings",
			Content:      "I've been using a sleep tracking ring for 3 months now and here's what I've learned...",
			Category:     "Sleep Optimization",
			CommentCount: 18,
			CreatedAt:    now.Add(-5 * time.Hour),
		},
		{
			Title:        "Intermittent fasting results (3 months)",
			Content:      "I've been doing intermittent fasting for the last 3 months and wanted to share my results with the community.",
			Category:     "Nutrition",
			CommentCount: 32,
			CreatedAt:    now.AddDate(0, 0, -1),
		},
	}
	for _, p := range samplePosts {
		s.forumPostID++
		post := p
		post.ID = s.forumPostID
		post.UserID = demo.ID
		s.forumPosts[post.ID] = &post
	}

	if s.logger != nil {
		s.logger.Infof("seeded demo data: user %q with %d protocols, %d biometrics, %d forum posts",
			demo.Username, len(s.protocols), len(s.biometrics), len(s.forumPosts))
	}
}
