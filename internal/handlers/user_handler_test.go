package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/danivc/BioHackerBack/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type stubUserStore struct {
	getResult    *models.User
	getErr       error
	createResult *models.User
	createErr    error
	lastInput    storage.CreateUserInput
}

func (s *stubUserStore) GetUser(_ context.Context, _ int64) (*models.User, error) {
	return s.getResult, s.getErr
}

func (s *stubUserStore) CreateUser(_ context.Context, input storage.CreateUserInput) (*models.User, error) {
	s.lastInput = input
	return s.createResult, s.createErr
}

type stubEngagementReader struct {
	state *models.EngagementState
	err   error
}

func (s *stubEngagementReader) CurrentState(_ context.Context, _ int64) (*models.EngagementState, error) {
	return s.state, s.err
}

func newUserApp(store userStore, engagement engagementReader) *fiber.App {
	handler := &UserHandler{store: store, engagement: engagement}
	app := fiber.New()
	app.Post("/api/users", handler.CreateUser)
	app.Get("/api/users/:id", handler.GetUser)
	app.Get("/api/users/:id/engagement", handler.GetEngagement)
	return app
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := &stubUserStore{createResult: &models.User{ID: 1, Username: "testuser"}}
	app := newUserApp(store, &stubEngagementReader{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{
		"username": "testuser",
		"password": "password123"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if store.lastInput.PasswordHash == "password123" {
		t.Fatal("expected password to be hashed before reaching storage")
	}
	if !utils.CheckPassword("password123", store.lastInput.PasswordHash) {
		t.Fatal("expected stored hash to verify against the original password")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	store := &stubUserStore{createErr: storage.ErrDuplicate}
	app := newUserApp(store, &stubEngagementReader{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{
		"username": "testuser",
		"password": "password123"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	app := newUserApp(&stubUserStore{}, &stubEngagementReader{})

	for _, body := range []string{
		`{"password": "password123"}`,
		`{"username": "testuser"}`,
		`{"username": "   ", "password": "password123"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, resp.StatusCode)
		}
	}
}

func TestGetUserOmitsPassword(t *testing.T) {
	store := &stubUserStore{getResult: &models.User{ID: 1, Username: "testuser", Password: "hash"}}
	app := newUserApp(store, &stubEngagementReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["user"]["password"]; ok {
		t.Fatal("expected password to be omitted from the response")
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := &stubUserStore{getErr: storage.ErrNotFound}
	app := newUserApp(store, &stubEngagementReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetEngagement(t *testing.T) {
	now := time.Now()
	engagement := &stubEngagementReader{state: &models.EngagementState{
		BiohackScore:  78,
		CurrentStreak: 12,
		LastCheckIn:   &now,
	}}
	app := newUserApp(&stubUserStore{}, engagement)

	req := httptest.NewRequest(http.MethodGet, "/api/users/1/engagement", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Engagement models.EngagementState `json:"engagement"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Engagement.BiohackScore != 78 || body.Engagement.CurrentStreak != 12 {
		t.Fatalf("unexpected engagement: %+v", body.Engagement)
	}
}
