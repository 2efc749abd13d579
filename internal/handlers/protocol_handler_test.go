package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/danivc/BioHackerBack/internal/services"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type stubProtocolService struct {
	createResult   *models.Protocol
	createErr      error
	listResult     []models.Protocol
	listErr        error
	getResult      *models.Protocol
	getErr         error
	updateResult   *models.Protocol
	updateErr      error
	deleteErr      error
	checkInResult  *models.ProtocolCheckIn
	checkInErr     error
	checkInsResult []models.ProtocolCheckIn
	checkInsErr    error
	lastCheckIn    services.ProtocolCheckInInput
	lastUpdate     storage.UpdateProtocolInput
}

func (s *stubProtocolService) CreateProtocol(_ context.Context, _ services.CreateProtocolInput) (*models.Protocol, error) {
	return s.createResult, s.createErr
}

func (s *stubProtocolService) ListProtocols(_ context.Context, _ int64) ([]models.Protocol, error) {
	return s.listResult, s.listErr
}

func (s *stubProtocolService) ListActiveProtocols(_ context.Context, _ int64) ([]models.Protocol, error) {
	return s.listResult, s.listErr
}

func (s *stubProtocolService) GetProtocol(_ context.Context, _ int64) (*models.Protocol, error) {
	return s.getResult, s.getErr
}

func (s *stubProtocolService) UpdateProtocol(_ context.Context, _ int64, input storage.UpdateProtocolInput) (*models.Protocol, error) {
	s.lastUpdate = input
	return s.updateResult, s.updateErr
}

func (s *stubProtocolService) DeleteProtocol(_ context.Context, _ int64) error {
	return s.deleteErr
}

func (s *stubProtocolService) CheckIn(_ context.Context, input services.ProtocolCheckInInput) (*models.ProtocolCheckIn, error) {
	s.lastCheckIn = input
	return s.checkInResult, s.checkInErr
}

func (s *stubProtocolService) ListCheckIns(_ context.Context, _ int64) ([]models.ProtocolCheckIn, error) {
	return s.checkInsResult, s.checkInsErr
}

func newProtocolApp(service protocolService) *fiber.App {
	handler := &ProtocolHandler{service: service}
	app := fiber.New()
	app.Post("/api/protocols", handler.CreateProtocol)
	app.Get("/api/protocols/:id", handler.GetProtocol)
	app.Patch("/api/protocols/:id", handler.UpdateProtocol)
	app.Delete("/api/protocols/:id", handler.DeleteProtocol)
	app.Post("/api/protocol-check-ins", handler.CheckIn)
	return app
}

func TestCreateProtocolInvalidInput(t *testing.T) {
	app := newProtocolApp(&stubProtocolService{createErr: services.ErrInvalidInput})

	req := httptest.NewRequest(http.MethodPost, "/api/protocols", strings.NewReader(`{"user_id": 1, "name": "", "duration": 0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetProtocolNotFound(t *testing.T) {
	app := newProtocolApp(&stubProtocolService{getErr: services.ErrProtocolNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/protocols/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestProtocolCheckInRoutesIDs(t *testing.T) {
	service := &stubProtocolService{checkInResult: &models.ProtocolCheckIn{ID: 9, ProtocolID: 3, UserID: 1}}
	app := newProtocolApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/protocol-check-ins", strings.NewReader(`{"protocol_id": 3, "user_id": 1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCheckIn.ProtocolID != 3 || service.lastCheckIn.UserID != 1 {
		t.Fatalf("expected protocol 3 / user 1, got %+v", service.lastCheckIn)
	}
}

func TestProtocolCheckInRequiresIDs(t *testing.T) {
	app := newProtocolApp(&stubProtocolService{})

	for _, body := range []string{`{}`, `{"protocol_id": 3}`, `{"user_id": 1}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/protocol-check-ins", strings.NewReader(body))
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

func TestDeleteProtocolStatusCodes(t *testing.T) {
	app := newProtocolApp(&stubProtocolService{})
	req := httptest.NewRequest(http.MethodDelete, "/api/protocols/3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	app = newProtocolApp(&stubProtocolService{deleteErr: services.ErrProtocolNotFound})
	req = httptest.NewRequest(http.MethodDelete, "/api/protocols/42", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
