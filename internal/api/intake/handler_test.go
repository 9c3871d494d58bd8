package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chhatrapati/linkup/internal/entity"
	"github.com/chhatrapati/linkup/internal/pkg/formatter"
	"github.com/chhatrapati/linkup/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type stubUsecase struct {
	start            func(userID string) (*entity.IntakeTurn, error)
	submit           func(userID, response string) (*entity.IntakeTurn, error)
	completedAnswers func(userID string) (map[string]string, error)
}

func (s *stubUsecase) StartIntake(_ context.Context, userID string) (*entity.IntakeTurn, error) {
	return s.start(userID)
}

func (s *stubUsecase) SubmitResponse(_ context.Context, userID, response string) (*entity.IntakeTurn, error) {
	return s.submit(userID, response)
}

func (s *stubUsecase) CompletedAnswers(_ context.Context, userID string) (map[string]string, error) {
	return s.completedAnswers(userID)
}

func (s *stubUsecase) Fields() []string {
	return []string{"current_role", "collaboration_needs", "domain", "region"}
}

func setupRouter(uc IntakeUsecase) *chi.Mux {
	handler := NewHandler(uc, validator.NewValidator(), formatter.NewFactory())
	r := chi.NewRouter()
	RegisterRoutes(r, handler)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestStartIntakeReturnsQuestion(t *testing.T) {
	uc := &stubUsecase{
		start: func(userID string) (*entity.IntakeTurn, error) {
			if userID != "u1" {
				t.Errorf("unexpected userID %q", userID)
			}
			return &entity.IntakeTurn{
				Accepted: true,
				Message:  "Welcome!",
				Question: "What is your current role?",
			}, nil
		},
	}
	r := setupRouter(uc)

	resp := postJSON(t, r, "/start", map[string]string{"userId": "u1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body entity.StartIntakeDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Question != "What is your current role?" {
		t.Fatalf("unexpected question: %q", body.Question)
	}
}

func TestStartIntakeMissingUserID(t *testing.T) {
	r := setupRouter(&stubUsecase{
		start: func(string) (*entity.IntakeTurn, error) {
			t.Fatal("usecase must not be reached")
			return nil, nil
		},
	})

	resp := postJSON(t, r, "/start", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestStartIntakeInvalidBody(t *testing.T) {
	r := setupRouter(&stubUsecase{
		start: func(string) (*entity.IntakeTurn, error) {
			t.Fatal("usecase must not be reached")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/start", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitResponseUnknownSession(t *testing.T) {
	uc := &stubUsecase{
		submit: func(string, string) (*entity.IntakeTurn, error) {
			return nil, fmt.Errorf("get session: %w", entity.ErrSessionNotFound)
		},
	}
	r := setupRouter(uc)

	resp := postJSON(t, r, "/respond", map[string]string{"userId": "ghost", "response": "hi"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "start again") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestSubmitResponseMissingFields(t *testing.T) {
	r := setupRouter(&stubUsecase{
		submit: func(string, string) (*entity.IntakeTurn, error) {
			t.Fatal("usecase must not be reached")
			return nil, nil
		},
	})

	resp := postJSON(t, r, "/respond", map[string]string{"userId": "u1"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitResponseRejectionPayload(t *testing.T) {
	uc := &stubUsecase{
		submit: func(string, string) (*entity.IntakeTurn, error) {
			return &entity.IntakeTurn{
				Accepted: false,
				Message:  "Please answer properly.",
				Question: "What is your current role?",
			}, nil
		},
	}
	r := setupRouter(uc)

	resp := postJSON(t, r, "/respond", map[string]string{"userId": "u1", "response": "asdf"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body entity.IntakeTurnDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.IsValidResponse {
		t.Fatal("expected isValidResponse=false")
	}
	if body.Message != "Please answer properly." || body.Question != "What is your current role?" {
		t.Fatalf("unexpected payload: %+v", body)
	}
	if body.Data != nil {
		t.Fatalf("rejection must not carry data: %+v", body)
	}
}

func TestSubmitResponseCompletionPayload(t *testing.T) {
	answers := map[string]string{
		"current_role":        "engineer",
		"collaboration_needs": "investor",
		"domain":              "healthcare",
		"region":              "Europe",
	}
	uc := &stubUsecase{
		submit: func(string, string) (*entity.IntakeTurn, error) {
			return &entity.IntakeTurn{
				Accepted:  true,
				Completed: true,
				Message:   "All questions answered. Thank you for your responses!",
				Answers:   answers,
			}, nil
		},
	}
	r := setupRouter(uc)

	resp := postJSON(t, r, "/respond", map[string]string{"userId": "u1", "response": "Europe"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body entity.IntakeTurnDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.IsValidResponse || len(body.Data) != 4 {
		t.Fatalf("unexpected payload: %+v", body)
	}
	if body.Data["region"] != "Europe" {
		t.Fatalf("unexpected data: %v", body.Data)
	}
}

func TestSubmitResponseGatewayFailure(t *testing.T) {
	uc := &stubUsecase{
		submit: func(string, string) (*entity.IntakeTurn, error) {
			return nil, fmt.Errorf("validate answer: %w", entity.ErrModelGateway)
		},
	}
	r := setupRouter(uc)

	resp := postJSON(t, r, "/respond", map[string]string{"userId": "u1", "response": "hi"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	// The body stays generic; detail belongs to the logs.
	if strings.Contains(resp.Body.String(), "gateway") {
		t.Fatalf("internal detail leaked: %s", resp.Body.String())
	}
}

func TestExportResultMarkdown(t *testing.T) {
	uc := &stubUsecase{
		completedAnswers: func(userID string) (map[string]string, error) {
			return map[string]string{
				"current_role":        "engineer",
				"collaboration_needs": "investor",
				"domain":              "healthcare",
				"region":              "Europe",
			}, nil
		},
	}
	r := setupRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/u1/result?format=md", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Collaboration Intake Summary") ||
		!strings.Contains(body, "Current Role: engineer") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestExportResultIncomplete(t *testing.T) {
	uc := &stubUsecase{
		completedAnswers: func(string) (map[string]string, error) {
			return nil, entity.ErrIntakeIncomplete
		},
	}
	r := setupRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/u1/result", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestExportResultUnsupportedFormat(t *testing.T) {
	r := setupRouter(&stubUsecase{
		completedAnswers: func(string) (map[string]string, error) {
			t.Fatal("usecase must not be reached")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions/u1/result?format=xlsx", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
