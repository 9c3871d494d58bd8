package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chhatrapati/linkup/internal/entity"
	"github.com/chhatrapati/linkup/internal/pkg/formatter"
	"github.com/chhatrapati/linkup/internal/pkg/logger"
	"github.com/chhatrapati/linkup/internal/pkg/response"
	"github.com/chhatrapati/linkup/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase          IntakeUsecase
	validator        *validator.Validator
	formatterFactory *formatter.Factory
}

func NewHandler(
	usecase IntakeUsecase,
	validator *validator.Validator,
	formatterFactory *formatter.Factory,
) *Handler {
	return &Handler{
		usecase:          usecase,
		validator:        validator,
		formatterFactory: formatterFactory,
	}
}

// StartIntake handles POST /start - create or reset a user's intake session
func (h *Handler) StartIntake(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartIntake")

	var req entity.StartIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStartIntake(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = logger.AddFields(ctx, zap.String("user_id", req.UserID))
	ctxzap.Info(ctx, "starting intake session")

	turn, err := h.usecase.StartIntake(ctx, req.UserID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toStartDTO(turn))
}

// SubmitResponse handles POST /respond - process one answer turn
func (h *Handler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitResponse")

	var req entity.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSubmitResponse(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = logger.AddFields(ctx, zap.String("user_id", req.UserID))
	ctxzap.Info(ctx, "processing response")

	turn, err := h.usecase.SubmitResponse(ctx, req.UserID, req.Response)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toTurnDTO(turn))
}

// ExportResult handles GET /sessions/{user_id}/result - download a
// completed intake in the requested format
func (h *Handler) ExportResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")

	ctx = logger.AddFields(ctx,
		zap.String("user_id", userID),
		zap.String("action", "ExportResult"),
	)

	format, err := h.validator.ValidateResultFormat(r.URL.Query().Get("format"))
	if err != nil {
		ctxzap.Error(ctx, "invalid result format", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	answers, err := h.usecase.CompletedAnswers(ctx, userID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	fmtr, err := h.formatterFactory.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "failed to create formatter", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := fmtr.Format(renderAnswers(h.usecase.Fields(), answers))
	if err != nil {
		ctxzap.Error(ctx, "failed to format result", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format result")
		return
	}

	ctxzap.Info(ctx, "result exported",
		zap.String("format", string(format)),
		zap.Int("size_bytes", len(content)),
	)

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=intake-%s%s", userID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// handleUsecaseError maps domain errors to HTTP statuses. Infrastructure
// failures are logged with detail but reported generically.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		ctxzap.Warn(ctx, "session not found", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Session not found. Please start again.")
	case errors.Is(err, entity.ErrIntakeIncomplete):
		ctxzap.Warn(ctx, "intake not complete", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Intake is not complete yet.")
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		ctxzap.Warn(ctx, "invalid request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		// Gateway and extraction failures land here.
		ctxzap.Error(ctx, "failed to process request", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Something went wrong while processing the response.")
	}
}
