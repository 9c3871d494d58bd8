package intake

import (
	"context"
	"fmt"
	"sync"

	"github.com/chhatrapati/linkup/internal/catalog"
	"github.com/chhatrapati/linkup/internal/entity"
	"github.com/chhatrapati/linkup/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	welcomeMessage    = "Welcome! Let's find the right collaboration for you."
	completionMessage = "All questions answered. Thank you for your responses!"
)

// IntakeUsecase implements the intake dialogue: one fixed question sequence
// per user, each answer judged by the model before its fields are merged
// into the session.
type IntakeUsecase struct {
	sessionRepo  repository.SessionRepository
	questionsCat *catalog.Catalog
	llmConnector LLMConnector
	logger       *zap.Logger

	// userLocks serializes turns per user. Concurrent respond calls for the
	// same userId would otherwise race on the session entry (last write
	// wins); different users never contend.
	userLocks sync.Map
}

// NewUsecase creates a new intake use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	questionsCat *catalog.Catalog,
	llmConnector LLMConnector,
	logger *zap.Logger,
) *IntakeUsecase {
	return &IntakeUsecase{
		sessionRepo:  sessionRepo,
		questionsCat: questionsCat,
		llmConnector: llmConnector,
		logger:       logger,
	}
}

// StartIntake creates (or resets) the user's session and returns the first
// question. A repeated start for the same userId overwrites prior state;
// nothing ties sessions to identity beyond the client-supplied id, so a
// reset is the only sane meaning of a second start.
func (uc *IntakeUsecase) StartIntake(ctx context.Context, userID string) (*entity.IntakeTurn, error) {
	unlock := uc.lockUser(userID)
	defer unlock()

	first := uc.questionsCat.First()

	session := entity.Session{
		ID:           uuid.New().String(),
		UserID:       userID,
		Answers:      make(map[string]string),
		PendingField: first.Field,
	}

	created, err := uc.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "intake session started",
		zap.String("session_id", created.ID),
		zap.String("first_field", first.Field),
	)

	return &entity.IntakeTurn{
		Accepted: true,
		Message:  welcomeMessage,
		Question: first.Prompt,
	}, nil
}

// SubmitResponse runs one dialogue turn: validate the answer against the
// pending question, then extract fields and advance or finish. Validation
// always precedes extraction and the two model calls are sequential;
// extraction never runs on a rejected answer.
func (uc *IntakeUsecase) SubmitResponse(ctx context.Context, userID, response string) (*entity.IntakeTurn, error) {
	unlock := uc.lockUser(userID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// An already-complete session answers idempotently, with no model calls.
	if _, remaining := uc.questionsCat.FirstUnanswered(session.Answers); !remaining {
		ctxzap.Info(ctx, "intake already complete", zap.String("session_id", session.ID))
		return uc.completionTurn(session), nil
	}

	question := uc.currentQuestion(session)

	accepted, err := uc.llmConnector.ValidateAnswer(ctx, question, response)
	if err != nil {
		return nil, fmt.Errorf("validate answer: %w", err)
	}

	if !accepted {
		return uc.rejectTurn(ctx, session, question, response)
	}

	return uc.acceptTurn(ctx, session, response)
}

// rejectTurn composes a clarification and leaves the session untouched; the
// user is expected to resubmit for the same pending field. The original
// question text is returned alongside the clarification.
func (uc *IntakeUsecase) rejectTurn(ctx context.Context, session *entity.Session, question, response string) (*entity.IntakeTurn, error) {
	ctxzap.Info(ctx, "answer rejected",
		zap.String("session_id", session.ID),
		zap.String("pending_field", session.PendingField),
	)

	clarification, err := uc.llmConnector.ComposeClarification(ctx, question, response)
	if err != nil {
		return nil, fmt.Errorf("compose clarification: %w", err)
	}

	return &entity.IntakeTurn{
		Accepted: false,
		Message:  clarification,
		Question: question,
	}, nil
}

// acceptTurn extracts fields from the validated answer, merges them, and
// either finishes the intake or asks the next unanswered question.
func (uc *IntakeUsecase) acceptTurn(ctx context.Context, session *entity.Session, response string) (*entity.IntakeTurn, error) {
	extracted, err := uc.llmConnector.ExtractFields(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	merged := uc.mergeAnswers(session, extracted)

	next, remaining := uc.questionsCat.FirstUnanswered(session.Answers)
	if remaining {
		session.PendingField = next.Field
	} else {
		session.PendingField = ""
	}

	if err := uc.sessionRepo.UpdateSession(ctx, *session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "answer accepted",
		zap.String("session_id", session.ID),
		zap.Int("merged_fields", merged),
		zap.Int("answered", len(session.Answers)),
		zap.Int("total", uc.questionsCat.Len()),
	)

	if !remaining {
		return uc.completionTurn(session), nil
	}

	return &entity.IntakeTurn{
		Accepted: true,
		Question: next.Prompt,
	}, nil
}

// mergeAnswers writes extracted values into unanswered catalog fields.
// Unknown keys are ignored and answered fields are never overwritten, so
// the fill is monotonic. Returns the number of fields merged.
func (uc *IntakeUsecase) mergeAnswers(session *entity.Session, extracted map[string]string) int {
	merged := 0
	for field, value := range extracted {
		if !uc.questionsCat.Has(field) {
			continue
		}
		if session.Answers[field] != "" {
			continue
		}
		session.Answers[field] = value
		merged++
	}
	return merged
}

// currentQuestion resolves the prompt the user is answering. The pending
// field is authoritative; if it is somehow stale the earliest unanswered
// field takes over.
func (uc *IntakeUsecase) currentQuestion(session *entity.Session) string {
	if prompt, ok := uc.questionsCat.Prompt(session.PendingField); ok && session.Answers[session.PendingField] == "" {
		return prompt
	}

	question, _ := uc.questionsCat.FirstUnanswered(session.Answers)
	session.PendingField = question.Field
	return question.Prompt
}

func (uc *IntakeUsecase) completionTurn(session *entity.Session) *entity.IntakeTurn {
	return &entity.IntakeTurn{
		Accepted:  true,
		Completed: true,
		Message:   completionMessage,
		Answers:   session.AnswersCopy(),
	}
}

// CompletedAnswers returns the full answer set for an intake that has
// collected every field, for result export.
func (uc *IntakeUsecase) CompletedAnswers(ctx context.Context, userID string) (map[string]string, error) {
	session, err := uc.sessionRepo.GetSessionByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if _, remaining := uc.questionsCat.FirstUnanswered(session.Answers); remaining {
		return nil, entity.ErrIntakeIncomplete
	}

	return session.AnswersCopy(), nil
}

// Fields returns the catalog field order, for rendering exports.
func (uc *IntakeUsecase) Fields() []string {
	return uc.questionsCat.Fields()
}

func (uc *IntakeUsecase) lockUser(userID string) func() {
	muIface, _ := uc.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
