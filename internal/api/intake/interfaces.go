package intake

import (
	"context"

	"github.com/chhatrapati/linkup/internal/entity"
)

type IntakeUsecase interface {
	StartIntake(ctx context.Context, userID string) (*entity.IntakeTurn, error)
	SubmitResponse(ctx context.Context, userID, response string) (*entity.IntakeTurn, error)
	CompletedAnswers(ctx context.Context, userID string) (map[string]string, error)
	Fields() []string
}
