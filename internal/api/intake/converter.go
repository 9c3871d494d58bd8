package intake

import (
	"fmt"
	"strings"

	"github.com/chhatrapati/linkup/internal/entity"
)

// toStartDTO converts a start turn to the /start response body
func toStartDTO(turn *entity.IntakeTurn) *entity.StartIntakeDTO {
	return &entity.StartIntakeDTO{
		Message:  turn.Message,
		Question: turn.Question,
	}
}

// toTurnDTO converts a respond turn to the /respond response body
func toTurnDTO(turn *entity.IntakeTurn) *entity.IntakeTurnDTO {
	return &entity.IntakeTurnDTO{
		IsValidResponse: turn.Accepted,
		Message:         turn.Message,
		Question:        turn.Question,
		Data:            turn.Answers,
	}
}

// renderAnswers lays the collected answers out as plain text in catalog
// order, for the export formatters.
func renderAnswers(fields []string, answers map[string]string) string {
	var b strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&b, "%s: %s\n\n", fieldLabel(field), answers[field])
	}
	return strings.TrimRight(b.String(), "\n")
}

// fieldLabel turns a snake_case field name into a readable label.
func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
