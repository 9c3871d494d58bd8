package entity

import "time"

// Session holds one user's intake progress. Answers only ever gain
// entries within a session; a field is never cleared once set.
type Session struct {
	ID           string
	UserID       string
	Answers      map[string]string
	PendingField string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AnswersCopy returns a detached copy of the collected answers so callers
// cannot mutate session state through the returned map.
func (s *Session) AnswersCopy() map[string]string {
	answers := make(map[string]string, len(s.Answers))
	for field, value := range s.Answers {
		answers[field] = value
	}
	return answers
}

// IntakeTurn is the state machine's outcome for a single start or respond
// call, before conversion to the transport DTO.
type IntakeTurn struct {
	Accepted  bool
	Completed bool
	Message   string
	Question  string
	Answers   map[string]string
}

// ResultFormat identifies an export format for a completed intake.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)
