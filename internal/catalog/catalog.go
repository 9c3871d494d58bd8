// Package catalog holds the ordered question list the intake walks through.
// The catalog is immutable after construction; its order defines the default
// ask sequence.
package catalog

import "fmt"

// Question pairs a field identifier with the prompt shown to the user.
type Question struct {
	Field  string
	Prompt string
}

// Catalog is an ordered, read-only set of intake questions.
type Catalog struct {
	questions []Question
	byField   map[string]Question
}

// New builds a catalog from ordered (field, prompt) pairs. Fields must be
// unique and non-empty, prompts non-empty.
func New(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one question")
	}

	byField := make(map[string]Question, len(questions))
	for i, q := range questions {
		if q.Field == "" {
			return nil, fmt.Errorf("question %d has an empty field name", i)
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("field %q has an empty prompt", q.Field)
		}
		if _, exists := byField[q.Field]; exists {
			return nil, fmt.Errorf("duplicate field %q", q.Field)
		}
		byField[q.Field] = q
	}

	ordered := make([]Question, len(questions))
	copy(ordered, questions)

	return &Catalog{questions: ordered, byField: byField}, nil
}

// First returns the first question in catalog order.
func (c *Catalog) First() Question {
	return c.questions[0]
}

// Prompt returns the prompt text for a field.
func (c *Catalog) Prompt(field string) (string, bool) {
	q, ok := c.byField[field]
	return q.Prompt, ok
}

// Has reports whether the field belongs to the catalog.
func (c *Catalog) Has(field string) bool {
	_, ok := c.byField[field]
	return ok
}

// FirstUnanswered returns the earliest question, by catalog order, whose
// field has no non-empty value in answers. The second return is false when
// every field is answered.
func (c *Catalog) FirstUnanswered(answers map[string]string) (Question, bool) {
	for _, q := range c.questions {
		if answers[q.Field] == "" {
			return q, true
		}
	}
	return Question{}, false
}

// Fields returns the field names in catalog order.
func (c *Catalog) Fields() []string {
	fields := make([]string, len(c.questions))
	for i, q := range c.questions {
		fields[i] = q.Field
	}
	return fields
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}
