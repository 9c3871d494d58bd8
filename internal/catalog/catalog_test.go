package catalog

import "testing"

func testQuestions() []Question {
	return []Question{
		{Field: "current_role", Prompt: "What is your current role?"},
		{Field: "collaboration_needs", Prompt: "What collaboration are you looking for?"},
		{Field: "domain", Prompt: "What is your business domain?"},
		{Field: "region", Prompt: "What is your preferred region?"},
	}
}

func TestNewRejectsDuplicateFields(t *testing.T) {
	questions := testQuestions()
	questions = append(questions, Question{Field: "region", Prompt: "again"})

	if _, err := New(questions); err == nil {
		t.Fatal("expected error for duplicate field")
	}
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestNewRejectsEmptyFieldOrPrompt(t *testing.T) {
	if _, err := New([]Question{{Field: "", Prompt: "p"}}); err == nil {
		t.Fatal("expected error for empty field name")
	}
	if _, err := New([]Question{{Field: "f", Prompt: ""}}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestFirstUnansweredFollowsCatalogOrder(t *testing.T) {
	cat, err := New(testQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, ok := cat.FirstUnanswered(map[string]string{})
	if !ok || q.Field != "current_role" {
		t.Fatalf("expected current_role, got %q (ok=%v)", q.Field, ok)
	}

	// Out-of-order fill: the earliest gap wins.
	answers := map[string]string{
		"current_role": "engineer",
		"domain":       "healthcare",
	}
	q, ok = cat.FirstUnanswered(answers)
	if !ok || q.Field != "collaboration_needs" {
		t.Fatalf("expected collaboration_needs, got %q (ok=%v)", q.Field, ok)
	}
}

func TestFirstUnansweredTreatsEmptyValueAsUnanswered(t *testing.T) {
	cat, err := New(testQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := map[string]string{"current_role": ""}
	q, ok := cat.FirstUnanswered(answers)
	if !ok || q.Field != "current_role" {
		t.Fatalf("expected current_role, got %q (ok=%v)", q.Field, ok)
	}
}

func TestFirstUnansweredCompleteCatalog(t *testing.T) {
	cat, err := New(testQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := map[string]string{
		"current_role":        "engineer",
		"collaboration_needs": "investor",
		"domain":              "healthcare",
		"region":              "Europe",
	}
	if _, ok := cat.FirstUnanswered(answers); ok {
		t.Fatal("expected no unanswered question")
	}
}

func TestPromptAndHas(t *testing.T) {
	cat, err := New(testQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt, ok := cat.Prompt("domain")
	if !ok || prompt != "What is your business domain?" {
		t.Fatalf("unexpected prompt %q (ok=%v)", prompt, ok)
	}

	if cat.Has("unknown_field") {
		t.Fatal("Has should be false for unknown field")
	}

	if got := cat.First().Field; got != "current_role" {
		t.Fatalf("First: expected current_role, got %q", got)
	}

	fields := cat.Fields()
	if len(fields) != 4 || fields[3] != "region" {
		t.Fatalf("unexpected fields order: %v", fields)
	}
}
