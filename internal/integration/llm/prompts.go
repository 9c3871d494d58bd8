package llm

import (
	"fmt"
	"strings"
)

const (
	validationSystemPrompt = "You are a helpful assistant."

	clarificationSystemPrompt = "You are a helpful assistant that drafts polite messages to guide users to answer questions properly."
)

func validationUserPrompt(question, answer string) string {
	return fmt.Sprintf(`Does the following user response seem relevant and meaningful based on this question: %q?
Response: %q
Please reply with "Yes" if it's valid and "No" if it seems irrelevant, dummy, or nonsensical.`, question, answer)
}

func clarificationUserPrompt(question, rejectedAnswer string) string {
	return fmt.Sprintf(`The user has provided an irrelevant or incomplete answer to the question: %q.
Please politely ask them to provide a valid and relevant answer.
User's response: %q`, question, rejectedAnswer)
}

func extractionSystemPrompt(fields []string) string {
	var b strings.Builder
	b.WriteString("Extract the following information from the user's response:\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "- %s\n", field)
	}
	fmt.Fprintf(&b, "Return the result as a JSON object with keys: %s.\n", strings.Join(fields, ", "))
	b.WriteString("If any key is missing, return only the extracted fields.")
	return b.String()
}

func extractionUserPrompt(answer string) string {
	return fmt.Sprintf("User response: %q", answer)
}
