package entity

// StartIntakeRequest is the POST /start payload.
type StartIntakeRequest struct {
	UserID string `json:"userId"`
}

// SubmitResponseRequest is the POST /respond payload.
type SubmitResponseRequest struct {
	UserID   string `json:"userId"`
	Response string `json:"response"`
}

// StartIntakeDTO is the POST /start response body.
type StartIntakeDTO struct {
	Message  string `json:"message,omitempty"`
	Question string `json:"question"`
}

// IntakeTurnDTO is the POST /respond response body. The populated fields
// depend on the turn outcome: rejections carry a clarification message plus
// the pending question, acceptances carry the next question, and completion
// carries the final message plus the collected data.
type IntakeTurnDTO struct {
	IsValidResponse bool              `json:"isValidResponse"`
	Message         string            `json:"message,omitempty"`
	Question        string            `json:"question,omitempty"`
	Data            map[string]string `json:"data,omitempty"`
}
