package entity

// UpdateAnswerRequest is the body of POST /api/session/answers/{id}.
// Exactly one of Rating or Text must be set, matching the question kind.
type UpdateAnswerRequest struct {
	Rating *int    `json:"rating,omitempty"`
	Text   *string `json:"text,omitempty"`
}

// SubmitRequest is the wire body of POST /submit.
type SubmitRequest struct {
	Answers []string `json:"answers"`
}

// SubmitResponse is returned when a submission was delivered.
type SubmitResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// SubmitErrorResponse is returned when delivery failed.
type SubmitErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse is the generic error body for the session API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StateDTO is the full session view returned by GET /api/session and after
// every mutating operation.
type StateDTO struct {
	Step       int       `json:"step"`
	TotalSteps int       `json:"totalSteps"`
	View       string    `json:"view"`
	Answers    AnswerSet `json:"answers"`
	UIFlags    UIFlags   `json:"uiFlags"`
	Stack      []Moment  `json:"stack"`
	Catalog    *Catalog  `json:"catalog"`
	Timeline   Timeline  `json:"timeline"`

	// OpenQuestion is the open-ended question the current step shows,
	// present only on open-ended steps.
	OpenQuestion *OpenQuestion `json:"openQuestion,omitempty"`

	// SaveNotice is a transient, dismissable persistence warning
	// (quota exceeded); empty when the last save succeeded.
	SaveNotice string `json:"saveNotice,omitempty"`
	// SubmitError is the user-visible message after a failed submission.
	SubmitError string `json:"submitError,omitempty"`
}
