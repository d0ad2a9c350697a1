package submission

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tshims/kazi/core"
)

// Submission is a student's single recorded answer to one assignment.
// It is immutable once created except for the Reviewed flag.
type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"` // denormalized at submission time
	Answer       string    `json:"answer"`
	SubmittedAt  time.Time `json:"submittedAt"` // UTC
	Reviewed     bool      `json:"reviewed"`
}

// NewSubmission contains the answer payload for a submit request.
type NewSubmission struct {
	Answer string `json:"answer" validate:"required"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.Answer = core.CleanString(ns.Answer)
	return validate.Struct(ns)
}
