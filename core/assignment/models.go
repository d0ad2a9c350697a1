package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tshims/kazi/core"
)

// Status is the lifecycle state of an Assignment. Transitions are
// one-directional: Draft -> Published -> Completed, no skips, no reversals.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
	StatusCompleted Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Action is a requested status transition.
type Action string

const (
	ActionPublish  Action = "publish"
	ActionComplete Action = "complete"
)

type transition struct {
	from Status
	to   Status
	err  error // returned when the current status != from
}

var transitions = map[Action]transition{
	ActionPublish:  {from: StatusDraft, to: StatusPublished, err: ErrNotPublishable},
	ActionComplete: {from: StatusPublished, to: StatusCompleted, err: ErrNotCompletable},
}

// Transit returns the status resulting from applying action to current.
// Unknown actions fail with ErrInvalidAction; a current status other than
// the transition's origin fails with the transition's own error.
func Transit(current Status, action Action) (Status, error) {
	tr, ok := transitions[action]
	if !ok {
		return current, ErrInvalidAction
	}
	if current != tr.from {
		return current, tr.err
	}
	return tr.to, nil
}

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      Status    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return validate.Struct(na)
}

// UpdateAssignment replaces the three mutable fields of a Draft Assignment.
type UpdateAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	ua.Title = core.CleanString(ua.Title)
	ua.Description = core.CleanString(ua.Description)
	return validate.Struct(ua)
}

// ChangeStatus is a status-change request.
type ChangeStatus struct {
	Action Action `json:"action" validate:"required"`
}

func (cs *ChangeStatus) Validate(validate *validator.Validate) error {
	return validate.Struct(cs)
}

type QueryFilter struct {
	Status Status `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Status == ""
}
