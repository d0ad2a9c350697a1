package submission

import (
	"errors"
	"time"

	"github.com/tshims/kazi/core/assignment"
	"github.com/tshims/kazi/core/user"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound  = errors.New("submission not found")
	ErrNotOpen   = errors.New("assignment not open for submissions")
	ErrPastDue   = errors.New("past due date")
	ErrDuplicate = errors.New("already submitted")
)

type (
	Repository interface {
		CreateSubmission(s Submission) (Submission, error)
		GetSubmissionByID(id string) (Submission, error)
		GetSubmissionByAssignmentAndStudent(assignmentID, studentID string) (Submission, error)
		FilterSubmissionsByAssignment(assignmentID string) ([]Submission, error)
		FilterSubmissionsByStudent(studentID string) ([]Submission, error)
		UpdateSubmission(s Submission) (Submission, error)
	}

	Service struct {
		repo           Repository
		assignmentRepo assignment.Repository
	}
)

func NewService(repo Repository, assignmentRepo assignment.Repository) *Service {
	return &Service{repo: repo, assignmentRepo: assignmentRepo}
}

// Submit records a student's answer. The assignment must be Published, the
// due date must not have passed, and the student must not have submitted
// before; each precondition fails with its own error.
func (svc *Service) Submit(assignmentID string, student user.User, ns NewSubmission) (Submission, error) {
	a, err := svc.assignmentRepo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Submission{}, err
	}
	if a.Status != assignment.StatusPublished {
		return Submission{}, ErrNotOpen
	}
	now := NowFunc().UTC()
	if now.After(a.DueDate) {
		return Submission{}, ErrPastDue
	}
	if _, err := svc.repo.GetSubmissionByAssignmentAndStudent(a.ID, student.ID); err == nil {
		return Submission{}, ErrDuplicate
	} else if err != ErrNotFound {
		return Submission{}, err
	}

	s := Submission{
		AssignmentID: a.ID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		Answer:       ns.Answer,
		SubmittedAt:  now,
	}
	return svc.repo.CreateSubmission(s)
}

func (svc *Service) ListForAssignment(assignmentID string) ([]Submission, error) {
	return svc.repo.FilterSubmissionsByAssignment(assignmentID)
}

func (svc *Service) ListMine(studentID string) ([]Submission, error) {
	return svc.repo.FilterSubmissionsByStudent(studentID)
}

// Review sets the reviewed flag. Reviewing an already-reviewed submission
// is a no-op success; the flag is never reset.
func (svc *Service) Review(id string) (Submission, error) {
	s, err := svc.repo.GetSubmissionByID(id)
	if err != nil {
		return Submission{}, err
	}
	if s.Reviewed {
		return s, nil
	}
	s.Reviewed = true
	return svc.repo.UpdateSubmission(s)
}
