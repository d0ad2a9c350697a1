package assignment

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/tshims/kazi/core"
	"github.com/tshims/kazi/core/user"
)

var (
	// errors
	ErrNotFound       = errors.New("assignment not found")
	ErrNotEditable    = errors.New("only Draft assignments can be edited")
	ErrNotDeletable   = errors.New("only Draft assignments can be deleted")
	ErrNotPublishable = errors.New("only Draft assignments can be published")
	ErrNotCompletable = errors.New("only Published assignments can be completed")
	ErrInvalidAction  = errors.New("invalid action")
)

type (
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		// FilterAssignments applies the QueryFilter; an empty filter
		// returns all assignments in storage order.
		FilterAssignments(filter QueryFilter) ([]Assignment, error)
		UpdateAssignment(a Assignment) (Assignment, error)
		DeleteAssignment(id string) error
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, usrRepo user.Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, usrRepo: usrRepo, mailSvc: mailSvc}
}

// Create produces a new Draft assignment owned by the creator.
func (svc *Service) Create(na NewAssignment, creator user.User) (Assignment, error) {
	now := time.Now().UTC()
	a := Assignment{
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		Status:      StatusDraft,
		CreatedBy:   creator.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateAssignment(a)
}

func (svc *Service) Get(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Assignment, error) {
	return svc.repo.FilterAssignments(filter)
}

// Update replaces the title, description and due date of a Draft assignment.
// Status and ownership are untouched.
func (svc *Service) Update(id string, ua UpdateAssignment) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	if a.Status != StatusDraft {
		return Assignment{}, ErrNotEditable
	}
	a.Title = ua.Title
	a.Description = ua.Description
	a.DueDate = ua.DueDate
	a.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAssignment(a)
}

// ChangeStatus applies a publish/complete action per the transition table.
func (svc *Service) ChangeStatus(id string, action Action) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	next, err := Transit(a.Status, action)
	if err != nil {
		return Assignment{}, err
	}
	a.Status = next
	a.UpdatedAt = time.Now().UTC()
	a, err = svc.repo.UpdateAssignment(a)
	if err != nil {
		return Assignment{}, err
	}

	if action == ActionPublish {
		svc.notifyStudents(a)
	}
	return a, nil
}

// Delete permanently removes a Draft assignment.
func (svc *Service) Delete(id string) error {
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return err
	}
	if a.Status != StatusDraft {
		return ErrNotDeletable
	}
	return svc.repo.DeleteAssignment(a.ID)
}

func (svc *Service) notifyStudents(a Assignment) {
	if svc.mailSvc == nil || svc.usrRepo == nil {
		return
	}
	students, err := svc.usrRepo.FilterUsersByRole(user.RoleStudent)
	if err != nil || len(students) == 0 {
		return
	}
	to := make([]mail.Address, 0, len(students))
	for _, s := range students {
		to = append(to, mail.Address{Name: s.Name, Address: s.Email})
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("New assignment: %s", a.Title),
		BodyStr: fmt.Sprintf("%q is now open for submissions until %s.", a.Title, a.DueDate.Format(time.RFC1123)),
	})
}
