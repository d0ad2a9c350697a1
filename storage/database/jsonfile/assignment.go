package jsonfiledb

import (
	"time"

	"github.com/google/uuid"

	"github.com/tshims/kazi/core/assignment"
)

type assignmentRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newAssignmentRecord(a assignment.Assignment) assignmentRecord {
	return assignmentRecord{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		Status:      string(a.Status),
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (rec assignmentRecord) toAssignment() assignment.Assignment {
	return assignment.Assignment{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		DueDate:     rec.DueDate,
		Status:      assignment.Status(rec.Status),
		CreatedBy:   rec.CreatedBy,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) CreateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	a.ID = uuid.New().String()
	err := repo.db.update(func(doc *document) error {
		doc.Assignments = append(doc.Assignments, newAssignmentRecord(a))
		return nil
	})
	if err != nil {
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Assignments {
			if rec.ID == id {
				a = rec.toAssignment()
				return nil
			}
		}
		return assignment.ErrNotFound
	})
	return a, err
}

func (repo *assignmentRepository) FilterAssignments(filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	assignments := make([]assignment.Assignment, 0)
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Assignments {
			if !filter.IsEmpty() && rec.Status != string(filter.Status) {
				continue
			}
			assignments = append(assignments, rec.toAssignment())
		}
		return nil
	})
	return assignments, err
}

func (repo *assignmentRepository) UpdateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	err := repo.db.update(func(doc *document) error {
		for i, rec := range doc.Assignments {
			if rec.ID == a.ID {
				doc.Assignments[i] = newAssignmentRecord(a)
				return nil
			}
		}
		return assignment.ErrNotFound
	})
	if err != nil {
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(id string) error {
	return repo.db.update(func(doc *document) error {
		for i, rec := range doc.Assignments {
			if rec.ID == id {
				doc.Assignments = append(doc.Assignments[:i], doc.Assignments[i+1:]...)
				return nil
			}
		}
		return assignment.ErrNotFound
	})
}
