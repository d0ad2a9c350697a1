package jsonfiledb

import (
	"time"

	"github.com/google/uuid"

	"github.com/tshims/kazi/core/submission"
)

type submissionRecord struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	Answer       string    `json:"answer"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Reviewed     bool      `json:"reviewed"`
}

func newSubmissionRecord(s submission.Submission) submissionRecord {
	return submissionRecord{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		StudentName:  s.StudentName,
		Answer:       s.Answer,
		SubmittedAt:  s.SubmittedAt,
		Reviewed:     s.Reviewed,
	}
}

func (rec submissionRecord) toSubmission() submission.Submission {
	return submission.Submission{
		ID:           rec.ID,
		AssignmentID: rec.AssignmentID,
		StudentID:    rec.StudentID,
		StudentName:  rec.StudentName,
		Answer:       rec.Answer,
		SubmittedAt:  rec.SubmittedAt,
		Reviewed:     rec.Reviewed,
	}
}

type submissionRepository struct {
	db *DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) CreateSubmission(s submission.Submission) (submission.Submission, error) {
	s.ID = uuid.New().String()
	err := repo.db.update(func(doc *document) error {
		for _, rec := range doc.Submissions {
			if rec.AssignmentID == s.AssignmentID && rec.StudentID == s.StudentID {
				return submission.ErrDuplicate
			}
		}
		doc.Submissions = append(doc.Submissions, newSubmissionRecord(s))
		return nil
	})
	if err != nil {
		return submission.Submission{}, err
	}
	return s, nil
}

func (repo *submissionRepository) GetSubmissionByID(id string) (submission.Submission, error) {
	var s submission.Submission
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Submissions {
			if rec.ID == id {
				s = rec.toSubmission()
				return nil
			}
		}
		return submission.ErrNotFound
	})
	return s, err
}

func (repo *submissionRepository) GetSubmissionByAssignmentAndStudent(assignmentID, studentID string) (submission.Submission, error) {
	var s submission.Submission
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Submissions {
			if rec.AssignmentID == assignmentID && rec.StudentID == studentID {
				s = rec.toSubmission()
				return nil
			}
		}
		return submission.ErrNotFound
	})
	return s, err
}

func (repo *submissionRepository) FilterSubmissionsByAssignment(assignmentID string) ([]submission.Submission, error) {
	subs := make([]submission.Submission, 0)
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Submissions {
			if rec.AssignmentID == assignmentID {
				subs = append(subs, rec.toSubmission())
			}
		}
		return nil
	})
	return subs, err
}

func (repo *submissionRepository) FilterSubmissionsByStudent(studentID string) ([]submission.Submission, error) {
	subs := make([]submission.Submission, 0)
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Submissions {
			if rec.StudentID == studentID {
				subs = append(subs, rec.toSubmission())
			}
		}
		return nil
	})
	return subs, err
}

func (repo *submissionRepository) UpdateSubmission(s submission.Submission) (submission.Submission, error) {
	err := repo.db.update(func(doc *document) error {
		for i, rec := range doc.Submissions {
			if rec.ID == s.ID {
				doc.Submissions[i] = newSubmissionRecord(s)
				return nil
			}
		}
		return submission.ErrNotFound
	})
	if err != nil {
		return submission.Submission{}, err
	}
	return s, nil
}
