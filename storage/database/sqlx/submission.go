package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tshims/kazi/core/submission"
)

type dbSubmission struct {
	ID           string    `db:"id"`
	AssignmentID string    `db:"assignment_id"`
	StudentID    string    `db:"student_id"`
	StudentName  string    `db:"student_name"`
	Answer       string    `db:"answer"`
	SubmittedAt  time.Time `db:"submitted_at"`
	Reviewed     bool      `db:"reviewed"`
}

func (s dbSubmission) toSubmission() submission.Submission {
	return submission.Submission{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		StudentName:  s.StudentName,
		Answer:       s.Answer,
		SubmittedAt:  s.SubmittedAt,
		Reviewed:     s.Reviewed,
	}
}

func toSubmissions(rows []dbSubmission) []submission.Submission {
	subs := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toSubmission())
	}
	return subs
}

type submissionRepository struct {
	db *sqlx.DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *sqlx.DB) submission.Repository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return submission.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *submissionRepository) CreateSubmission(s submission.Submission) (submission.Submission, error) {
	s.ID = uuid.New().String()
	_, err := repo.db.Exec(
		`INSERT INTO submissions (id, assignment_id, student_id, student_name, answer, submitted_at, reviewed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.AssignmentID, s.StudentID, s.StudentName, s.Answer, s.SubmittedAt, s.Reviewed,
	)
	if err != nil {
		// the (assignment_id, student_id) unique constraint backs the
		// one-submission-per-student invariant under concurrent writers
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return submission.Submission{}, submission.ErrDuplicate
		}
		return submission.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return s, nil
}

func (repo *submissionRepository) GetSubmissionByID(id string) (submission.Submission, error) {
	var row dbSubmission
	if err := repo.db.Get(&row, `SELECT * FROM submissions WHERE id = $1`, id); err != nil {
		return submission.Submission{}, repo.trapNoRowsErr(err, "getting submission by id")
	}
	return row.toSubmission(), nil
}

func (repo *submissionRepository) GetSubmissionByAssignmentAndStudent(assignmentID, studentID string) (submission.Submission, error) {
	var row dbSubmission
	err := repo.db.Get(&row, `SELECT * FROM submissions WHERE assignment_id = $1 AND student_id = $2`, assignmentID, studentID)
	if err != nil {
		return submission.Submission{}, repo.trapNoRowsErr(err, "getting submission by assignment and student")
	}
	return row.toSubmission(), nil
}

func (repo *submissionRepository) FilterSubmissionsByAssignment(assignmentID string) ([]submission.Submission, error) {
	var rows []dbSubmission
	if err := repo.db.Select(&rows, `SELECT * FROM submissions WHERE assignment_id = $1 ORDER BY submitted_at`, assignmentID); err != nil {
		return nil, errors.Wrap(err, "filtering submissions by assignment")
	}
	return toSubmissions(rows), nil
}

func (repo *submissionRepository) FilterSubmissionsByStudent(studentID string) ([]submission.Submission, error) {
	var rows []dbSubmission
	if err := repo.db.Select(&rows, `SELECT * FROM submissions WHERE student_id = $1 ORDER BY submitted_at`, studentID); err != nil {
		return nil, errors.Wrap(err, "filtering submissions by student")
	}
	return toSubmissions(rows), nil
}

func (repo *submissionRepository) UpdateSubmission(s submission.Submission) (submission.Submission, error) {
	res, err := repo.db.Exec(`UPDATE submissions SET reviewed = $1 WHERE id = $2`, s.Reviewed, s.ID)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "updating submission")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return submission.Submission{}, submission.ErrNotFound
	}
	return s, nil
}
