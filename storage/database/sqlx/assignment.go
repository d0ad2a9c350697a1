package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tshims/kazi/core/assignment"
)

type dbAssignment struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	Status      string    `db:"status"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (a dbAssignment) toAssignment() assignment.Assignment {
	return assignment.Assignment{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		Status:      assignment.Status(a.Status),
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return assignment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *assignmentRepository) CreateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	a.ID = uuid.New().String()
	_, err := repo.db.Exec(
		`INSERT INTO assignments (id, title, description, due_date, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Title, a.Description, a.DueDate, a.Status, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	var row dbAssignment
	if err := repo.db.Get(&row, `SELECT * FROM assignments WHERE id = $1`, id); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "getting assignment by id")
	}
	return row.toAssignment(), nil
}

func (repo *assignmentRepository) FilterAssignments(filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	var rows []dbAssignment
	var err error
	if filter.IsEmpty() {
		err = repo.db.Select(&rows, `SELECT * FROM assignments ORDER BY created_at`)
	} else {
		err = repo.db.Select(&rows, `SELECT * FROM assignments WHERE status = $1 ORDER BY created_at`, filter.Status)
	}
	if err != nil {
		return nil, errors.Wrap(err, "filtering assignments")
	}
	assignments := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.toAssignment())
	}
	return assignments, nil
}

func (repo *assignmentRepository) UpdateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	res, err := repo.db.Exec(
		`UPDATE assignments SET title = $1, description = $2, due_date = $3, status = $4, updated_at = $5 WHERE id = $6`,
		a.Title, a.Description, a.DueDate, a.Status, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(id string) error {
	res, err := repo.db.Exec(`DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assignment.ErrNotFound
	}
	return nil
}
