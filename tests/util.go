package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tshims/kazi/core/assignment"
	"github.com/tshims/kazi/core/submission"
	"github.com/tshims/kazi/core/user"
	"github.com/tshims/kazi/storage/database/jsonfile"
)

// OpenDB opens a fresh jsonfile store in a per-test temp dir.
func OpenDB(t *testing.T) *jsonfiledb.DB {
	t.Helper()
	db, err := jsonfiledb.Open(filepath.Join(t.TempDir(), "test.db.json"))
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd string, role user.Role) user.User {
	t.Helper()
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	title, description string,
	due time.Time,
	status assignment.Status,
	createdBy string,
) assignment.Assignment {
	t.Helper()
	now := time.Now().UTC()
	a := assignment.Assignment{
		Title:       title,
		Description: description,
		DueDate:     due.UTC(),
		Status:      status,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a, err := repo.CreateAssignment(a)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateSubmission(
	t *testing.T,
	repo submission.Repository,
	a assignment.Assignment,
	student user.User,
	answer string,
) submission.Submission {
	t.Helper()
	s := submission.Submission{
		AssignmentID: a.ID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		Answer:       answer,
		SubmittedAt:  time.Now().UTC(),
	}
	s, err := repo.CreateSubmission(s)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return s
}
