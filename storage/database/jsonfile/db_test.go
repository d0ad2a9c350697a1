package jsonfiledb

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/tshims/kazi/core/assignment"
	"github.com/tshims/kazi/core/user"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db.json")

	if _, err := Open(path); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// a fresh store is an empty document with all three collections present
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("reading the store file failed: %v", err)
	}
	doc := make(map[string]json.RawMessage)
	if err = json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding the store file failed: %v", err)
	}
	for _, key := range []string{"users", "assignments", "submissions"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("fresh store is missing the %q collection", key)
		}
	}
}

func TestDB_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db.json")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	usrRepo := NewUserRepository(db)
	usr, err := usrRepo.CreateUser(user.User{
		Name:      "Alice",
		Email:     "alice@test.cd",
		Role:      user.RoleStudent,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	repo := NewAssignmentRepository(db)
	a, err := repo.CreateAssignment(assignment.Assignment{
		Title:       "HW",
		Description: "desc",
		DueDate:     time.Now().Add(24 * time.Hour).UTC(),
		Status:      assignment.StatusDraft,
		CreatedBy:   usr.ID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}

	// a second handle on the same path sees everything the first wrote
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopening the store failed: %v", err)
	}
	got, err := NewAssignmentRepository(db2).GetAssignmentByID(a.ID)
	if err != nil {
		t.Fatalf("GetAssignmentByID() after reopen failed: %v", err)
	}
	if got.Title != a.Title || got.Status != a.Status || got.CreatedBy != usr.ID {
		t.Errorf("reopened store returned %+v; want %+v", got, a)
	}
	if !got.DueDate.Equal(a.DueDate) {
		t.Errorf("reopened store due date = %v; want %v", got.DueDate, a.DueDate)
	}

	if _, err = NewUserRepository(db2).GetUserByEmail("alice@test.cd"); err != nil {
		t.Errorf("GetUserByEmail() after reopen failed: %v", err)
	}
}

func TestDB_Delete(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	repo := NewAssignmentRepository(db)

	a, err := repo.CreateAssignment(assignment.Assignment{
		Title:       "HW",
		Description: "desc",
		DueDate:     time.Now().Add(time.Hour).UTC(),
		Status:      assignment.StatusDraft,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	keep, err := repo.CreateAssignment(assignment.Assignment{
		Title:       "Keep",
		Description: "desc",
		DueDate:     time.Now().Add(time.Hour).UTC(),
		Status:      assignment.StatusDraft,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}

	if err = repo.DeleteAssignment(a.ID); err != nil {
		t.Fatalf("DeleteAssignment() failed: %v", err)
	}
	if _, err = repo.GetAssignmentByID(a.ID); err != assignment.ErrNotFound {
		t.Errorf("GetAssignmentByID() after delete error = %v; wantErr %v", err, assignment.ErrNotFound)
	}
	if _, err = repo.GetAssignmentByID(keep.ID); err != nil {
		t.Errorf("DeleteAssignment() removed an unrelated record: %v", err)
	}

	if err = repo.DeleteAssignment("nope"); err != assignment.ErrNotFound {
		t.Errorf("DeleteAssignment() on unknown id error = %v; wantErr %v", err, assignment.ErrNotFound)
	}
}
