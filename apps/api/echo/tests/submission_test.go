package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/tshims/kazi/core/assignment"
	"github.com/tshims/kazi/core/submission"
	"github.com/tshims/kazi/core/user"
	"github.com/tshims/kazi/tests"
)

func decodeSubmission(t *testing.T, data []byte) submission.Submission {
	t.Helper()
	var s submission.Submission
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	return s
}

func Test_submissionApi_submit(t *testing.T) {
	resetDB(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher One", "teacher@example.com", "", user.RoleTeacher)
	student := testutil.CreateUser(t, usrRepo, "Student One", "student@example.com", "", user.RoleStudent)
	studentToken := getToken(t, student)

	due := time.Now().Add(24 * time.Hour).UTC()
	open := testutil.CreateAssignment(t, assRepo, "Open HW", "desc", due, assignment.StatusPublished, teacher.ID)
	draft := testutil.CreateAssignment(t, assRepo, "Draft HW", "desc", due, assignment.StatusDraft, teacher.ID)
	completed := testutil.CreateAssignment(t, assRepo, "Done HW", "desc", due, assignment.StatusCompleted, teacher.ID)

	body := marchallObj(t, submission.NewSubmission{Answer: "42"})
	notOpen := marchallObj(t, httpErr{Error: "assignment not open for submissions"})

	tests := []httpTest{
		{name: "Auth required", path: "/v1/assignments/" + open.ID + "/submit", body: body, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Student required", path: "/v1/assignments/" + open.ID + "/submit", body: body, token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Not found", path: "/v1/assignments/nope/submit", body: body, token: studentToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "answer required", path: "/v1/assignments/" + open.ID + "/submit", body: []byte("{}"), token: studentToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"answer": "this field is required"}),
		},
		{name: "Draft not open", path: "/v1/assignments/" + draft.ID + "/submit", body: body, token: studentToken, wantCode: http.StatusBadRequest, wantData: notOpen},
		{name: "Completed not open", path: "/v1/assignments/" + completed.ID + "/submit", body: body, token: studentToken, wantCode: http.StatusBadRequest, wantData: notOpen},
		{name: "Submitted", path: "/v1/assignments/" + open.ID + "/submit", body: body, token: studentToken, wantCode: http.StatusCreated},
		{
			name: "One submission per student", path: "/v1/assignments/" + open.ID + "/submit", body: body, token: studentToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "already submitted"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
				}
				s := decodeSubmission(t, rec.Body.Bytes())
				if s.ID == "" {
					t.Error("failed! no id assigned")
				}
				if s.AssignmentID != open.ID || s.StudentID != student.ID || s.StudentName != student.Name {
					t.Errorf("failed! got %+v", s)
				}
				if s.Reviewed {
					t.Error("failed! new submission already reviewed")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_submissionApi_submitPastDue(t *testing.T) {
	resetDB(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher One", "teacher@example.com", "", user.RoleTeacher)
	student := testutil.CreateUser(t, usrRepo, "Student One", "student@example.com", "", user.RoleStudent)

	due := time.Now().Add(24 * time.Hour).UTC()
	a := testutil.CreateAssignment(t, assRepo, "Late HW", "desc", due, assignment.StatusPublished, teacher.ID)

	submission.NowFunc = func() time.Time { return due.Add(time.Minute) }
	defer func() { submission.NowFunc = time.Now }()

	tt := httpTest{
		name: "Past due", method: http.MethodPost, path: "/v1/assignments/" + a.ID + "/submit",
		body: marchallObj(t, submission.NewSubmission{Answer: "too late"}), token: getToken(t, student),
		wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "past due date"}),
	}
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_submissionApi_listForAssignment(t *testing.T) {
	resetDB(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher One", "teacher@example.com", "", user.RoleTeacher)
	alice := testutil.CreateUser(t, usrRepo, "Alice", "alice@test.cd", "", user.RoleStudent)
	bob := testutil.CreateUser(t, usrRepo, "Bob", "bob@test.cd", "", user.RoleStudent)

	due := time.Now().Add(24 * time.Hour).UTC()
	hw1 := testutil.CreateAssignment(t, assRepo, "HW1", "desc", due, assignment.StatusPublished, teacher.ID)
	hw2 := testutil.CreateAssignment(t, assRepo, "HW2", "desc", due, assignment.StatusPublished, teacher.ID)

	sub1 := testutil.CreateSubmission(t, subRepo, hw1, alice, "a1")
	sub2 := testutil.CreateSubmission(t, subRepo, hw1, bob, "b1")
	testutil.CreateSubmission(t, subRepo, hw2, alice, "a2")

	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/assignments/" + hw1.ID + "/submissions", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", path: "/v1/assignments/" + hw1.ID + "/submissions", token: getToken(t, alice),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "Submissions for HW1", path: "/v1/assignments/" + hw1.ID + "/submissions", token: getToken(t, teacher), wantData: marchallList(t, sub1, sub2)},
		{name: "No submissions", path: "/v1/assignments/nope/submissions", token: getToken(t, teacher), wantData: empty},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_submissionApi_listMine(t *testing.T) {
	resetDB(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher One", "teacher@example.com", "", user.RoleTeacher)
	alice := testutil.CreateUser(t, usrRepo, "Alice", "alice@test.cd", "", user.RoleStudent)
	bob := testutil.CreateUser(t, usrRepo, "Bob", "bob@test.cd", "", user.RoleStudent)

	due := time.Now().Add(24 * time.Hour).UTC()
	hw1 := testutil.CreateAssignment(t, assRepo, "HW1", "desc", due, assignment.StatusPublished, teacher.ID)
	hw2 := testutil.CreateAssignment(t, assRepo, "HW2", "desc", due, assignment.StatusPublished, teacher.ID)

	sub1 := testutil.CreateSubmission(t, subRepo, hw1, alice, "a1")
	testutil.CreateSubmission(t, subRepo, hw1, bob, "b1")
	sub2 := testutil.CreateSubmission(t, subRepo, hw2, alice, "a2")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Student required", token: getToken(t, teacher), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Own submissions only", token: getToken(t, alice), wantData: marchallList(t, sub1, sub2)},
		{name: "None yet", token: getToken(t, testutil.CreateUser(t, usrRepo, "Carol", "carol@test.cd", "", user.RoleStudent)), wantData: marchallList(t, []interface{}{}...)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/my-submissions"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_submissionApi_review(t *testing.T) {
	resetDB(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher One", "teacher@example.com", "", user.RoleTeacher)
	student := testutil.CreateUser(t, usrRepo, "Student One", "student@example.com", "", user.RoleStudent)
	teacherToken := getToken(t, teacher)

	due := time.Now().Add(24 * time.Hour).UTC()
	a := testutil.CreateAssignment(t, assRepo, "HW", "desc", due, assignment.StatusPublished, teacher.ID)
	sub := testutil.CreateSubmission(t, subRepo, a, student, "42")

	path := "/v1/submissions/" + sub.ID + "/review"

	tests := []httpTest{
		{name: "Auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", path: path, token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Not found", path: "/v1/submissions/nope/review", token: teacherToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "Reviewed", path: path, token: teacherToken, wantCode: http.StatusOK},
		{name: "Review is idempotent", path: path, token: teacherToken, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
				}
				s := decodeSubmission(t, rec.Body.Bytes())
				if !s.Reviewed {
					t.Error("failed! submission not marked reviewed")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_submissionApi_workflow(t *testing.T) {
	resetDB(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher One", "teacher@example.com", "", user.RoleTeacher)
	student := testutil.CreateUser(t, usrRepo, "Student One", "student@example.com", "", user.RoleStudent)
	teacherToken := getToken(t, teacher)
	studentToken := getToken(t, student)

	due := time.Now().Add(24 * time.Hour).UTC()
	a := testutil.CreateAssignment(t, assRepo, "HW", "desc", due, assignment.StatusDraft, teacher.ID)

	do := func(method, path, token string, body []byte) *http.Response {
		t.Helper()
		req, rec := newAuthRequest(method, path, token, body)
		app.ServeHTTP(rec, req)
		return rec.Result()
	}

	// the assignment is not open while Draft
	resp := do(http.MethodPost, "/v1/assignments/"+a.ID+"/submit", studentToken, marchallObj(t, submission.NewSubmission{Answer: "42"}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("failed! submit to Draft code = %v; want %v", resp.StatusCode, http.StatusBadRequest)
	}

	// teacher publishes; student can now submit
	resp = do(http.MethodPost, "/v1/assignments/"+a.ID+"/status", teacherToken, marchallObj(t, assignment.ChangeStatus{Action: assignment.ActionPublish}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed! publish code = %v; want %v", resp.StatusCode, http.StatusOK)
	}
	resp = do(http.MethodPost, "/v1/assignments/"+a.ID+"/submit", studentToken, marchallObj(t, submission.NewSubmission{Answer: "42"}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("failed! submit code = %v; want %v", resp.StatusCode, http.StatusCreated)
	}

	// teacher completes; submissions close for good
	resp = do(http.MethodPost, "/v1/assignments/"+a.ID+"/status", teacherToken, marchallObj(t, assignment.ChangeStatus{Action: assignment.ActionComplete}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed! complete code = %v; want %v", resp.StatusCode, http.StatusOK)
	}
	late := testutil.CreateUser(t, usrRepo, "Late Larry", "larry@test.cd", "", user.RoleStudent)
	resp = do(http.MethodPost, "/v1/assignments/"+a.ID+"/submit", getToken(t, late), marchallObj(t, submission.NewSubmission{Answer: "43"}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("failed! submit to Completed code = %v; want %v", resp.StatusCode, http.StatusBadRequest)
	}
}
