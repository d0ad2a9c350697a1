package assignment

import "testing"

func TestTransit(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		action  Action
		want    Status
		wantErr error
	}{
		{name: "publish Draft", current: StatusDraft, action: ActionPublish, want: StatusPublished},
		{name: "complete Published", current: StatusPublished, action: ActionComplete, want: StatusCompleted},
		{name: "publish Published", current: StatusPublished, action: ActionPublish, wantErr: ErrNotPublishable},
		{name: "publish Completed", current: StatusCompleted, action: ActionPublish, wantErr: ErrNotPublishable},
		{name: "complete Draft", current: StatusDraft, action: ActionComplete, wantErr: ErrNotCompletable},
		{name: "complete Completed", current: StatusCompleted, action: ActionComplete, wantErr: ErrNotCompletable},
		{name: "unknown action", current: StatusDraft, action: Action("archive"), wantErr: ErrInvalidAction},
		{name: "empty action", current: StatusDraft, action: Action(""), wantErr: ErrInvalidAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transit(tt.current, tt.action)
			if err != tt.wantErr {
				t.Errorf("Transit() error = %v; wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got != tt.want {
				t.Errorf("Transit() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusPublished, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false; want true", s)
		}
	}
	for _, s := range []Status{"", "draft", "Archived"} {
		if s.Valid() {
			t.Errorf("Status(%q).Valid() = true; want false", s)
		}
	}
}
