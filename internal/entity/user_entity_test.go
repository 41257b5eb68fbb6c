package entity

import "testing"

func TestDisplayName(t *testing.T) {
	nickname := "Ada"
	empty := ""

	tests := []struct {
		name string
		user User
		want string
	}{
		{"nickname wins", User{Username: "ada.writes", Nickname: &nickname}, "Ada"},
		{"nil nickname falls back", User{Username: "ada.writes"}, "ada.writes"},
		{"empty nickname falls back", User{Username: "ada.writes", Nickname: &empty}, "ada.writes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoteStatusIsValid(t *testing.T) {
	for _, s := range []NoteStatus{NoteStatusPrivate, NoteStatusDraft, NoteStatusPublic} {
		if !s.IsValid() {
			t.Errorf("%q reported invalid", s)
		}
	}
	if NoteStatus("published").IsValid() {
		t.Errorf("unknown status reported valid")
	}
}
