package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"inkfeed-be/internal/entity"
	"inkfeed-be/pkg/events"

	"github.com/google/uuid"
)

func TestResolveRecipients(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	note := &entity.Note{Id: uuid.New(), UserId: owner}

	tests := []struct {
		name     string
		typeCode string
		actor    uuid.UUID
		want     []uuid.UUID
	}{
		{
			name:     "publish notifies the author",
			typeCode: events.TypeNotePublished,
			actor:    owner,
			want:     []uuid.UUID{owner},
		},
		{
			name:     "like notifies the owner",
			typeCode: events.TypeNoteLiked,
			actor:    stranger,
			want:     []uuid.UUID{owner},
		},
		{
			name:     "own like stays silent",
			typeCode: events.TypeNoteLiked,
			actor:    owner,
			want:     nil,
		},
		{
			name:     "favorite notifies the owner",
			typeCode: events.TypeNoteFavorited,
			actor:    stranger,
			want:     []uuid.UUID{owner},
		},
		{
			name:     "own favorite stays silent",
			typeCode: events.TypeNoteFavorited,
			actor:    owner,
			want:     nil,
		},
		{
			name:     "comment notifies the owner",
			typeCode: events.TypeCommentCreated,
			actor:    stranger,
			want:     []uuid.UUID{owner},
		},
		{
			name:     "own comment stays silent",
			typeCode: events.TypeCommentCreated,
			actor:    owner,
			want:     nil,
		},
		{
			name:     "unknown code resolves nobody",
			typeCode: "SOMETHING_ELSE",
			actor:    stranger,
			want:     nil,
		},
	}

	s := &NotificationService{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.resolveRecipients(context.Background(), nil, tt.typeCode, note, tt.actor, map[string]interface{}{})
			if err != nil {
				t.Fatalf("resolveRecipients() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("recipients = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("recipient[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildNotification(t *testing.T) {
	s := &NotificationService{}
	note := &entity.Note{Id: uuid.New(), UserId: uuid.New(), Title: "Field Notes"}
	recipient := uuid.New()
	actor := uuid.New()

	tpl := notificationTemplate{
		Title:    "New like",
		Template: `{actor} liked your note "{title}"`,
	}
	event := events.BaseEvent{Type: events.TypeNoteLiked, OccurredAt: time.Now()}
	data := map[string]interface{}{"actor": "Ada", "title": "Field Notes"}

	notif := s.buildNotification(recipient, actor, tpl, event, note, data)

	if notif.Message != `Ada liked your note "Field Notes"` {
		t.Errorf("Message = %q, placeholders not filled", notif.Message)
	}
	if notif.UserID != recipient {
		t.Errorf("UserID = %s, want %s", notif.UserID, recipient)
	}
	if notif.ActorID == nil || *notif.ActorID != actor {
		t.Errorf("ActorID not carried over")
	}
	if notif.TypeCode != events.TypeNoteLiked {
		t.Errorf("TypeCode = %q, want %q", notif.TypeCode, events.TypeNoteLiked)
	}
	if notif.EntityType != "note" || notif.EntityID == nil || *notif.EntityID != note.Id {
		t.Errorf("entity reference does not point at the note")
	}
	if notif.IsRead {
		t.Errorf("new notification must start unread")
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(notif.Metadata, &meta); err != nil {
		t.Fatalf("Metadata is not valid JSON: %v", err)
	}
	if meta["action_url"] != "/notes/"+note.Id.String() {
		t.Errorf("action_url = %v, want /notes/%s", meta["action_url"], note.Id)
	}

	t.Run("system events carry no actor", func(t *testing.T) {
		notif := s.buildNotification(recipient, uuid.Nil, tpl, event, note, data)
		if notif.ActorID != nil {
			t.Errorf("ActorID = %v, want nil for zero actor", notif.ActorID)
		}
	})
}

func TestParseUUIDField(t *testing.T) {
	noteId := uuid.New()

	// Payload values arrive over the bus as JSON, so a uuid.UUID value
	// becomes a plain string by the time the recorder sees it.
	raw, err := events.Marshal(events.BaseEvent{
		Type:       events.TypeNotePublished,
		Data:       map[string]interface{}{"note_id": noteId, "count": 3},
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	event, err := events.Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	got, ok := parseUUIDField(event.Payload(), "note_id")
	if !ok || got != noteId {
		t.Errorf("parseUUIDField(note_id) = (%s, %v), want (%s, true)", got, ok, noteId)
	}

	if _, ok := parseUUIDField(event.Payload(), "missing"); ok {
		t.Errorf("missing key reported as present")
	}
	if _, ok := parseUUIDField(event.Payload(), "count"); ok {
		t.Errorf("non-string value reported as uuid")
	}
	if _, ok := parseUUIDField(map[string]interface{}{"note_id": "not-a-uuid"}, "note_id"); ok {
		t.Errorf("junk string reported as uuid")
	}
}
