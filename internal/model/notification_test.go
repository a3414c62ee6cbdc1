package model

import (
	"encoding/json"
	"testing"
)

func TestDisplayCreatedAtStripsArtifact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2026-02-11 09:30:00.0", "2026-02-11 09:30:00"},
		{"2026-02-11 09:30:00", "2026-02-11 09:30:00"},
		{"", ""},
	}

	for _, tt := range tests {
		n := Notification{CreatedAt: tt.in}
		if got := n.DisplayCreatedAt(); got != tt.want {
			t.Errorf("DisplayCreatedAt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNotificationJSONShape(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "n1",
		"notification_type": "maintenance_request",
		"title": "Projector broken",
		"message": "Room 4",
		"priority": "High",
		"created_at": "2026-02-11 09:30:00.0",
		"is_read": false,
		"sender": {"username": "facilities", "profile_picture": "https://cdn/x.png"}
	}`

	var n Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if n.ID != "n1" || n.RawType != "maintenance_request" {
		t.Errorf("record = %+v", n)
	}
	if n.Sender == nil || n.Sender.Username != "facilities" || n.Sender.AvatarURL != "https://cdn/x.png" {
		t.Errorf("sender = %+v", n.Sender)
	}
}

func TestSenderOmittedWhenAbsent(t *testing.T) {
	t.Parallel()

	var n Notification
	if err := json.Unmarshal([]byte(`{"id": "n2"}`), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Sender != nil {
		t.Errorf("sender = %+v, want nil", n.Sender)
	}
}
