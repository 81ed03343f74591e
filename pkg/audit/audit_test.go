package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := ReplacePermissionsEvent{
		RoleID:          7,
		PermissionNames: []string{"user:read", "user:update"},
		ClientIP:        "192.168.1.1",
		Success:         true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "accessd") {
		t.Error("Expected app name 'accessd' in output")
	}
	if !strings.Contains(output, "replace-permissions") {
		t.Error("Expected message ID 'replace-permissions' in output")
	}
	if !strings.Contains(output, "user:read user:update") {
		t.Error("Expected permission names in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.HasPrefix(output, "<") {
		t.Error("Expected RFC5424 PRI prefix in output")
	}
}

func TestReplacePermissionsEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     ReplacePermissionsEvent
		wantMsg   string
		wantSev   Severity
		wantMsgID string
	}{
		{
			name: "success",
			event: ReplacePermissionsEvent{
				RoleID:          3,
				PermissionNames: []string{"role:read"},
				Success:         true,
			},
			wantMsg:   "permissions of role 3 replaced with [role:read]",
			wantSev:   SeverityNotice,
			wantMsgID: "replace-permissions",
		},
		{
			name: "failure",
			event: ReplacePermissionsEvent{
				RoleID:       3,
				Success:      false,
				ErrorMessage: "permission \"bogus:name\" not found",
			},
			wantMsg:   "failed to replace permissions of role 3: permission \"bogus:name\" not found",
			wantSev:   SeverityWarning,
			wantMsgID: "replace-permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.event.Severity(); got != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", got, tt.wantSev)
			}
			if got := tt.event.MessageID(); got != tt.wantMsgID {
				t.Errorf("MessageID() = %q, want %q", got, tt.wantMsgID)
			}
		})
	}
}

func TestReplaceRolesEvent(t *testing.T) {
	event := ReplaceRolesEvent{
		UserID:  11,
		RoleIDs: []int64{1, 2},
		Success: true,
	}

	if got, want := event.Message(), "roles of user 11 replaced with [1 2]"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}

	sd := event.StructuredData()
	if sd[SDIDSubject]["user"] != "11" {
		t.Errorf("expected subject user 11, got %q", sd[SDIDSubject]["user"])
	}
	if sd[SDIDAction]["result"] != "success" {
		t.Errorf("expected result success, got %q", sd[SDIDAction]["result"])
	}
}

func TestStructuredDataEscaping(t *testing.T) {
	event := ReplacePermissionsEvent{
		RoleID:       1,
		Success:      false,
		ErrorMessage: `value with "quotes" and ]bracket`,
	}

	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)
	logger.Log(event)

	output := buf.String()
	if strings.Contains(output, `=""`) {
		t.Error("structured data values must not be empty-quoted")
	}
}
