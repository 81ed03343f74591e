package audit

import (
	"fmt"
	"strconv"
	"strings"
)

// ReplacePermissionsEvent records a full replace of a role's permission set
type ReplacePermissionsEvent struct {
	RoleID          int64
	PermissionNames []string
	ClientIP        string
	Success         bool
	ErrorMessage    string
}

func (e ReplacePermissionsEvent) MessageID() string {
	return "replace-permissions"
}

func (e ReplacePermissionsEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("permissions of role %d replaced with [%s]", e.RoleID, strings.Join(e.PermissionNames, " "))
	}
	msg := fmt.Sprintf("failed to replace permissions of role %d", e.RoleID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ReplacePermissionsEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ReplacePermissionsEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ReplacePermissionsEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDSubject: {
			"role": strconv.FormatInt(e.RoleID, 10),
		},
		SDIDAction: {
			"operation": "replace-permissions",
			"result":    result,
		},
	}
	if e.ClientIP != "" {
		sd[SDIDClient] = map[string]string{"ip": e.ClientIP}
	}
	return sd
}

// ReplaceRolesEvent records a full replace of a user's role set
type ReplaceRolesEvent struct {
	UserID       int64
	RoleIDs      []int64
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e ReplaceRolesEvent) MessageID() string {
	return "replace-roles"
}

func (e ReplaceRolesEvent) Message() string {
	ids := make([]string, 0, len(e.RoleIDs))
	for _, id := range e.RoleIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	if e.Success {
		return fmt.Sprintf("roles of user %d replaced with [%s]", e.UserID, strings.Join(ids, " "))
	}
	msg := fmt.Sprintf("failed to replace roles of user %d", e.UserID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ReplaceRolesEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ReplaceRolesEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ReplaceRolesEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDSubject: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDAction: {
			"operation": "replace-roles",
			"result":    result,
		},
	}
	if e.ClientIP != "" {
		sd[SDIDClient] = map[string]string{"ip": e.ClientIP}
	}
	return sd
}

// RoleDeleteEvent records deletion of a role and its assignment rows
type RoleDeleteEvent struct {
	RoleID       int64
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RoleDeleteEvent) MessageID() string {
	return "role-delete"
}

func (e RoleDeleteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("role %d deleted", e.RoleID)
	}
	msg := fmt.Sprintf("failed to delete role %d", e.RoleID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RoleDeleteEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RoleDeleteEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RoleDeleteEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDSubject: {
			"role": strconv.FormatInt(e.RoleID, 10),
		},
		SDIDAction: {
			"operation": "role-delete",
			"result":    result,
		},
	}
	if e.ClientIP != "" {
		sd[SDIDClient] = map[string]string{"ip": e.ClientIP}
	}
	return sd
}
