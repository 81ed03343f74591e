package rbac

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity does not exist. It is
// raised during validation, before any mutation, so a NotFound outcome
// never leaves partial effects behind.
type NotFoundError struct {
	Resource string // "role", "user" or "permission"
	Key      string // the offending id or name
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrRoleNameTaken is returned when creating or renaming a role would
// collide with an existing role name.
var ErrRoleNameTaken = errors.New("a role with this name already exists")

// ErrUserExists is returned when creating a user would collide with an
// existing username or email.
var ErrUserExists = errors.New("a user with this username or email already exists")
