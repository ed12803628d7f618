package user

import (
	"fmt"

	apperrors "library-service/pkg/errors"
)

// User represents a library member.
type User struct {
	ID   int64  // ID is the unique identifier for the user
	Name string // Name is the display name; not unique
	Age  *int   // Age is optional; nil when unknown
}

// PickByName resolves a name lookup to a single user. Names are not unique,
// so more than one candidate is reported as a conflict rather than guessed.
func PickByName(name string, candidates []User) (*User, error) {
	switch len(candidates) {
	case 0:
		return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: name=%s", name))
	case 1:
		u := candidates[0]
		return &u, nil
	default:
		return nil, apperrors.NewConflictError("user",
			fmt.Sprintf("%d users are named %q; the name does not identify a single user", len(candidates), name))
	}
}
