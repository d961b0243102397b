package model

import (
	"errors"
	"fmt"
)

// Status is the approval state shared by teacher requests and courses.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// ErrInvalidTransition is returned when a status or role change is not in the transition table.
var ErrInvalidTransition = errors.New("invalid transition")

var statusTransitions = map[Status][]Status{
	StatusPending: {StatusApproved},
}

var roleTransitions = map[Role][]Role{
	RoleLearner: {RoleTeacher},
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

// CheckStatusTransition validates a single approval step.
func CheckStatusTransition(from, to Status) error {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: status %q -> %q", ErrInvalidTransition, from, to)
}

// CheckRoleTransition validates a role promotion. Roles only move upwards.
func CheckRoleTransition(from, to Role) error {
	for _, allowed := range roleTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q -> %q", ErrInvalidTransition, from, to)
}
