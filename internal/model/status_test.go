package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStatusTransition(t *testing.T) {
	assert.NoError(t, CheckStatusTransition(StatusPending, StatusApproved))
	assert.ErrorIs(t, CheckStatusTransition(StatusApproved, StatusPending), ErrInvalidTransition)
	assert.ErrorIs(t, CheckStatusTransition(StatusApproved, StatusApproved), ErrInvalidTransition)
	assert.ErrorIs(t, CheckStatusTransition(Status("rejected"), StatusApproved), ErrInvalidTransition)
}

func TestCheckRoleTransition(t *testing.T) {
	assert.NoError(t, CheckRoleTransition(RoleLearner, RoleTeacher))
	assert.ErrorIs(t, CheckRoleTransition(RoleAdmin, RoleTeacher), ErrInvalidTransition)
	assert.ErrorIs(t, CheckRoleTransition(RoleTeacher, RoleLearner), ErrInvalidTransition)
	assert.ErrorIs(t, CheckRoleTransition(RoleTeacher, RoleTeacher), ErrInvalidTransition)
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleLearner, RoleTeacher, RoleAdmin} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("user").Valid())
	assert.False(t, Role("").Valid())

	var nobody *Identity
	assert.False(t, nobody.IsAdmin())
	assert.False(t, nobody.IsTeacher())
}
