package service

import (
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

// Action is a mutating or restricted engine operation checked by a Policy.
type Action string

const (
	ActionSubmitTeacherRequest  Action = "teacher_request.submit"
	ActionApproveTeacherRequest Action = "teacher_request.approve"
	ActionReviewRequests        Action = "requests.review"
	ActionSubmitCourse          Action = "course.submit"
	ActionApproveCourse         Action = "course.approve"
	ActionListOwnCourses        Action = "course.list_own"
	ActionCreateVideo           Action = "video.create"
	ActionPurchase              Action = "course.purchase"
	ActionListEntitlements      Action = "entitlement.list"
	ActionViewVideos            Action = "video.view"
	ActionAddQuestion           Action = "question.add"
)

// Target is the object an action applies to. Phone is set for actions owned by a phone number.
type Target struct {
	ID    int64
	Phone string
}

// Policy decides whether caller may perform action on target. A nil caller is anonymous.
type Policy interface {
	Authorize(caller *model.Identity, action Action, target Target) error
}

// RolePolicy is the default role based policy.
type RolePolicy struct{}

func (RolePolicy) Authorize(caller *model.Identity, action Action, target Target) error {
	if caller == nil {
		return deny(action, "anonymous caller")
	}
	if caller.IsAdmin() {
		return nil
	}

	switch action {
	case ActionPurchase, ActionListEntitlements, ActionViewVideos:
		return nil

	case ActionSubmitTeacherRequest:
		if caller.Phone == target.Phone {
			return nil
		}
		return deny(action, "phone belongs to another identity")

	case ActionSubmitCourse, ActionCreateVideo:
		if !caller.IsTeacher() {
			return deny(action, "caller is not a teacher")
		}
		if caller.Phone != target.Phone {
			return deny(action, "teacher phone does not match caller")
		}
		return nil

	case ActionListOwnCourses, ActionAddQuestion:
		if caller.IsTeacher() {
			return nil
		}
		return deny(action, "caller is not a teacher")
	}

	// approve и review только для админа
	return deny(action, "admin only")
}

// AllowAll permits every action, matching an engine without access control.
type AllowAll struct{}

func (AllowAll) Authorize(*model.Identity, Action, Target) error {
	return nil
}

func deny(action Action, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrUnauthorized, action, reason)
}
