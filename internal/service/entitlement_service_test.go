package service

import (
	"testing"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementService_PurchaseUnlocksVideos(t *testing.T) {
	f := newFixture(t)
	teacher := f.teacher(t, "0508888888", "Mr T")
	course := f.approvedCourse(t, teacher, "Algebra")
	lesson := f.video(t, teacher, "Algebra", "Lesson 1")
	learner := f.register(t, "0501111111", "Ana", "x123")

	videos, err := f.content.VideosVisibleFor(f.ctx, learner, course.ID)
	require.NoError(t, err)
	require.NotNil(t, videos)
	assert.Empty(t, videos)

	entitlement, err := f.entitlements.Purchase(f.ctx, learner, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, entitlement.CourseID)
	assert.Equal(t, "Algebra", entitlement.CourseName)
	assert.Equal(t, "Mr T", entitlement.TeacherName)
	assert.Equal(t, teacher.Phone, entitlement.TeacherPhone)
	assert.Equal(t, learner.ID, entitlement.LearnerID)
	assert.Equal(t, "Ana", entitlement.LearnerName)
	assert.Equal(t, "0501111111", entitlement.LearnerPhone)

	videos, err = f.content.VideosVisibleFor(f.ctx, learner, course.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, lesson.ID, videos[0].ID)

	owned, err := f.entitlements.ListEntitlementsFor(f.ctx, learner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, entitlement.ID, owned[0].ID)

	ok, err := f.entitlements.HasEntitlement(f.ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEntitlementService_PurchaseRules(t *testing.T) {
	f := newFixture(t)
	teacher := f.teacher(t, "0508888888", "Mr T")
	learner := f.register(t, "0501111111", "Ana", "x123")

	_, err := f.entitlements.Purchase(f.ctx, learner, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.entitlements.Purchase(f.ctx, nil, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.entitlements.ListEntitlementsFor(f.ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	pending, err := f.approval.SubmitCourseRequest(f.ctx, teacher, model.NewCourse{
		Name: "Geometry", TeacherName: "Mr T", TeacherPhone: teacher.Phone,
	})
	require.NoError(t, err)

	_, err = f.entitlements.Purchase(f.ctx, learner, pending.ID)
	require.NoError(t, err, "pending courses can be purchased")
	assert.Equal(t, 1, f.logs.FilterMessage("Purchase of unpublished course").Len())

	_, err = f.entitlements.Purchase(f.ctx, learner, pending.ID)
	require.NoError(t, err, "duplicate purchases are kept")

	owned, err := f.entitlements.ListEntitlementsFor(f.ctx, learner)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Less(t, owned[0].ID, owned[1].ID)
}

func TestEntitlementService_ListIsPerLearner(t *testing.T) {
	f := newFixture(t)
	teacher := f.teacher(t, "0508888888", "Mr T")
	course := f.approvedCourse(t, teacher, "Algebra")

	// одинаковые телефоны не смешивают покупки
	ana := f.register(t, "0501111111", "Ana", "a")
	twin := f.register(t, "0501111111", "Ana", "b")

	_, err := f.entitlements.Purchase(f.ctx, ana, course.ID)
	require.NoError(t, err)

	owned, err := f.entitlements.ListEntitlementsFor(f.ctx, twin)
	require.NoError(t, err)
	assert.Empty(t, owned)

	videos, err := f.content.VideosVisibleFor(f.ctx, twin, course.ID)
	require.NoError(t, err)
	assert.Empty(t, videos)
}
