package service

import (
	"context"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func actorContext(role model.UserRole, schoolID uint) context.Context {
	return util.WithActor(context.Background(), &util.Claims{
		UserID:   1,
		Role:     role,
		SchoolID: schoolID,
	})
}

func TestSchoolScopeRule(t *testing.T) {
	const school = uint(7)

	t.Run("teacher of the same school passes", func(t *testing.T) {
		assert.NoError(t, authorizeSchool(actorContext(model.Teacher, school), school))
	})

	t.Run("teacher of another school is rejected", func(t *testing.T) {
		err := authorizeSchool(actorContext(model.Teacher, 8), school)
		assert.True(t, util.IsForbidden(err))
	})

	t.Run("admins cross school boundaries", func(t *testing.T) {
		assert.NoError(t, authorizeSchool(actorContext(model.Admin, 8), school))
	})

	t.Run("calls without an actor pass", func(t *testing.T) {
		assert.NoError(t, authorizeSchool(context.Background(), school))
	})
}
