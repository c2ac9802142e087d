package service

import (
	"context"
	"errors"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"

	"gorm.io/gorm"
)

// authorizeSchool keeps teachers inside their own school. Admins and
// calls without an actor (background jobs, tests) pass.
func authorizeSchool(ctx context.Context, schoolID uint) error {
	actor := util.ActorFromContext(ctx)
	if actor == nil || actor.Role != model.Teacher {
		return nil
	}
	if actor.SchoolID != schoolID {
		return util.Forbiddenf("resource belongs to another school")
	}
	return nil
}

// authorizeChallengeWrite resolves the challenge that owns a write
// target and applies the school scope rule. Soft-deleted challenges
// still anchor their questions, so the lookup ignores the delete
// marker.
func (s *QuestionService) authorizeChallengeWrite(ctx context.Context, challengeID uint) error {
	actor := util.ActorFromContext(ctx)
	if actor == nil || actor.Role != model.Teacher {
		return nil
	}
	challenge, err := s.ChallengeRepo.FindByIDIncludingDeleted(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("challenge")
		}
		return err
	}
	return authorizeSchool(ctx, challenge.SchoolID)
}
