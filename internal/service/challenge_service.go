package service

import (
	"context"
	"errors"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"

	"gorm.io/gorm"
)

type ChallengeService struct {
	Repo       *repository.ChallengeRepository
	Questions  *QuestionService
	SchoolRepo *repository.SchoolRepository
	AnswerRepo *repository.StudentAnswerRepository
	DB         *gorm.DB
}

func NewChallengeService(
	repo *repository.ChallengeRepository,
	questions *QuestionService,
	schoolRepo *repository.SchoolRepository,
	answerRepo *repository.StudentAnswerRepository,
	db *gorm.DB,
) *ChallengeService {
	return &ChallengeService{
		Repo:       repo,
		Questions:  questions,
		SchoolRepo: schoolRepo,
		AnswerRepo: answerRepo,
		DB:         db,
	}
}

type CreateChallengeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SchoolID    uint   `json:"schoolId" binding:"required"`
}

func (s *ChallengeService) CreateChallenge(ctx context.Context, req CreateChallengeRequest) (*model.Challenge, error) {
	if err := authorizeSchool(ctx, req.SchoolID); err != nil {
		return nil, err
	}
	if _, err := s.SchoolRepo.FindByID(req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("school")
		}
		return nil, err
	}
	challenge := &model.Challenge{
		Name:        req.Name,
		Description: req.Description,
		SchoolID:    req.SchoolID,
		IsActive:    true,
	}
	if err := s.Repo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) GetChallenge(id uint) (*model.Challenge, error) {
	challenge, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("challenge")
		}
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) ListChallenges(schoolID uint, page, limit int) ([]model.Challenge, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(schoolID, page, limit)
}

type UpdateChallengeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (s *ChallengeService) UpdateChallenge(ctx context.Context, id uint, req UpdateChallengeRequest) (*model.Challenge, error) {
	challenge, err := s.GetChallenge(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeSchool(ctx, challenge.SchoolID); err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, util.Validationf("name must not be empty")
		}
		challenge.Name = *req.Name
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.IsActive != nil {
		challenge.IsActive = *req.IsActive
	}
	if err := s.Repo.Save(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// ChallengeDeleteResult reports what a challenge-level SafeDelete did.
type ChallengeDeleteResult struct {
	ChallengeID       uint         `json:"challengeId"`
	Branch            DeleteBranch `json:"branch"`
	QuestionsDeleted  int          `json:"questionsDeleted"`
	MediaFilesDeleted int          `json:"mediaFilesDeleted"`
	AnswersPreserved  int64        `json:"answersPreserved"`
}

// SafeDelete applies the same answer-preserving rule as question
// deletion at challenge scope: any recorded answer anywhere in the
// challenge soft-deletes the whole tree, otherwise the challenge and
// every question under it are destroyed.
func (s *ChallengeService) SafeDelete(ctx context.Context, id uint) (*ChallengeDeleteResult, error) {
	challenge, err := s.GetChallenge(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeSchool(ctx, challenge.SchoolID); err != nil {
		return nil, err
	}

	answered, err := s.AnswerRepo.CountByChallenge(challenge.ID)
	if err != nil {
		return nil, err
	}

	result := &ChallengeDeleteResult{ChallengeID: challenge.ID, AnswersPreserved: answered}

	if answered > 0 {
		result.Branch = DeleteSoft
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			// Deactivate alongside the soft delete, as with questions.
			if err := tx.Model(&model.Question{}).
				Where("challenge_id = ?", challenge.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Challenge{}).
				Where("id = ?", challenge.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
			if err := tx.Where("challenge_id = ?", challenge.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			return tx.Delete(&model.Challenge{}, challenge.ID).Error
		})
	} else {
		result.Branch = DeleteHard
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			var questionIDs []uint
			if err := tx.Unscoped().Model(&model.Question{}).
				Where("challenge_id = ?", challenge.ID).
				Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				exclusive, err := s.Questions.Media.CollectExclusiveFiles(tx, questionIDs)
				if err != nil {
					return err
				}
				result.MediaFilesDeleted = len(exclusive)
				if err := s.Questions.MediaRepo.DeleteAttachmentsByQuestions(tx, questionIDs); err != nil {
					return err
				}
				if err := s.Questions.Media.DeleteMediaFiles(ctx, tx, exclusive); err != nil {
					return err
				}
				if err := s.Questions.MediaRepo.DeleteConfigurationsByQuestions(tx, questionIDs); err != nil {
					return err
				}
				if err := tx.Unscoped().Where("challenge_id = ?", challenge.ID).Delete(&model.Question{}).Error; err != nil {
					return err
				}
				result.QuestionsDeleted = len(questionIDs)
			}
			return s.Repo.HardDelete(tx, challenge.ID)
		})
	}
	if err != nil {
		return nil, err
	}

	s.Questions.invalidateChallengeCache(ctx, challenge.ID)
	return result, nil
}
