package service

import (
	"context"
	"errors"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"lingua_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeleteBranch names which arm of the safe-delete decision ran.
type DeleteBranch string

const (
	// DeleteSoft hides the question but keeps every row; taken when
	// recorded answers reference the question or its sub-questions.
	DeleteSoft DeleteBranch = "soft"
	// DeleteHard removes the question, its sub-questions, its
	// configurations and its exclusively-owned media for good.
	DeleteHard DeleteBranch = "hard"
)

// DeleteResult reports what SafeDelete actually did.
type DeleteResult struct {
	QuestionID          uint         `json:"questionId"`
	Branch              DeleteBranch `json:"branch"`
	SubQuestionsDeleted int          `json:"subQuestionsDeleted"`
	MediaFilesDeleted   int          `json:"mediaFilesDeleted"`
	AnswersPreserved    int64        `json:"answersPreserved"`
}

// SafeDelete removes a question without ever orphaning recorded
// answers: if any answer references the question or one of its
// sub-questions the whole subtree is soft-deleted (and deactivated),
// otherwise everything is destroyed, shared media files excepted.
// Deleting a sub-question applies the same rule to the single row and
// recomputes the parent's points.
func (s *QuestionService) SafeDelete(ctx context.Context, id uint) (*DeleteResult, error) {
	question, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("question")
		}
		return nil, err
	}
	if err := s.authorizeChallengeWrite(ctx, question.ChallengeID); err != nil {
		return nil, err
	}
	if !question.IsRoot() {
		return s.deleteSubQuestion(ctx, question)
	}

	children, err := s.Repo.FindSubQuestions(question.ID)
	if err != nil {
		return nil, err
	}
	questionIDs := make([]uint, 0, len(children)+1)
	questionIDs = append(questionIDs, question.ID)
	for _, child := range children {
		questionIDs = append(questionIDs, child.ID)
	}

	answered, err := s.AnswerRepo.CountByQuestions(questionIDs)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{
		QuestionID:          question.ID,
		SubQuestionsDeleted: len(children),
		AnswersPreserved:    answered,
	}

	if answered > 0 {
		result.Branch = DeleteSoft
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			// Soft-deleted rows are also deactivated.
			if err := tx.Model(&model.Question{}).
				Where("id = ? OR parent_question_id = ?", question.ID, question.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
			if err := tx.Where("parent_question_id = ?", question.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			return tx.Delete(&model.Question{}, question.ID).Error
		})
	} else {
		result.Branch = DeleteHard
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			exclusive, err := s.Media.CollectExclusiveFiles(tx, questionIDs)
			if err != nil {
				return err
			}
			result.MediaFilesDeleted = len(exclusive)

			if err := s.MediaRepo.DeleteAttachmentsByQuestions(tx, questionIDs); err != nil {
				return err
			}
			if err := s.Media.DeleteMediaFiles(ctx, tx, exclusive); err != nil {
				return err
			}
			if err := s.MediaRepo.DeleteConfigurationsByQuestions(tx, questionIDs); err != nil {
				return err
			}
			if err := s.Repo.HardDeleteSubQuestions(tx, question.ID); err != nil {
				return err
			}
			return s.Repo.HardDelete(tx, question.ID)
		})
	}
	if err != nil {
		return nil, err
	}

	monitoring.QuestionsDeleted.WithLabelValues(string(result.Branch)).Inc()
	s.invalidateChallengeCache(ctx, question.ChallengeID)

	logger.Log.Info("question deleted",
		zap.Uint("questionId", question.ID),
		zap.String("branch", string(result.Branch)),
		zap.Int("subQuestions", result.SubQuestionsDeleted),
		zap.Int64("answersPreserved", answered),
	)
	return result, nil
}

// deleteSubQuestion removes one child under the same answer-preserving
// rule and recomputes the parent's points in the same transaction.
func (s *QuestionService) deleteSubQuestion(ctx context.Context, question *model.Question) (*DeleteResult, error) {
	answered, err := s.AnswerRepo.CountByQuestion(question.ID)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{
		QuestionID:       question.ID,
		AnswersPreserved: answered,
	}

	if answered > 0 {
		result.Branch = DeleteSoft
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.Question{}).
				Where("id = ?", question.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Question{}, question.ID).Error; err != nil {
				return err
			}
			return s.recalculateParentPoints(tx, question.ParentQuestionID)
		})
	} else {
		result.Branch = DeleteHard
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			ids := []uint{question.ID}
			exclusive, err := s.Media.CollectExclusiveFiles(tx, ids)
			if err != nil {
				return err
			}
			result.MediaFilesDeleted = len(exclusive)

			if err := s.MediaRepo.DeleteAttachmentsByQuestions(tx, ids); err != nil {
				return err
			}
			if err := s.Media.DeleteMediaFiles(ctx, tx, exclusive); err != nil {
				return err
			}
			if err := s.MediaRepo.DeleteConfigurationsByQuestions(tx, ids); err != nil {
				return err
			}
			if err := s.Repo.HardDelete(tx, question.ID); err != nil {
				return err
			}
			return s.recalculateParentPoints(tx, question.ParentQuestionID)
		})
	}
	if err != nil {
		return nil, err
	}

	monitoring.QuestionsDeleted.WithLabelValues(string(result.Branch)).Inc()
	s.invalidateChallengeCache(ctx, question.ChallengeID)

	logger.Log.Info("sub-question deleted",
		zap.Uint("questionId", question.ID),
		zap.Uint("parentQuestionId", question.ParentQuestionID),
		zap.String("branch", string(result.Branch)),
		zap.Int64("answersPreserved", answered),
	)
	return result, nil
}

// Restore brings a soft-deleted question and its sub-questions back,
// reactivating what the soft delete deactivated.
func (s *QuestionService) Restore(ctx context.Context, id uint) (*FormattedQuestion, error) {
	question, err := s.Repo.FindByIDIncludingDeleted(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("question")
		}
		return nil, err
	}
	if err := s.authorizeChallengeWrite(ctx, question.ChallengeID); err != nil {
		return nil, err
	}
	if !question.DeletedAt.Valid {
		return nil, util.Validationf("question %d is not deleted", id)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Model(&model.Question{}).
			Where("parent_question_id = ?", question.ID).
			Updates(map[string]interface{}{"deleted_at": nil, "is_active": true}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Model(&model.Question{}).
			Where("id = ?", question.ID).
			Updates(map[string]interface{}{"deleted_at": nil, "is_active": true}).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChallengeCache(ctx, question.ChallengeID)
	return s.GetQuestion(ctx, question.ID)
}

// SetActive toggles visibility for a question and, for composite
// parents, its sub-questions.
func (s *QuestionService) SetActive(ctx context.Context, id uint, active bool) (*FormattedQuestion, error) {
	question, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("question")
		}
		return nil, err
	}
	if err := s.authorizeChallengeWrite(ctx, question.ChallengeID); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Question{}).
			Where("id = ?", question.ID).
			Update("is_active", active).Error; err != nil {
			return err
		}
		return tx.Model(&model.Question{}).
			Where("parent_question_id = ?", question.ID).
			Update("is_active", active).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChallengeCache(ctx, question.ChallengeID)
	return s.GetQuestion(ctx, question.ID)
}

// RecalculateParentPoints rewrites a composite parent's points as the
// sum of its live sub-questions.
func (s *QuestionService) RecalculateParentPoints(ctx context.Context, parentID uint) error {
	parent, err := s.Repo.FindByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("question")
		}
		return err
	}
	if err := s.authorizeChallengeWrite(ctx, parent.ChallengeID); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.recalculateParentPoints(tx, parentID)
	})
}

func (s *QuestionService) recalculateParentPoints(tx *gorm.DB, parentID uint) error {
	total, err := s.Repo.SumSubQuestionPoints(tx, parentID)
	if err != nil {
		return err
	}
	return tx.Model(&model.Question{}).
		Where("id = ?", parentID).
		Update("points", total).Error
}

// PurgeExpired hard-deletes soft-deleted questions past the retention
// window, skipping any that still hold recorded answers. Returns the
// number of questions purged.
func (s *QuestionService) PurgeExpired(ctx context.Context, cutoffDays int) (int, error) {
	expired, err := s.Repo.FindExpiredSoftDeleted(cutoffDays)
	if err != nil {
		return 0, err
	}

	purged := 0
	for i := range expired {
		question := &expired[i]
		if question.ParentQuestionID != 0 {
			// Sub-questions go with their parent.
			continue
		}

		children, err := s.Repo.FindSubQuestionsIncludingDeleted(question.ID)
		if err != nil {
			return purged, err
		}
		questionIDs := []uint{question.ID}
		for _, child := range children {
			questionIDs = append(questionIDs, child.ID)
		}

		answered, err := s.AnswerRepo.CountByQuestions(questionIDs)
		if err != nil {
			return purged, err
		}
		if answered > 0 {
			continue
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			exclusive, err := s.Media.CollectExclusiveFiles(tx, questionIDs)
			if err != nil {
				return err
			}
			if err := s.MediaRepo.DeleteAttachmentsByQuestions(tx, questionIDs); err != nil {
				return err
			}
			if err := s.Media.DeleteMediaFiles(ctx, tx, exclusive); err != nil {
				return err
			}
			if err := s.MediaRepo.DeleteConfigurationsByQuestions(tx, questionIDs); err != nil {
				return err
			}
			if err := s.Repo.HardDeleteSubQuestions(tx, question.ID); err != nil {
				return err
			}
			return s.Repo.HardDelete(tx, question.ID)
		})
		if err != nil {
			logger.Log.Error("retention purge failed for question",
				zap.Uint("questionId", question.ID), zap.Error(err))
			continue
		}
		purged++
	}

	if purged > 0 {
		logger.Log.Info("retention purge completed", zap.Int("purged", purged))
	}
	return purged, nil
}
