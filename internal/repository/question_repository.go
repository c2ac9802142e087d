package repository

import (
	"errors"
	"lingua_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(tx *gorm.DB, q *model.Question) error {
	return tx.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByIDIncludingDeleted looks a question up regardless of its
// soft-delete state.
func (r *QuestionRepository) FindByIDIncludingDeleted(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Unscoped().First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// MaxPosition returns the highest root-question position in the
// (challenge, stage, phase) bucket, 0 when the bucket is empty.
// Soft-deleted rows still hold their position so freed gaps are never
// reused.
func (r *QuestionRepository) MaxPosition(tx *gorm.DB, challengeID uint, stage model.Stage, phase string) (int, error) {
	var q model.Question
	err := tx.Unscoped().
		Where("challenge_id = ? AND stage = ? AND phase = ? AND parent_question_id = 0", challengeID, stage, phase).
		Order("position desc").
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return q.Position, nil
}

// QuestionFilters narrows root-question listings.
type QuestionFilters struct {
	ChallengeID uint
	Stage       model.Stage
	Phase       string
}

// FindRoots returns root-level questions (no parent) matching the
// filters, ordered by stage, phase and position ascending.
func (r *QuestionRepository) FindRoots(filters QuestionFilters) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Where("parent_question_id = 0")
	if filters.ChallengeID > 0 {
		query = query.Where("challenge_id = ?", filters.ChallengeID)
	}
	if filters.Stage != "" {
		query = query.Where("stage = ?", filters.Stage)
	}
	if filters.Phase != "" {
		query = query.Where("phase = ?", filters.Phase)
	}
	err := query.Order("stage asc, phase asc, position asc").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindSubQuestions(parentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("parent_question_id = ?", parentID).
		Order("position asc, id asc").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindSubQuestionsIncludingDeleted(parentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Unscoped().Where("parent_question_id = ?", parentID).
		Order("position asc, id asc").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Save(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) BulkUpdate(ids []uint, updates map[string]interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Model(&model.Question{}).Where("id IN ?", ids).Updates(updates).Error
}

// SumSubQuestionPoints sums the points of a parent's direct, non-deleted
// sub-questions.
func (r *QuestionRepository) SumSubQuestionPoints(tx *gorm.DB, parentID uint) (int, error) {
	var total int64
	err := tx.Model(&model.Question{}).
		Where("parent_question_id = ?", parentID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return int(total), err
}

// HardDelete physically removes the row, bypassing soft delete.
func (r *QuestionRepository) HardDelete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&model.Question{}, id).Error
}

// HardDeleteSubQuestions physically removes every child of a parent.
func (r *QuestionRepository) HardDeleteSubQuestions(tx *gorm.DB, parentID uint) error {
	return tx.Unscoped().Where("parent_question_id = ?", parentID).Delete(&model.Question{}).Error
}

// FindExpiredSoftDeleted returns soft-deleted questions whose deletion
// timestamp is older than the cutoff; used by the retention sweep.
func (r *QuestionRepository) FindExpiredSoftDeleted(cutoffDays int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < DATE_SUB(NOW(), INTERVAL ? DAY)", cutoffDays).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByChallenge(challengeID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("challenge_id = ?", challengeID).Count(&count).Error
	return count, err
}
