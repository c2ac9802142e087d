package repository

import (
	"lingua_edu_backend/internal/model"

	"gorm.io/gorm"
)

type StudentAnswerRepository struct {
	DB *gorm.DB
}

func NewStudentAnswerRepository(db *gorm.DB) *StudentAnswerRepository {
	return &StudentAnswerRepository{DB: db}
}

func (r *StudentAnswerRepository) CountByQuestion(questionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentAnswer{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

// CountByQuestions counts answers referencing any of the given
// questions; used by the cascade decision for composite deletes.
func (r *StudentAnswerRepository) CountByQuestions(questionIDs []uint) (int64, error) {
	if len(questionIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.StudentAnswer{}).Where("question_id IN ?", questionIDs).Count(&count).Error
	return count, err
}

func (r *StudentAnswerRepository) CountByChallenge(challengeID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentAnswer{}).Where("challenge_id = ?", challengeID).Count(&count).Error
	return count, err
}

// QuestionStats is one row of the per-question school aggregate.
type QuestionStats struct {
	QuestionID    uint    `json:"questionId"`
	QuestionType  string  `json:"questionType"`
	TotalAttempts int64   `json:"totalAttempts"`
	CorrectCount  int64   `json:"correctCount"`
	AvgTimeSpent  float64 `json:"avgTimeSpent"`
	SuccessRate   float64 `json:"successRate"`
}

// SchoolStats aggregates recorded answers by question for students of
// a school. questionID narrows the aggregate to one question when > 0.
func (r *StudentAnswerRepository) SchoolStats(schoolID uint, questionID uint) ([]QuestionStats, error) {
	var stats []QuestionStats
	query := `
		SELECT sa.question_id AS question_id,
		       q.type AS question_type,
		       COUNT(*) AS total_attempts,
		       SUM(CASE WHEN sa.is_correct THEN 1 ELSE 0 END) AS correct_count,
		       AVG(sa.time_spent) AS avg_time_spent,
		       SUM(CASE WHEN sa.is_correct THEN 1 ELSE 0 END) / COUNT(*) AS success_rate
		FROM student_answers sa
		JOIN users u ON u.id = sa.student_id AND u.deleted_at IS NULL
		JOIN questions q ON q.id = sa.question_id
		WHERE u.school_id = ? AND u.role = 'student'`
	args := []interface{}{schoolID}
	if questionID > 0 {
		query += " AND sa.question_id = ?"
		args = append(args, questionID)
	}
	query += " GROUP BY sa.question_id, q.type ORDER BY sa.question_id"

	err := r.DB.Raw(query, args...).Scan(&stats).Error
	return stats, err
}
