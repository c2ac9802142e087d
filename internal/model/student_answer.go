package model

import "gorm.io/datatypes"

// StudentAnswer is an immutable record of one attempt. The lifecycle
// manager only reads counts and aggregates from it; a question or
// challenge referenced by at least one answer is never hard-deleted.
type StudentAnswer struct {
	BaseModel
	QuestionID   uint           `gorm:"not null;index" json:"questionId"`
	ChallengeID  uint           `gorm:"not null;index" json:"challengeId"`
	StudentID    uint           `gorm:"not null;index" json:"studentId"`
	Snapshot     datatypes.JSON `gorm:"type:json" json:"snapshot"` // question/challenge state at answer time
	IsCorrect    bool           `json:"isCorrect"`
	PointsEarned int            `gorm:"default:0" json:"pointsEarned"`
	Attempt      int            `gorm:"default:1" json:"attempt"`
	TimeSpent    int            `gorm:"default:0" json:"timeSpent"` // seconds
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
