package model

import (
	"gorm.io/datatypes"
)

type Stage string

const (
	StageVocabulary Stage = "vocabulary"
	StageGrammar    Stage = "grammar"
	StageListening  Stage = "listening"
	StageWriting    Stage = "writing"
	StageSpeaking   Stage = "speaking"
)

func (s Stage) Valid() bool {
	switch s {
	case StageVocabulary, StageGrammar, StageListening, StageWriting, StageSpeaking:
		return true
	}
	return false
}

type ValidationMethod string

const (
	// ValidationAuto grades by exact match against the stored answer.
	ValidationAuto ValidationMethod = "AUTO"
	// ValidationIA defers grading to AI-assisted judgment.
	ValidationIA ValidationMethod = "IA"
)

// Question is a single assessment item of one of the 19 pedagogical
// types. The shape of Content/Options/Answer depends on Type and is
// validated at construction by the per-type rule; position is unique
// within the (challenge, stage, phase) bucket.
// swagger:model Question
type Question struct {
	BaseModel
	ChallengeID      uint             `gorm:"not null;uniqueIndex:idx_question_bucket_position" json:"challengeId"`
	Stage            Stage            `gorm:"size:20;not null;uniqueIndex:idx_question_bucket_position" json:"stage"`
	Phase            string           `gorm:"size:50;not null;uniqueIndex:idx_question_bucket_position" json:"phase"` // phase_<n>
	ParentQuestionID uint             `gorm:"not null;default:0;index;uniqueIndex:idx_question_bucket_position" json:"parentQuestionId,omitempty"` // 0 for root questions
	Position         int              `gorm:"not null;uniqueIndex:idx_question_bucket_position" json:"position"`
	Type             string           `gorm:"size:50;not null;index" json:"type"`
	ValidationMethod ValidationMethod `gorm:"size:10;not null;default:AUTO" json:"validationMethod"`
	Points           int              `gorm:"default:0" json:"points"`
	TimeLimit        int              `gorm:"default:0" json:"timeLimit"`   // seconds
	MaxAttempts      int              `gorm:"default:1" json:"maxAttempts"`
	Text             string           `gorm:"type:text" json:"text"`
	Instructions     string           `gorm:"type:text" json:"instructions"`
	Content          datatypes.JSON   `gorm:"type:json" json:"content,omitempty"`
	Options          datatypes.JSON   `gorm:"type:json" json:"options,omitempty"`
	Answer           datatypes.JSON   `gorm:"type:json" json:"answer,omitempty"`
	IsActive         bool             `gorm:"default:true" json:"isActive"`
	Version          int              `gorm:"default:1" json:"version"`
}

// IsRoot reports whether the question has no composite parent.
func (q *Question) IsRoot() bool {
	return q.ParentQuestionID == 0
}

func (Question) TableName() string {
	return "questions"
}

// MediaFile is a stored media object (image/audio/video) referenced by
// question attachments. Duration is probed for audio and video uploads.
type MediaFile struct {
	BaseModel
	ObjectName string  `gorm:"size:255;not null" json:"objectName"`
	URL        string  `gorm:"size:512;not null" json:"url"`
	MimeType   string  `gorm:"size:100" json:"mimeType"`
	Size       int64   `gorm:"default:0" json:"size"`
	Duration   float64 `gorm:"default:0" json:"duration"` // seconds, 0 for images
}

func (MediaFile) TableName() string {
	return "media_files"
}

// QuestionMedia attaches a MediaFile to a Question at an ordinal
// position with a context tag (e.g. "main").
type QuestionMedia struct {
	BaseModel
	QuestionID  uint      `gorm:"not null;index" json:"questionId"`
	MediaFileID uint      `gorm:"not null;index" json:"mediaFileId"`
	Context     string    `gorm:"size:50;default:main" json:"context"`
	Position    int       `gorm:"default:1" json:"position"`
	MediaFile   MediaFile `gorm:"foreignKey:MediaFileID" json:"mediaFile"`
}

func (QuestionMedia) TableName() string {
	return "question_media"
}

// QuestionConfiguration is a free-form key/value metadata pair attached
// to a question (e.g. minDuration=90, totalAssociations=20).
type QuestionConfiguration struct {
	BaseModel
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Key        string `gorm:"size:100;not null" json:"key"`
	Value      string `gorm:"size:255;not null" json:"value"`
}

func (QuestionConfiguration) TableName() string {
	return "question_configurations"
}
