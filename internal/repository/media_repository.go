package repository

import (
	"lingua_edu_backend/internal/model"

	"gorm.io/gorm"
)

type MediaRepository struct {
	DB *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{DB: db}
}

func (r *MediaRepository) CreateFile(tx *gorm.DB, f *model.MediaFile) error {
	return tx.Create(f).Error
}

func (r *MediaRepository) FindFilesByIDs(ids []uint) ([]model.MediaFile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var files []model.MediaFile
	err := r.DB.Where("id IN ?", ids).Find(&files).Error
	return files, err
}

func (r *MediaRepository) Attach(tx *gorm.DB, a *model.QuestionMedia) error {
	return tx.Create(a).Error
}

// AttachmentsByQuestion returns a question's media attachments with
// their files preloaded, ordered by position.
func (r *MediaRepository) AttachmentsByQuestion(questionID uint) ([]model.QuestionMedia, error) {
	var attachments []model.QuestionMedia
	err := r.DB.Preload("MediaFile").
		Where("question_id = ?", questionID).
		Order("position asc").
		Find(&attachments).Error
	return attachments, err
}

// AttachmentsByQuestions collects attachments for a set of questions.
func (r *MediaRepository) AttachmentsByQuestions(tx *gorm.DB, questionIDs []uint) ([]model.QuestionMedia, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var attachments []model.QuestionMedia
	err := tx.Where("question_id IN ?", questionIDs).Find(&attachments).Error
	return attachments, err
}

func (r *MediaRepository) DeleteAttachmentsByQuestions(tx *gorm.DB, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return tx.Unscoped().Where("question_id IN ?", questionIDs).Delete(&model.QuestionMedia{}).Error
}

func (r *MediaRepository) DeleteFiles(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Unscoped().Where("id IN ?", ids).Delete(&model.MediaFile{}).Error
}

// CountAttachmentsForFiles reports how many attachments still reference
// each file outside the given question set; files with zero remaining
// references are exclusively owned and safe to delete.
func (r *MediaRepository) CountAttachmentsForFile(tx *gorm.DB, fileID uint, excludeQuestionIDs []uint) (int64, error) {
	var count int64
	query := tx.Model(&model.QuestionMedia{}).Where("media_file_id = ?", fileID)
	if len(excludeQuestionIDs) > 0 {
		query = query.Where("question_id NOT IN ?", excludeQuestionIDs)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *MediaRepository) SetConfiguration(tx *gorm.DB, c *model.QuestionConfiguration) error {
	return tx.Create(c).Error
}

func (r *MediaRepository) ConfigurationsByQuestion(questionID uint) ([]model.QuestionConfiguration, error) {
	var configs []model.QuestionConfiguration
	err := r.DB.Where("question_id = ?", questionID).Find(&configs).Error
	return configs, err
}

func (r *MediaRepository) DeleteConfigurationsByQuestions(tx *gorm.DB, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return tx.Unscoped().Where("question_id IN ?", questionIDs).Delete(&model.QuestionConfiguration{}).Error
}
