package repository

import (
	"lingua_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(c *model.Challenge) error {
	return r.DB.Create(c).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChallengeRepository) FindByIDIncludingDeleted(id uint) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.Unscoped().First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChallengeRepository) List(schoolID uint, page, limit int) ([]model.Challenge, int64, error) {
	var challenges []model.Challenge
	var total int64
	query := r.DB.Model(&model.Challenge{})
	if schoolID > 0 {
		query = query.Where("school_id = ?", schoolID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&challenges).Error
	return challenges, total, err
}

func (r *ChallengeRepository) Save(c *model.Challenge) error {
	return r.DB.Save(c).Error
}

func (r *ChallengeRepository) HardDelete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&model.Challenge{}, id).Error
}
