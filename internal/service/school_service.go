package service

import (
	"errors"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"

	"gorm.io/gorm"
)

type SchoolService struct {
	Repo     *repository.SchoolRepository
	UserRepo *repository.UserRepository
}

func NewSchoolService(repo *repository.SchoolRepository, userRepo *repository.UserRepository) *SchoolService {
	return &SchoolService{Repo: repo, UserRepo: userRepo}
}

type CreateSchoolRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
}

func (s *SchoolService) CreateSchool(req CreateSchoolRequest) (*model.School, error) {
	school := &model.School{
		Name:     req.Name,
		City:     req.City,
		IsActive: true,
	}
	if err := s.Repo.Create(school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) GetSchool(id uint) (*model.School, error) {
	school, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("school")
		}
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) ListSchools(page, limit int) ([]model.School, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(page, limit)
}

func (s *SchoolService) ListStudents(schoolID uint, page, limit int) ([]model.User, int64, error) {
	if _, err := s.GetSchool(schoolID); err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.ListBySchool(schoolID, model.Student, page, limit)
}
