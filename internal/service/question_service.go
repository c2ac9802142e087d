package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"lingua_edu_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPhase = "phase_1"

	// Creations in the same bucket race on max-position; the unique
	// index turns the loser into a duplicate-key error that is retried.
	positionRetries = 3

	questionCacheTTL = 10 * time.Minute
)

type QuestionService struct {
	Repo          *repository.QuestionRepository
	ChallengeRepo *repository.ChallengeRepository
	AnswerRepo    *repository.StudentAnswerRepository
	SchoolRepo    *repository.SchoolRepository
	MediaRepo     *repository.MediaRepository
	Media         *MediaService
	Redis         *redis.Client
	DB            *gorm.DB
}

func NewQuestionService(
	repo *repository.QuestionRepository,
	challengeRepo *repository.ChallengeRepository,
	answerRepo *repository.StudentAnswerRepository,
	schoolRepo *repository.SchoolRepository,
	mediaRepo *repository.MediaRepository,
	media *MediaService,
	rdb *redis.Client,
	db *gorm.DB,
) *QuestionService {
	return &QuestionService{
		Repo:          repo,
		ChallengeRepo: challengeRepo,
		AnswerRepo:    answerRepo,
		SchoolRepo:    schoolRepo,
		MediaRepo:     mediaRepo,
		Media:         media,
		Redis:         rdb,
		DB:            db,
	}
}

// CreateQuestion runs the shared creation pipeline: validate the
// challenge and the type-specific invariants, fill registry defaults,
// then allocate the next position and persist the question (with its
// media attachments and child sub-questions) in one transaction.
func (s *QuestionService) CreateQuestion(ctx context.Context, input CreateQuestionInput) (*FormattedQuestion, error) {
	if !input.Stage.Valid() {
		return nil, util.Validationf("unknown stage %q", input.Stage)
	}
	if input.Phase == "" {
		input.Phase = defaultPhase
	}

	rule, ok := creationRules[input.Type]
	if !ok {
		return nil, util.Validationf("unknown question type %q", input.Type)
	}
	if err := rule(&input); err != nil {
		return nil, err
	}

	challenge, err := s.ChallengeRepo.FindByID(input.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("challenge")
		}
		return nil, err
	}
	if err := authorizeSchool(ctx, challenge.SchoolID); err != nil {
		return nil, err
	}
	if input.ParentQuestionID > 0 {
		if _, err := s.Repo.FindByID(input.ParentQuestionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundf("parent question")
			}
			return nil, err
		}
	}

	spec := model.TypeSpec(input.Type)
	if input.ValidationMethod == "" {
		input.ValidationMethod = spec.DefaultValidation
	}
	if input.Text == "" {
		input.Text = spec.DefaultText
	}
	if input.Instructions == "" {
		input.Instructions = spec.DefaultInstructions
	}
	if input.MaxAttempts <= 0 {
		input.MaxAttempts = 1
	}

	// A composite parent's points are always the sum of its children;
	// whatever the caller supplied is overwritten.
	if spec.HasSubQuestions {
		total := 0
		for _, sub := range input.SubQuestions {
			total += sub.Points
		}
		input.Points = total
	}

	content, err := toJSON(input.Content)
	if err != nil {
		return nil, err
	}
	options, err := toJSON(input.Options)
	if err != nil {
		return nil, err
	}
	answer, err := toJSON(input.Answer)
	if err != nil {
		return nil, err
	}

	var question *model.Question
	for attempt := 0; attempt < positionRetries; attempt++ {
		question = &model.Question{
			ChallengeID:      input.ChallengeID,
			Stage:            input.Stage,
			Phase:            input.Phase,
			Type:             input.Type,
			ValidationMethod: input.ValidationMethod,
			Points:           input.Points,
			TimeLimit:        input.TimeLimit,
			MaxAttempts:      input.MaxAttempts,
			Text:             input.Text,
			Instructions:     input.Instructions,
			Content:          content,
			Options:          options,
			Answer:           answer,
			ParentQuestionID: input.ParentQuestionID,
			IsActive:         true,
			Version:          1,
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			maxPos, err := s.Repo.MaxPosition(tx, input.ChallengeID, input.Stage, input.Phase)
			if err != nil {
				return err
			}
			question.Position = maxPos + 1

			if err := s.Repo.Create(tx, question); err != nil {
				return err
			}

			for key, value := range input.Configuration {
				config := &model.QuestionConfiguration{
					QuestionID: question.ID,
					Key:        key,
					Value:      value,
				}
				if err := s.MediaRepo.SetConfiguration(tx, config); err != nil {
					return err
				}
			}

			if err := s.Media.AttachMediaFiles(tx, question.ID, input.Media); err != nil {
				return err
			}

			for i, sub := range input.SubQuestions {
				if err := s.createSubQuestion(tx, question, i+1, sub); err != nil {
					return err
				}
			}

			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < positionRetries-1 {
			logger.Log.Warn("position conflict, retrying",
				zap.Uint("challengeId", input.ChallengeID),
				zap.String("stage", string(input.Stage)),
				zap.String("phase", input.Phase),
			)
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	monitoring.QuestionsCreated.WithLabelValues(input.Type).Inc()
	s.invalidateChallengeCache(ctx, input.ChallengeID)

	return s.GetQuestion(ctx, question.ID)
}

func (s *QuestionService) createSubQuestion(tx *gorm.DB, parent *model.Question, position int, sub SubQuestionInput) error {
	subSpec := model.TypeSpec(sub.Type)

	options, err := toJSON(sub.Options)
	if err != nil {
		return err
	}
	answer, err := toJSON(sub.Answer)
	if err != nil {
		return err
	}

	child := &model.Question{
		ChallengeID:      parent.ChallengeID,
		Stage:            parent.Stage,
		Phase:            parent.Phase,
		Position:         position,
		Type:             sub.Type,
		ValidationMethod: subSpec.DefaultValidation,
		Points:           sub.Points,
		MaxAttempts:      parent.MaxAttempts,
		Text:             sub.Text,
		Instructions:     subSpec.DefaultInstructions,
		Options:          options,
		Answer:           answer,
		ParentQuestionID: parent.ID,
		IsActive:         true,
		Version:          1,
	}
	return s.Repo.Create(tx, child)
}

// ListQuestions returns formatted root questions matching the filters,
// ordered by stage, phase, position. Unfiltered per-challenge listings
// are served from the redis cache.
func (s *QuestionService) ListQuestions(ctx context.Context, filters repository.QuestionFilters) ([]FormattedQuestion, error) {
	cacheable := filters.ChallengeID > 0 && filters.Stage == "" && filters.Phase == ""
	cacheKey := s.challengeCacheKey(filters.ChallengeID)

	if cacheable && s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []FormattedQuestion
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	questions, err := s.Repo.FindRoots(filters)
	if err != nil {
		return nil, err
	}

	formatted := make([]FormattedQuestion, 0, len(questions))
	for i := range questions {
		fq, err := s.enrichQuestion(&questions[i], false)
		if err != nil {
			return nil, err
		}
		formatted = append(formatted, *fq)
	}

	if cacheable && s.Redis != nil {
		if data, err := json.Marshal(formatted); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.Error(err))
			}
		}
	}

	return formatted, nil
}

// GetQuestion returns one formatted question with its parent and
// challenge context. Soft-deleted questions stay reachable by direct
// id lookup, carrying their deletedAt marker; only listings hide them.
func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*FormattedQuestion, error) {
	question, err := s.Repo.FindByIDIncludingDeleted(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("question")
		}
		return nil, err
	}
	return s.enrichQuestion(question, true)
}

// GetSchoolStats aggregates recorded answers by question for the
// school's students.
func (s *QuestionService) GetSchoolStats(schoolID uint, questionID uint) ([]repository.QuestionStats, error) {
	if _, err := s.SchoolRepo.FindByID(schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("school")
		}
		return nil, err
	}
	return s.AnswerRepo.SchoolStats(schoolID, questionID)
}

// UpdateQuestionRequest is the generic field patch. Nil fields are left
// untouched.
type UpdateQuestionRequest struct {
	Points           *int                    `json:"points"`
	TimeLimit        *int                    `json:"timeLimit"`
	MaxAttempts      *int                    `json:"maxAttempts"`
	Text             *string                 `json:"text"`
	Instructions     *string                 `json:"instructions"`
	ValidationMethod *model.ValidationMethod `json:"validationMethod"`
	IsActive         *bool                   `json:"isActive"`
	Content          interface{}             `json:"content"`
	Options          []string                `json:"options"`
	Answer           interface{}             `json:"answer"`
}

// UpdateQuestion applies a generic patch. Points of a composite parent
// are derived, never settable; a points change on a sub-question
// recomputes the parent total; content-affecting edits on an answered
// question bump its version.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id uint, req UpdateQuestionRequest) (*FormattedQuestion, error) {
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

	children, err := s.Repo.FindSubQuestions(question.ID)
	if err != nil {
		return nil, err
	}
	if req.Points != nil && len(children) > 0 {
		return nil, util.Validationf("points of a composite question are derived from its sub-questions")
	}

	contentChanged := false
	pointsChanged := false

	if req.Points != nil && *req.Points != question.Points {
		if *req.Points < 0 {
			return nil, util.Validationf("points must not be negative")
		}
		question.Points = *req.Points
		pointsChanged = true
	}
	if req.TimeLimit != nil {
		question.TimeLimit = *req.TimeLimit
	}
	if req.MaxAttempts != nil {
		if *req.MaxAttempts <= 0 {
			return nil, util.Validationf("maxAttempts must be positive")
		}
		question.MaxAttempts = *req.MaxAttempts
	}
	if req.Text != nil {
		question.Text = *req.Text
		contentChanged = true
	}
	if req.Instructions != nil {
		question.Instructions = *req.Instructions
	}
	if req.ValidationMethod != nil {
		question.ValidationMethod = *req.ValidationMethod
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if req.Options != nil || req.Answer != nil {
		options := req.Options
		if options == nil {
			options = decodeStringList(question.Options)
		}
		answer := req.Answer
		if answer == nil {
			answer = decodeJSON(question.Answer)
		}
		if answerStr, ok := answer.(string); ok && len(options) > 0 {
			found := false
			for _, option := range options {
				if option == answerStr {
					found = true
					break
				}
			}
			if !found {
				return nil, util.Validationf("answer %q is not one of the options", answerStr)
			}
		}
		if req.Options != nil {
			if question.Options, err = toJSON(req.Options); err != nil {
				return nil, err
			}
			contentChanged = true
		}
		if req.Answer != nil {
			if question.Answer, err = toJSON(req.Answer); err != nil {
				return nil, err
			}
			contentChanged = true
		}
	}
	if req.Content != nil {
		if question.Content, err = toJSON(req.Content); err != nil {
			return nil, err
		}
		contentChanged = true
	}

	// Answers recorded against the old content no longer reflect the
	// question; the version marks that boundary.
	if contentChanged {
		answered, err := s.AnswerRepo.CountByQuestion(question.ID)
		if err != nil {
			return nil, err
		}
		if answered > 0 {
			question.Version++
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if pointsChanged && question.ParentQuestionID > 0 {
			return s.recalculateParentPoints(tx, question.ParentQuestionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChallengeCache(ctx, question.ChallengeID)
	return s.GetQuestion(ctx, question.ID)
}

// BulkUpdateQuestions patches a whitelisted set of scalar fields across
// many questions at once.
func (s *QuestionService) BulkUpdateQuestions(ctx context.Context, ids []uint, updates map[string]interface{}) error {
	if len(ids) == 0 {
		return util.Validationf("ids must not be empty")
	}
	allowed := map[string]bool{
		"is_active":         true,
		"time_limit":        true,
		"max_attempts":      true,
		"validation_method": true,
	}
	filtered := make(map[string]interface{}, len(updates))
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return util.Validationf("no updatable fields supplied")
	}
	checked := make(map[uint]bool)
	for _, id := range ids {
		question, err := s.Repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundf("question")
			}
			return err
		}
		if !checked[question.ChallengeID] {
			checked[question.ChallengeID] = true
			if err := s.authorizeChallengeWrite(ctx, question.ChallengeID); err != nil {
				return err
			}
		}
	}
	if err := s.Repo.BulkUpdate(ids, filtered); err != nil {
		return err
	}
	s.invalidateAllQuestionCaches(ctx, ids)
	return nil
}

func (s *QuestionService) challengeCacheKey(challengeID uint) string {
	return fmt.Sprintf("questions:challenge:%d", challengeID)
}

func (s *QuestionService) invalidateChallengeCache(ctx context.Context, challengeID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, s.challengeCacheKey(challengeID)).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}

func (s *QuestionService) invalidateAllQuestionCaches(ctx context.Context, questionIDs []uint) {
	seen := make(map[uint]bool)
	for _, id := range questionIDs {
		question, err := s.Repo.FindByIDIncludingDeleted(id)
		if err != nil {
			continue
		}
		if !seen[question.ChallengeID] {
			seen[question.ChallengeID] = true
			s.invalidateChallengeCache(ctx, question.ChallengeID)
		}
	}
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func decodeJSON(data datatypes.JSON) interface{} {
	if len(data) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

func decodeStringList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	return list
}
