package controller

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QuestionController handles question lifecycle HTTP requests.
type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// questionRequest is what every typed creation DTO satisfies.
type questionRequest interface {
	ToInput() service.CreateQuestionInput
}

func (qc *QuestionController) create(ctx *gin.Context, req questionRequest) {
	question, err := qc.QuestionService.CreateQuestion(ctx.Request.Context(), req.ToInput())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// CreateImageToMultipleChoices godoc
// @Summary Create an image-to-multiple-choices question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ImageToMultipleChoicesRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/image-to-multiple-choices [post]
func (qc *QuestionController) CreateImageToMultipleChoices(ctx *gin.Context) {
	var req service.ImageToMultipleChoicesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateWordbox godoc
// @Summary Create a wordbox question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.WordboxRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/wordbox [post]
func (qc *QuestionController) CreateWordbox(ctx *gin.Context) {
	var req service.WordboxRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateWordAssociations godoc
// @Summary Create a word-associations question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.WordAssociationsRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/word-associations [post]
func (qc *QuestionController) CreateWordAssociations(ctx *gin.Context) {
	var req service.WordAssociationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateMemoryMatch godoc
// @Summary Create a memory-match question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.MemoryMatchRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/memory-match [post]
func (qc *QuestionController) CreateMemoryMatch(ctx *gin.Context) {
	var req service.MemoryMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateUnscramble godoc
// @Summary Create an unscramble question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.UnscrambleRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/unscramble [post]
func (qc *QuestionController) CreateUnscramble(ctx *gin.Context) {
	var req service.UnscrambleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateTenses godoc
// @Summary Create a tenses question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.TensesRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/tenses [post]
func (qc *QuestionController) CreateTenses(ctx *gin.Context) {
	var req service.TensesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateTagIt godoc
// @Summary Create a tag-it question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.TagItRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/tag-it [post]
func (qc *QuestionController) CreateTagIt(ctx *gin.Context) {
	var req service.TagItRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateFillInTheBlanks godoc
// @Summary Create a fill-in-the-blanks question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.FillInTheBlanksRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/fill-in-the-blanks [post]
func (qc *QuestionController) CreateFillInTheBlanks(ctx *gin.Context) {
	var req service.FillInTheBlanksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateMultipleChoice godoc
// @Summary Create a multiple-choice question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.MultipleChoiceRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/multiple-choice [post]
func (qc *QuestionController) CreateMultipleChoice(ctx *gin.Context) {
	var req service.MultipleChoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateTrueFalse godoc
// @Summary Create a true/false question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.TrueFalseRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/true-false [post]
func (qc *QuestionController) CreateTrueFalse(ctx *gin.Context) {
	var req service.TrueFalseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateListenAndChoose godoc
// @Summary Create a listen-and-choose question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ListenAndChooseRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/listen-and-choose [post]
func (qc *QuestionController) CreateListenAndChoose(ctx *gin.Context) {
	var req service.ListenAndChooseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateTopicBasedAudio godoc
// @Summary Create a topic-based-audio composite question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.TopicBasedAudioRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/topic-based-audio [post]
func (qc *QuestionController) CreateTopicBasedAudio(ctx *gin.Context) {
	var req service.TopicBasedAudioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateDictation godoc
// @Summary Create a dictation question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.DictationRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/dictation [post]
func (qc *QuestionController) CreateDictation(ctx *gin.Context) {
	var req service.DictationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateReadIt godoc
// @Summary Create a read-it composite question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ReadItRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/read-it [post]
func (qc *QuestionController) CreateReadIt(ctx *gin.Context) {
	var req service.ReadItRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateFastTest godoc
// @Summary Create a fast-test question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.FastTestRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/fast-test [post]
func (qc *QuestionController) CreateFastTest(ctx *gin.Context) {
	var req service.FastTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateEssay godoc
// @Summary Create an essay question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.EssayRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/essay [post]
func (qc *QuestionController) CreateEssay(ctx *gin.Context) {
	var req service.EssayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateDebate godoc
// @Summary Create a debate question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.DebateRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/debate [post]
func (qc *QuestionController) CreateDebate(ctx *gin.Context) {
	var req service.DebateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateReadAloud godoc
// @Summary Create a read-aloud question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ReadAloudRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/read-aloud [post]
func (qc *QuestionController) CreateReadAloud(ctx *gin.Context) {
	var req service.ReadAloudRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// CreateOpenConversation godoc
// @Summary Create an open-conversation question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.OpenConversationRequest true "question"
// @Success 201 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/questions/open-conversation [post]
func (qc *QuestionController) CreateOpenConversation(ctx *gin.Context) {
	var req service.OpenConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	qc.create(ctx, req)
}

// ListQuestionTypes godoc
// @Summary List the registered question types with their defaults
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/questions/types [get]
func (qc *QuestionController) ListQuestionTypes(ctx *gin.Context) {
	types := make(map[string]model.QuestionTypeSpec)
	for _, t := range model.QuestionTypes() {
		types[t] = model.TypeSpec(t)
	}
	util.Success(ctx, types)
}

// ListQuestions godoc
// @Summary List root questions ordered by stage, phase, position
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param challengeId query int false "challenge filter"
// @Param stage query string false "stage filter"
// @Param phase query string false "phase filter"
// @Success 200 {object} util.Response{data=[]service.FormattedQuestion}
// @Router /api/questions [get]
func (qc *QuestionController) ListQuestions(ctx *gin.Context) {
	challengeID, _ := strconv.ParseUint(ctx.Query("challengeId"), 10, 32)
	filters := repository.QuestionFilters{
		ChallengeID: uint(challengeID),
		Stage:       model.Stage(ctx.Query("stage")),
		Phase:       ctx.Query("phase"),
	}
	if filters.Stage != "" && !filters.Stage.Valid() {
		util.BadRequest(ctx, "unknown stage")
		return
	}
	questions, err := qc.QuestionService.ListQuestions(ctx.Request.Context(), filters)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary Get one question with media, configuration and sub-questions
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=service.FormattedQuestion}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (qc *QuestionController) GetQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	question, err := qc.QuestionService.GetQuestion(ctx.Request.Context(), uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// UpdateQuestion godoc
// @Summary Patch a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param request body service.UpdateQuestionRequest true "fields to update"
// @Success 200 {object} util.Response{data=service.FormattedQuestion}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [put]
func (qc *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	var req service.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := qc.QuestionService.UpdateQuestion(ctx.Request.Context(), uint(id), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// BulkUpdateRequest patches a whitelisted field set on many questions.
type BulkUpdateRequest struct {
	IDs     []uint                 `json:"ids" binding:"required"`
	Updates map[string]interface{} `json:"updates" binding:"required"`
}

// BulkUpdateQuestions godoc
// @Summary Patch a field set across many questions
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body BulkUpdateRequest true "ids and updates"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/questions/bulk [put]
func (qc *QuestionController) BulkUpdateQuestions(ctx *gin.Context) {
	var req BulkUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := qc.QuestionService.BulkUpdateQuestions(ctx.Request.Context(), req.IDs, req.Updates); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"updated": len(req.IDs)})
}

// DeleteQuestion godoc
// @Summary Safe-delete a question (soft when answers exist, hard otherwise)
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=service.DeleteResult}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [delete]
func (qc *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	result, err := qc.QuestionService.SafeDelete(ctx.Request.Context(), uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// RestoreQuestion godoc
// @Summary Restore a soft-deleted question and its sub-questions
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=service.FormattedQuestion}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id}/restore [post]
func (qc *QuestionController) RestoreQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	question, err := qc.QuestionService.Restore(ctx.Request.Context(), uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// ActivateQuestion godoc
// @Summary Activate a question and its sub-questions
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=service.FormattedQuestion}
// @Router /api/questions/{id}/activate [post]
func (qc *QuestionController) ActivateQuestion(ctx *gin.Context) {
	qc.setActive(ctx, true)
}

// DeactivateQuestion godoc
// @Summary Deactivate a question and its sub-questions
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=service.FormattedQuestion}
// @Router /api/questions/{id}/deactivate [post]
func (qc *QuestionController) DeactivateQuestion(ctx *gin.Context) {
	qc.setActive(ctx, false)
}

func (qc *QuestionController) setActive(ctx *gin.Context, active bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	question, err := qc.QuestionService.SetActive(ctx.Request.Context(), uint(id), active)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// RecalculatePoints godoc
// @Summary Recompute a composite parent's points from its sub-questions
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id}/recalculate-points [post]
func (qc *QuestionController) RecalculatePoints(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	if err := qc.QuestionService.RecalculateParentPoints(ctx.Request.Context(), uint(id)); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recalculated": id})
}

// GetSchoolStats godoc
// @Summary Per-question answer statistics for a school's students
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "school id"
// @Param questionId query int false "narrow to one question"
// @Success 200 {object} util.Response{data=[]repository.QuestionStats}
// @Failure 404 {object} util.Response
// @Router /api/schools/{id}/question-stats [get]
func (qc *QuestionController) GetSchoolStats(ctx *gin.Context) {
	schoolID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}
	questionID, _ := strconv.ParseUint(ctx.Query("questionId"), 10, 32)
	stats, err := qc.QuestionService.GetSchoolStats(uint(schoolID), uint(questionID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
