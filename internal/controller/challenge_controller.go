package controller

import (
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ChallengeController handles challenge HTTP requests.
type ChallengeController struct {
	ChallengeService *service.ChallengeService
	ExportService    *service.ExportService
}

func NewChallengeController(challengeService *service.ChallengeService, exportService *service.ExportService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		ExportService:    exportService,
	}
}

// CreateChallenge godoc
// @Summary Create a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CreateChallengeRequest true "challenge"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Router /api/challenges [post]
func (cc *ChallengeController) CreateChallenge(ctx *gin.Context) {
	var req service.CreateChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	challenge, err := cc.ChallengeService.CreateChallenge(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

// ListChallenges godoc
// @Summary List challenges, optionally filtered by school
// @Tags Challenges
// @Produce json
// @Security ApiKeyAuth
// @Param schoolId query int false "school filter"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /api/challenges [get]
func (cc *ChallengeController) ListChallenges(ctx *gin.Context) {
	schoolID, _ := strconv.ParseUint(ctx.Query("schoolId"), 10, 32)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	challenges, total, err := cc.ChallengeService.ListChallenges(uint(schoolID), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: challenges, Total: total, Page: page, Limit: limit})
}

// GetChallenge godoc
// @Summary Get one challenge
// @Tags Challenges
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id} [get]
func (cc *ChallengeController) GetChallenge(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}
	challenge, err := cc.ChallengeService.GetChallenge(uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// UpdateChallenge godoc
// @Summary Patch a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Param request body service.UpdateChallengeRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id} [put]
func (cc *ChallengeController) UpdateChallenge(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}
	var req service.UpdateChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	challenge, err := cc.ChallengeService.UpdateChallenge(ctx.Request.Context(), uint(id), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// DeleteChallenge godoc
// @Summary Safe-delete a challenge and its questions
// @Tags Challenges
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Success 200 {object} util.Response{data=service.ChallengeDeleteResult}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id} [delete]
func (cc *ChallengeController) DeleteChallenge(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}
	result, err := cc.ChallengeService.SafeDelete(ctx.Request.Context(), uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ExportChallengeQuestions godoc
// @Summary Download the challenge's question bank as xlsx
// @Tags Challenges
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id}/export [get]
func (cc *ChallengeController) ExportChallengeQuestions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}
	if _, err := cc.ChallengeService.GetChallenge(uint(id)); err != nil {
		util.RespondError(ctx, err)
		return
	}
	f, filename, err := cc.ExportService.ExportChallengeQuestions(ctx.Request.Context(), uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}
