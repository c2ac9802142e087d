package controller

import (
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SchoolController handles school HTTP requests.
type SchoolController struct {
	SchoolService *service.SchoolService
	ExportService *service.ExportService
}

func NewSchoolController(schoolService *service.SchoolService, exportService *service.ExportService) *SchoolController {
	return &SchoolController{
		SchoolService: schoolService,
		ExportService: exportService,
	}
}

// CreateSchool godoc
// @Summary Create a school
// @Tags Schools
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CreateSchoolRequest true "school"
// @Success 201 {object} util.Response{data=model.School}
// @Failure 400 {object} util.Response
// @Router /api/schools [post]
func (sc *SchoolController) CreateSchool(ctx *gin.Context) {
	var req service.CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	school, err := sc.SchoolService.CreateSchool(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, school)
}

// ListSchools godoc
// @Summary List schools
// @Tags Schools
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=[]model.School}
// @Router /api/schools [get]
func (sc *SchoolController) ListSchools(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	schools, total, err := sc.SchoolService.ListSchools(page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: schools, Total: total, Page: page, Limit: limit})
}

// GetSchool godoc
// @Summary Get one school
// @Tags Schools
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "school id"
// @Success 200 {object} util.Response{data=model.School}
// @Failure 404 {object} util.Response
// @Router /api/schools/{id} [get]
func (sc *SchoolController) GetSchool(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}
	school, err := sc.SchoolService.GetSchool(uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// ListStudents godoc
// @Summary List a school's students
// @Tags Schools
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "school id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 404 {object} util.Response
// @Router /api/schools/{id}/students [get]
func (sc *SchoolController) ListStudents(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	students, total, err := sc.SchoolService.ListStudents(uint(id), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: students, Total: total, Page: page, Limit: limit})
}

// ExportSchoolStats godoc
// @Summary Download per-question answer statistics as xlsx
// @Tags Schools
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "school id"
// @Param questionId query int false "narrow to one question"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/schools/{id}/question-stats/export [get]
func (sc *SchoolController) ExportSchoolStats(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}
	questionID, _ := strconv.ParseUint(ctx.Query("questionId"), 10, 32)
	f, filename, err := sc.ExportService.ExportSchoolStats(uint(id), uint(questionID))
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
