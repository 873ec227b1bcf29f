package controller

import (
	"errors"
	"strconv"

	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	resultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// ExamResults godoc
// @Summary 全员成绩汇总
// @Description 教师查看考试的全员得分、等级与通过情况
// @Tags results
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/results [get]
func (ctrl *ResultController) ExamResults(c *gin.Context) {
	view, err := ctrl.resultService.ExamResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, view)
}

// EvaluateAll godoc
// @Summary 全量重评
// @Description 对考试下的全部答卷重新评分并刷新通过标记
// @Tags results
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/evaluate [post]
func (ctrl *ResultController) EvaluateAll(c *gin.Context) {
	view, err := ctrl.resultService.EvaluateAll(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrNoAnswersFound):
			util.NotFound(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, view)
}

// StudentEvaluation godoc
// @Summary 指定学生的单场成绩（教师）
// @Description 重算该学生在某场考试的全部答卷，返回逐题得分与反馈
// @Tags results
// @Produce json
// @Param id path string true "考试 ID"
// @Param studentId path int true "学生 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/evaluation/{studentId} [get]
func (ctrl *ResultController) StudentEvaluation(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 64)
	if err != nil {
		util.BadRequest(c, "invalid student id")
		return
	}

	view, err := ctrl.resultService.EvaluateStudent(c.Request.Context(), c.Param("id"), uint(studentID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrNoAnswersFound):
			util.NotFound(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, view)
}

// StudentHistory godoc
// @Summary 指定学生的历史成绩（教师）
// @Tags results
// @Produce json
// @Param studentId path int true "学生 ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /students/{studentId}/results [get]
func (ctrl *ResultController) StudentHistory(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 64)
	if err != nil {
		util.BadRequest(c, "invalid student id")
		return
	}

	views, err := ctrl.resultService.StudentExams(uint(studentID))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, views)
}

// MyResult godoc
// @Summary 本人单场成绩
// @Description 学生查看自己在某场考试的逐题得分与反馈
// @Tags results
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/results/me [get]
func (ctrl *ResultController) MyResult(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	view, err := ctrl.resultService.StudentResult(c.Param("id"), user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrNoAnswersFound):
			util.NotFound(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, view)
}

// MyExams godoc
// @Summary 本人历史成绩
// @Description 学生查看参与过的全部考试与各场总分
// @Tags results
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /results/me [get]
func (ctrl *ResultController) MyExams(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	views, err := ctrl.resultService.StudentExams(user.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, views)
}
