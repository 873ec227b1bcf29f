package controller

import (
	"errors"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	examService    *service.ExamService
	sectionService *service.SectionService
}

func NewExamController(examService *service.ExamService, sectionService *service.SectionService) *ExamController {
	return &ExamController{examService: examService, sectionService: sectionService}
}

// Create godoc
// @Summary 创建考试
// @Description 校验各分区题型与题库存量，总分由分区配置推导
// @Tags exams
// @Accept json
// @Produce json
// @Param request body service.CreateExamRequest true "考试信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams [post]
func (ctrl *ExamController) Create(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req service.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctrl.examService.Create(user.UserID, &req)
	if err != nil {
		var sectionErr *util.SectionError
		switch {
		case errors.Is(err, util.ErrQuestionBankNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, err.Error())
		case errors.As(err, &sectionErr):
			util.BadRequest(c, err.Error())
		default:
			util.BadRequest(c, err.Error())
		}
		return
	}
	util.Created(c, exam)
}

// List godoc
// @Summary 考试列表
// @Description 教师看自己创建的考试，学生看全部考试
// @Tags exams
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /exams [get]
func (ctrl *ExamController) List(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var (
		exams interface{}
		err   error
	)
	if user.Role == model.Teacher {
		exams, err = ctrl.examService.ListByTeacher(user.UserID)
	} else {
		exams, err = ctrl.examService.ListAll()
	}
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, exams)
}

// Get godoc
// @Summary 考试详情
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id} [get]
func (ctrl *ExamController) Get(c *gin.Context) {
	exam, err := ctrl.examService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, exam)
}

// Delete godoc
// @Summary 删除考试（含答卷）
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id} [delete]
func (ctrl *ExamController) Delete(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctrl.examService.Delete(c.Param("id"), user.UserID); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

// Access godoc
// @Summary 考试入口状态
// @Description 未开始返回倒计时，进行中返回分区导航，已结束返回 403
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/access [get]
func (ctrl *ExamController) Access(c *gin.Context) {
	info, err := ctrl.examService.Access(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrExamClosed):
			util.Forbidden(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, info)
}

// ConfirmEntry godoc
// @Summary 确认进入考试
// @Description 进行中的考试返回第一个分区的跳转地址，已结束返回 403
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/confirm [post]
func (ctrl *ExamController) ConfirmEntry(c *gin.Context) {
	info, err := ctrl.examService.ConfirmEntry(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrExamClosed):
			util.Forbidden(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, info)
}

// Section godoc
// @Summary 获取分区试卷
// @Description 仅进行中的考试可获取；每次请求重新随机抽题并打乱 MCQ 选项顺序
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Param section path string true "分区名（题型）"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/sections/{section} [get]
func (ctrl *ExamController) Section(c *gin.Context) {
	view, err := ctrl.sectionService.GetSection(c.Param("id"), c.Param("section"))
	if err != nil {
		var sectionErr *util.SectionError
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrSectionNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrExamNotStarted), errors.Is(err, util.ErrExamClosed):
			util.Forbidden(c, err.Error())
		case errors.As(err, &sectionErr):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, view)
}

// SectionDetail godoc
// @Summary 分区明细（教师）
// @Description 返回分区配置与候选池全量题目（含参考答案），仅考试创建者可见
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Param section path string true "分区名（题型）"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/sections/{section}/summary [get]
func (ctrl *ExamController) SectionDetail(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	detail, err := ctrl.sectionService.Detail(c.Param("id"), c.Param("section"), user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrSectionNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, detail)
}

// Sections godoc
// @Summary 考试分区概要
// @Tags exams
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/sections [get]
func (ctrl *ExamController) Sections(c *gin.Context) {
	summaries, err := ctrl.sectionService.Summary(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, summaries)
}
