package controller

import (
	"errors"

	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	questionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// Create godoc
// @Summary 创建题目
// @Description 按题型校验：MCQ 需选项与正确项，文本题需参考答案；未给出的分值/字数限制按题型默认值填充
// @Tags questions
// @Accept json
// @Produce json
// @Param request body service.CreateQuestionRequest true "题目信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /questions [post]
func (ctrl *QuestionController) Create(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req service.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctrl.questionService.Create(user.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionBankNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, err.Error())
		default:
			util.BadRequest(c, err.Error())
		}
		return
	}
	util.Created(c, question)
}

// Get godoc
// @Summary 题目详情
// @Tags questions
// @Produce json
// @Param id path string true "题目 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /questions/{id} [get]
func (ctrl *QuestionController) Get(c *gin.Context) {
	question, err := ctrl.questionService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, question)
}

// Delete godoc
// @Summary 删除题目
// @Tags questions
// @Produce json
// @Param id path string true "题目 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /questions/{id} [delete]
func (ctrl *QuestionController) Delete(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctrl.questionService.Delete(c.Param("id"), user.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound), errors.Is(err, util.ErrQuestionBankNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, gin.H{"deleted": true})
}
