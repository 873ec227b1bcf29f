package controller

import (
	"errors"
	"net/http"

	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	answerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// Submit godoc
// @Summary 提交单题答案
// @Description 提交后同步评分并返回得分与反馈；同一题评过分后不可重复提交
// @Tags answers
// @Accept json
// @Produce json
// @Param id path string true "考试 ID"
// @Param request body service.SubmitAnswerRequest true "答案内容"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id}/answers [post]
func (ctrl *AnswerController) Submit(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req service.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.answerService.Submit(c.Request.Context(), c.Param("id"), user.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrAnswerAlreadySubmitted):
			util.Error(c, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Created(c, result)
}
