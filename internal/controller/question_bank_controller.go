package controller

import (
	"errors"

	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionBankController struct {
	bankService *service.QuestionBankService
}

func NewQuestionBankController(bankService *service.QuestionBankService) *QuestionBankController {
	return &QuestionBankController{bankService: bankService}
}

// Create godoc
// @Summary 创建题库
// @Tags question-banks
// @Accept json
// @Produce json
// @Param request body service.CreateQuestionBankRequest true "题库信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /question-banks [post]
func (ctrl *QuestionBankController) Create(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req service.CreateQuestionBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	bank, err := ctrl.bankService.Create(user.UserID, &req)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Created(c, bank)
}

// List godoc
// @Summary 当前用户的题库列表
// @Tags question-banks
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /question-banks [get]
func (ctrl *QuestionBankController) List(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	banks, err := ctrl.bankService.ListByOwner(user.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, banks)
}

// Get godoc
// @Summary 题库详情
// @Tags question-banks
// @Produce json
// @Param id path string true "题库 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /question-banks/{id} [get]
func (ctrl *QuestionBankController) Get(c *gin.Context) {
	bank, err := ctrl.bankService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionBankNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, bank)
}

// Questions godoc
// @Summary 题库下全部题目
// @Tags question-banks
// @Produce json
// @Param id path string true "题库 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /question-banks/{id}/questions [get]
func (ctrl *QuestionBankController) Questions(c *gin.Context) {
	questions, err := ctrl.bankService.ListQuestions(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionBankNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, questions)
}

// Delete godoc
// @Summary 删除题库（含其下题目）
// @Tags question-banks
// @Produce json
// @Param id path string true "题库 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /question-banks/{id} [delete]
func (ctrl *QuestionBankController) Delete(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctrl.bankService.Delete(c.Param("id"), user.UserID); err != nil {
		if errors.Is(err, util.ErrQuestionBankNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}
