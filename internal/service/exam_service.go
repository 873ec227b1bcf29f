package service

import (
	"errors"
	"fmt"
	"time"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"exam_portal_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamWindow 考试开放窗口：自 ExamDate 起固定一小时
const ExamWindow = time.Hour

// 考试访问状态
const (
	StatusNotStarted = "NOT_STARTED"
	StatusRunning    = "RUNNING"
	StatusClosed     = "CLOSED"
)

// sectionEntryOrder 进入考试后第一个分区的选取优先级
var sectionEntryOrder = []model.QuestionType{model.MCQ, model.Paragraph, model.Essay}

type ExamService struct {
	examRepo     *repository.ExamRepository
	bankRepo     *repository.QuestionBankRepository
	questionRepo *repository.QuestionRepository
}

func NewExamService(examRepo *repository.ExamRepository, bankRepo *repository.QuestionBankRepository, questionRepo *repository.QuestionRepository) *ExamService {
	return &ExamService{examRepo: examRepo, bankRepo: bankRepo, questionRepo: questionRepo}
}

type SectionRequest struct {
	Count    int `json:"count" binding:"required,min=1"`
	Duration int `json:"duration" binding:"required,min=1"`
}

type CreateExamRequest struct {
	QuestionBankID string                    `json:"questionBankId" binding:"required"`
	ExamName       string                    `json:"examName" binding:"required,max=200"`
	ExamDate       time.Time                 `json:"examDate" binding:"required"`
	Sections       map[string]SectionRequest `json:"sections" binding:"required"`
	PassMarks      float64                   `json:"passMarks" binding:"required,min=0"`
}

// AccessInfo 考试入口状态。RUNNING 时附带分区导航信息
type AccessInfo struct {
	Status         string     `json:"status"`
	Message        string     `json:"message"`
	ExamID         string     `json:"exam_id"`
	ExamName       string     `json:"exam_name"`
	ExamDate       time.Time  `json:"exam_date"`
	TimeRemaining  *int64     `json:"time_remaining_seconds,omitempty"`
	Sections       []string   `json:"sections,omitempty"`
	RedirectTo     string     `json:"redirect_to,omitempty"`
	WindowClosesAt *time.Time `json:"window_closes_at,omitempty"`
}

// AccessState 判定某时刻相对考试窗口的状态。返回的剩余秒数：
// 未开始时为距开考秒数，进行中为距窗口关闭秒数，已结束为 0。
// 窗口为闭区间 [examDate, examDate+ExamWindow]，关闭瞬间仍视为进行中。
func AccessState(examDate, now time.Time) (string, int64) {
	if now.Before(examDate) {
		return StatusNotStarted, int64(examDate.Sub(now).Seconds())
	}
	closesAt := examDate.Add(ExamWindow)
	if !now.After(closesAt) {
		return StatusRunning, int64(closesAt.Sub(now).Seconds())
	}
	return StatusClosed, 0
}

// Create 创建考试：逐分区校验题型与题库存量，并推导总分
func (s *ExamService) Create(teacherID uint, req *CreateExamRequest) (*model.Exam, error) {
	bank, err := s.bankRepo.FindByID(req.QuestionBankID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionBankNotFound
		}
		return nil, err
	}
	if bank.OwnerID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	if len(req.Sections) == 0 {
		return nil, errors.New("at least one section is required")
	}

	sections := make(model.SectionMap, len(req.Sections))
	totalMarks := 0.0
	for name, sec := range req.Sections {
		qType := model.QuestionType(name)
		if !model.ValidQuestionType(qType) {
			return nil, util.NewSectionError(name, "unsupported section type")
		}
		if sec.Count <= 0 {
			return nil, util.NewSectionError(name, "question count must be positive")
		}
		if sec.Duration <= 0 {
			return nil, util.NewSectionError(name, "duration must be positive")
		}

		pool, err := s.questionRepo.ListByBankAndType(req.QuestionBankID, qType)
		if err != nil {
			return nil, err
		}
		if len(pool) < sec.Count {
			return nil, util.NewSectionError(name,
				fmt.Sprintf("not enough questions in the bank (have %d, need %d)", len(pool), sec.Count))
		}

		// 总分按该分区前 count 道题的分值累计
		for _, q := range pool[:sec.Count] {
			totalMarks += float64(q.Score)
		}
		sections[name] = model.SectionConfig{Count: sec.Count, Duration: sec.Duration}
	}

	if req.PassMarks > totalMarks {
		return nil, fmt.Errorf("pass marks (%.2f) cannot exceed total marks (%.2f)", req.PassMarks, totalMarks)
	}

	exam := &model.Exam{
		TeacherID:      teacherID,
		QuestionBankID: req.QuestionBankID,
		ExamName:       req.ExamName,
		ExamDate:       req.ExamDate,
		Sections:       sections,
		PassMarks:      req.PassMarks,
		TotalMarks:     totalMarks,
	}
	if err := s.examRepo.Create(exam); err != nil {
		return nil, err
	}

	logger.Log.Info("考试创建成功",
		zap.String("examId", exam.ID),
		zap.Uint("teacherId", teacherID),
		zap.Float64("totalMarks", totalMarks))
	return exam, nil
}

func (s *ExamService) Get(id string) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	return s.examRepo.ListByTeacher(teacherID)
}

func (s *ExamService) ListAll() ([]model.Exam, error) {
	return s.examRepo.ListAll()
}

func (s *ExamService) Delete(id string, teacherID uint) error {
	if err := s.examRepo.DeleteByTeacher(id, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}
	return nil
}

// Access 查询考试入口状态：未开始返回倒计时，进行中返回分区列表，已结束拒绝访问
func (s *ExamService) Access(id string) (*AccessInfo, error) {
	exam, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	status, remaining := AccessState(exam.ExamDate, time.Now())
	info := &AccessInfo{
		Status:        status,
		ExamID:        exam.ID,
		ExamName:      exam.ExamName,
		ExamDate:      exam.ExamDate,
		TimeRemaining: &remaining,
	}

	switch status {
	case StatusNotStarted:
		info.Message = "The exam has not started yet. Please wait."
	case StatusRunning:
		info.Message = "The exam is running."
		closesAt := exam.ExamDate.Add(ExamWindow)
		info.WindowClosesAt = &closesAt
		info.Sections = orderedSections(exam.Sections)
	case StatusClosed:
		return nil, util.ErrExamClosed
	}
	return info, nil
}

// ConfirmEntry 学生确认进入考试。仅进行中的考试可进入，
// 返回按固定优先级选出的第一个分区作为跳转目标
func (s *ExamService) ConfirmEntry(id string) (*AccessInfo, error) {
	exam, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	status, remaining := AccessState(exam.ExamDate, time.Now())
	if status == StatusClosed {
		return nil, util.ErrExamClosed
	}

	info := &AccessInfo{
		Status:        status,
		ExamID:        exam.ID,
		ExamName:      exam.ExamName,
		ExamDate:      exam.ExamDate,
		TimeRemaining: &remaining,
	}
	if status == StatusNotStarted {
		info.Message = "The exam has not started yet. Please wait."
		return info, nil
	}

	info.Message = "The exam is running."
	closesAt := exam.ExamDate.Add(ExamWindow)
	info.WindowClosesAt = &closesAt
	info.Sections = orderedSections(exam.Sections)
	if first := FirstSection(exam.Sections); first != "" {
		info.RedirectTo = fmt.Sprintf("/api/v1/exams/%s/sections/%s", exam.ID, first)
	}
	return info, nil
}

// FirstSection 返回进入考试后的第一个分区名，按固定题型优先级选取
func FirstSection(sections model.SectionMap) string {
	for _, t := range sectionEntryOrder {
		if _, ok := sections[string(t)]; ok {
			return string(t)
		}
	}
	return ""
}

// orderedSections 以固定优先级排列分区名，保证导航顺序稳定
func orderedSections(sections model.SectionMap) []string {
	names := make([]string, 0, len(sections))
	for _, t := range sectionEntryOrder {
		if _, ok := sections[string(t)]; ok {
			names = append(names, string(t))
		}
	}
	return names
}
