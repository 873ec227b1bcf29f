package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"exam_portal_backend/internal/evaluation"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"exam_portal_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// resultCacheTTL 成绩汇总缓存时长，提交新答案时主动淘汰
const resultCacheTTL = 60 * time.Second

func resultCacheKey(examID string) string {
	return "exam:results:" + examID
}

type ResultService struct {
	answerRepo   *repository.StudentAnswerRepository
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	redis        *redis.Client
}

func NewResultService(answerRepo *repository.StudentAnswerRepository, examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *ResultService {
	return &ResultService{
		answerRepo:   answerRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		redis:        rdb,
	}
}

// AnswerDetail 单题成绩明细
type AnswerDetail struct {
	QuestionID  string          `json:"question_id"`
	SectionType string          `json:"section_type"`
	ScoreEarned float64         `json:"score_earned"`
	Feedback    json.RawMessage `json:"feedback,omitempty"`
}

// StudentResultView 单个学生在一场考试中的完整成绩
type StudentResultView struct {
	ExamID     string         `json:"exam_id"`
	ExamName   string         `json:"exam_name"`
	StudentID  uint           `json:"student_id"`
	TotalScore float64        `json:"total_score"`
	TotalMarks float64        `json:"total_marks"`
	Percentage float64        `json:"percentage"`
	Grade      string         `json:"grade"`
	Passed     bool           `json:"passed"`
	Answers    []AnswerDetail `json:"answers"`
}

// StudentResultSummary 汇总表中的单行
type StudentResultSummary struct {
	StudentID    uint    `json:"student_id"`
	TotalScore   float64 `json:"total_score"`
	Percentage   float64 `json:"percentage"`
	Grade        string  `json:"grade"`
	Passed       bool    `json:"passed"`
	AnswerCount  int     `json:"answer_count"`
	AllEvaluated bool    `json:"all_evaluated"`
}

// ExamResultsView 教师侧的全员成绩汇总
type ExamResultsView struct {
	ExamID     string                 `json:"exam_id"`
	ExamName   string                 `json:"exam_name"`
	TotalMarks float64                `json:"total_marks"`
	PassMarks  float64                `json:"pass_marks"`
	Results    []StudentResultSummary `json:"results"`
}

// percentageOf 分数换算百分比，总分为零时按 0 处理
func percentageOf(score, totalMarks float64) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return score / totalMarks * 100
}

// ExamResults 全员成绩汇总，短期缓存于 Redis
func (s *ResultService) ExamResults(ctx context.Context, examID string) (*ExamResultsView, error) {
	if cached := s.readCache(ctx, examID); cached != nil {
		return cached, nil
	}

	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	answers, err := s.answerRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint][]model.StudentAnswer)
	for _, a := range answers {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], a)
	}

	results := make([]StudentResultSummary, 0, len(byStudent))
	for studentID, rows := range byStudent {
		total := 0.0
		allEvaluated := true
		for _, a := range rows {
			if a.ScoreEarned != nil {
				total += *a.ScoreEarned
			}
			if !a.IsEvaluated {
				allEvaluated = false
			}
		}
		total = evaluation.RoundScore(total)
		pct := percentageOf(total, exam.TotalMarks)
		results = append(results, StudentResultSummary{
			StudentID:    studentID,
			TotalScore:   total,
			Percentage:   evaluation.RoundScore(pct),
			Grade:        evaluation.Grade(pct),
			Passed:       total >= exam.PassMarks,
			AnswerCount:  len(rows),
			AllEvaluated: allEvaluated,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].StudentID < results[j].StudentID
	})

	view := &ExamResultsView{
		ExamID:     exam.ID,
		ExamName:   exam.ExamName,
		TotalMarks: exam.TotalMarks,
		PassMarks:  exam.PassMarks,
		Results:    results,
	}
	s.writeCache(ctx, examID, view)
	return view, nil
}

// StudentResult 单个学生在一场考试中的逐题成绩
func (s *ResultService) StudentResult(examID string, studentID uint) (*StudentResultView, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	answers, err := s.answerRepo.ListByExamAndStudent(examID, studentID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswersFound
	}

	total := 0.0
	details := make([]AnswerDetail, 0, len(answers))
	for _, a := range answers {
		score := 0.0
		if a.ScoreEarned != nil {
			score = *a.ScoreEarned
		}
		total += score
		details = append(details, AnswerDetail{
			QuestionID:  a.QuestionID,
			SectionType: string(a.SectionType),
			ScoreEarned: score,
			Feedback:    json.RawMessage(a.Feedback),
		})
	}
	total = evaluation.RoundScore(total)
	pct := percentageOf(total, exam.TotalMarks)

	return &StudentResultView{
		ExamID:     exam.ID,
		ExamName:   exam.ExamName,
		StudentID:  studentID,
		TotalScore: total,
		TotalMarks: exam.TotalMarks,
		Percentage: evaluation.RoundScore(pct),
		Grade:      evaluation.Grade(pct),
		Passed:     total >= exam.PassMarks,
		Answers:    details,
	}, nil
}

// StudentExams 学生参与过的考试及各场总分概要。
// 一次取出该生全部答卷，按考试分组后批量回填考试信息
func (s *ResultService) StudentExams(studentID uint) ([]StudentResultView, error) {
	answers, err := s.answerRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return []StudentResultView{}, nil
	}

	byExam := groupAnswersByExam(answers)
	examIDs := make([]string, 0, len(byExam))
	for examID := range byExam {
		examIDs = append(examIDs, examID)
	}
	sort.Strings(examIDs)

	exams, err := s.examRepo.ListByIDs(examIDs)
	if err != nil {
		return nil, err
	}
	examsByID := make(map[string]model.Exam, len(exams))
	for _, e := range exams {
		examsByID[e.ID] = e
	}

	views := make([]StudentResultView, 0, len(examIDs))
	for _, examID := range examIDs {
		exam, ok := examsByID[examID]
		if !ok {
			// 考试已被删除，跳过残留答卷
			continue
		}
		total := 0.0
		for _, a := range byExam[examID] {
			if a.ScoreEarned != nil {
				total += *a.ScoreEarned
			}
		}
		total = evaluation.RoundScore(total)
		pct := percentageOf(total, exam.TotalMarks)
		views = append(views, StudentResultView{
			ExamID:     exam.ID,
			ExamName:   exam.ExamName,
			StudentID:  studentID,
			TotalScore: total,
			TotalMarks: exam.TotalMarks,
			Percentage: evaluation.RoundScore(pct),
			Grade:      evaluation.Grade(pct),
			Passed:     total >= exam.PassMarks,
		})
	}
	return views, nil
}

// groupAnswersByExam 按考试分组答卷，组内保持原有顺序
func groupAnswersByExam(answers []model.StudentAnswer) map[string][]model.StudentAnswer {
	byExam := make(map[string][]model.StudentAnswer, len(answers))
	for _, a := range answers {
		byExam[a.ExamID] = append(byExam[a.ExamID], a)
	}
	return byExam
}

// EvaluateAll 教师触发的全量重评：对考试下的全部答卷重新打分并写回，
// 同时按学生总分刷新通过标记
func (s *ResultService) EvaluateAll(ctx context.Context, examID string) (*ExamResultsView, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	answers, err := s.answerRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswersFound
	}

	if err := s.rescore(answers); err != nil {
		return nil, err
	}

	// 按学生总分刷新通过标记
	totals := make(map[uint]float64)
	for i := range answers {
		if answers[i].ScoreEarned != nil {
			totals[answers[i].StudentID] += *answers[i].ScoreEarned
		}
	}
	for i := range answers {
		passed := totals[answers[i].StudentID] >= exam.PassMarks
		answers[i].HasPassed = &passed
	}

	if err := s.answerRepo.UpdateBatch(answers); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, resultCacheKey(examID)).Err(); err != nil {
			logger.Log.Warn("成绩缓存淘汰失败", zap.String("examId", examID), zap.Error(err))
		}
	}

	logger.Log.Info("考试全量重评完成",
		zap.String("examId", examID),
		zap.Int("answerCount", len(answers)))
	return s.ExamResults(ctx, examID)
}

// EvaluateStudent 重评单个学生在一场考试中的全部答卷并返回其成绩
func (s *ResultService) EvaluateStudent(ctx context.Context, examID string, studentID uint) (*StudentResultView, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	answers, err := s.answerRepo.ListByExamAndStudent(examID, studentID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswersFound
	}

	if err := s.rescore(answers); err != nil {
		return nil, err
	}

	total := 0.0
	for i := range answers {
		if answers[i].ScoreEarned != nil {
			total += *answers[i].ScoreEarned
		}
	}
	passed := total >= exam.PassMarks
	for i := range answers {
		answers[i].HasPassed = &passed
	}

	if err := s.answerRepo.UpdateBatch(answers); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, resultCacheKey(examID)).Err(); err != nil {
			logger.Log.Warn("成绩缓存淘汰失败", zap.String("examId", examID), zap.Error(err))
		}
	}

	return s.StudentResult(examID, studentID)
}

// rescore 就地重算每条答卷的得分与反馈
func (s *ResultService) rescore(answers []model.StudentAnswer) error {
	now := time.Now()
	for i := range answers {
		a := &answers[i]
		question, err := s.questionRepo.FindByID(a.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Log.Warn("重评时题目已不存在", zap.String("questionId", a.QuestionID))
				continue
			}
			return err
		}

		frac, feedback, err := evaluate(question, &SubmitAnswerRequest{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			TypedAnswer:    a.TypedAnswer,
		})
		if err != nil {
			return err
		}
		feedbackJSON, err := json.Marshal(feedback)
		if err != nil {
			return err
		}

		score := evaluation.RoundScore(frac * float64(question.Score))
		a.ScoreEarned = &score
		a.Feedback = string(feedbackJSON)
		a.IsEvaluated = true
		a.EvaluationTimestamp = &now
	}
	return nil
}

func (s *ResultService) readCache(ctx context.Context, examID string) *ExamResultsView {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, resultCacheKey(examID)).Bytes()
	if err != nil {
		return nil
	}
	var view ExamResultsView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil
	}
	return &view
}

func (s *ResultService) writeCache(ctx context.Context, examID string, view *ExamResultsView) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, resultCacheKey(examID), data, resultCacheTTL).Err(); err != nil {
		logger.Log.Warn("成绩缓存写入失败", zap.String("examId", examID), zap.Error(err))
	}
}
