package service

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"

	"gorm.io/gorm"
)

// OptionView MCQ 选项的展示项，列表顺序即打乱后的展示顺序
type OptionView struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// AssembledQuestion 抽题后的试题视图，不携带参考答案与正确选项
type AssembledQuestion struct {
	ID           string             `json:"id"`
	QuestionText string             `json:"question_text"`
	QuestionType model.QuestionType `json:"question_type"`
	Score        int                `json:"score"`
	MinWords     int                `json:"min_words,omitempty"`
	MaxWords     *int               `json:"max_words,omitempty"`
	Options      []OptionView       `json:"options,omitempty"`
}

// SectionView 单个分区的完整试卷视图
type SectionView struct {
	ExamID    string              `json:"exam_id"`
	Section   string              `json:"section"`
	Duration  int                 `json:"duration"`
	Questions []AssembledQuestion `json:"questions"`
}

// SectionSummary 分区概要，用于考试详情页
type SectionSummary struct {
	Section  string `json:"section"`
	Count    int    `json:"count"`
	Duration int    `json:"duration"`
}

// SectionDetail 教师侧的分区明细：候选池全量题目（含参考答案）与分区总分
type SectionDetail struct {
	ExamID     string           `json:"exam_id"`
	Section    string           `json:"section"`
	Count      int              `json:"count"`
	Duration   int              `json:"duration"`
	PoolSize   int              `json:"pool_size"`
	TotalMarks float64          `json:"total_marks"`
	Questions  []model.Question `json:"questions"`
}

type SectionService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSectionService(examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository) *SectionService {
	return &SectionService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AssembleSection 从候选池中均匀随机抽取 count 道题（不放回），
// 并打乱每道 MCQ 的选项展示顺序。候选池本身不被修改。
// 候选不足时返回分区错误。
func AssembleSection(rng *rand.Rand, section string, pool []model.Question, count int) ([]AssembledQuestion, error) {
	if count <= 0 {
		return nil, util.NewSectionError(section, "question count must be positive")
	}
	if len(pool) < count {
		return nil, util.NewSectionError(section, "not enough questions in the bank")
	}

	indexes := rng.Perm(len(pool))[:count]
	assembled := make([]AssembledQuestion, 0, count)
	for _, idx := range indexes {
		q := pool[idx]
		view := AssembledQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Score:        q.Score,
			MinWords:     q.MinWords,
			MaxWords:     q.MaxWords,
		}
		if q.QuestionType == model.MCQ {
			opts, err := q.OptionMap()
			if err != nil {
				return nil, err
			}
			view.Options = shuffleOptions(rng, opts)
		}
		assembled = append(assembled, view)
	}
	return assembled, nil
}

// shuffleOptions map 遍历顺序不稳定，先按键排序再打乱，保证同一随机源下结果可复现
func shuffleOptions(rng *rand.Rand, options map[string]string) []OptionView {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	views := make([]OptionView, 0, len(keys))
	for _, k := range keys {
		views = append(views, OptionView{Key: k, Text: options[k]})
	}
	return views
}

// GetSection 为进行中的考试组装指定分区的试卷
func (s *SectionService) GetSection(examID, section string) (*SectionView, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	status, _ := AccessState(exam.ExamDate, time.Now())
	switch status {
	case StatusNotStarted:
		return nil, util.ErrExamNotStarted
	case StatusClosed:
		return nil, util.ErrExamClosed
	}

	cfg, ok := exam.Sections[section]
	if !ok {
		return nil, util.ErrSectionNotFound
	}

	pool, err := s.questionRepo.ListByBankAndType(exam.QuestionBankID, model.QuestionType(section))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	questions, err := AssembleSection(s.rng, section, pool, cfg.Count)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return &SectionView{
		ExamID:    exam.ID,
		Section:   section,
		Duration:  cfg.Duration,
		Questions: questions,
	}, nil
}

// Detail 教师查看分区配置与候选题目全量明细，分区总分按前 count 道题的分值累计
func (s *SectionService) Detail(examID, section string, teacherID uint) (*SectionDetail, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if exam.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	cfg, ok := exam.Sections[section]
	if !ok {
		return nil, util.ErrSectionNotFound
	}

	pool, err := s.questionRepo.ListByBankAndType(exam.QuestionBankID, model.QuestionType(section))
	if err != nil {
		return nil, err
	}

	totalMarks := 0.0
	limit := cfg.Count
	if limit > len(pool) {
		limit = len(pool)
	}
	for _, q := range pool[:limit] {
		totalMarks += float64(q.Score)
	}

	return &SectionDetail{
		ExamID:     exam.ID,
		Section:    section,
		Count:      cfg.Count,
		Duration:   cfg.Duration,
		PoolSize:   len(pool),
		TotalMarks: totalMarks,
		Questions:  pool,
	}, nil
}

// Summary 考试各分区的概要列表，顺序与导航顺序一致
func (s *SectionService) Summary(examID string) ([]SectionSummary, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	summaries := make([]SectionSummary, 0, len(exam.Sections))
	for _, name := range orderedSections(exam.Sections) {
		cfg := exam.Sections[name]
		summaries = append(summaries, SectionSummary{
			Section:  name,
			Count:    cfg.Count,
			Duration: cfg.Duration,
		})
	}
	return summaries, nil
}
