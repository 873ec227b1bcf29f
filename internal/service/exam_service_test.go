package service

import (
	"testing"
	"time"

	"exam_portal_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAccessState(t *testing.T) {
	examDate := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		now        time.Time
		wantStatus string
		wantWait   int64
	}{
		{"开考前十分钟", examDate.Add(-10 * time.Minute), StatusNotStarted, 600},
		{"开考瞬间", examDate, StatusRunning, 3600},
		{"开考后三十分钟", examDate.Add(30 * time.Minute), StatusRunning, 1800},
		{"窗口关闭瞬间仍在进行中", examDate.Add(ExamWindow), StatusRunning, 0},
		{"窗口关闭后一纳秒", examDate.Add(ExamWindow + time.Nanosecond), StatusClosed, 0},
		{"开考后九十分钟", examDate.Add(90 * time.Minute), StatusClosed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, wait := AccessState(examDate, tt.now)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantWait, wait)
		})
	}
}

func TestFirstSection(t *testing.T) {
	all := model.SectionMap{
		"Essay":     {Count: 1, Duration: 600},
		"MCQ":       {Count: 5, Duration: 300},
		"Paragraph": {Count: 2, Duration: 400},
	}
	assert.Equal(t, "MCQ", FirstSection(all))

	textOnly := model.SectionMap{
		"Essay":     {Count: 1, Duration: 600},
		"Paragraph": {Count: 2, Duration: 400},
	}
	assert.Equal(t, "Paragraph", FirstSection(textOnly))

	essayOnly := model.SectionMap{"Essay": {Count: 1, Duration: 600}}
	assert.Equal(t, "Essay", FirstSection(essayOnly))

	assert.Empty(t, FirstSection(model.SectionMap{}))
}

func TestOrderedSections(t *testing.T) {
	sections := model.SectionMap{
		"Paragraph": {Count: 2, Duration: 400},
		"MCQ":       {Count: 5, Duration: 300},
	}
	assert.Equal(t, []string{"MCQ", "Paragraph"}, orderedSections(sections))
}
