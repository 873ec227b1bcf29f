package service

import (
	"encoding/json"
	"math/rand"
	"testing"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraphPool(n int) []model.Question {
	pool := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, model.Question{
			UUIDBase:     model.UUIDBase{ID: model.GenerateUUID()},
			QuestionText: "question text",
			QuestionType: model.Paragraph,
			Score:        5,
			AnswerKey:    "gravity force mass",
			MinWords:     10,
		})
	}
	return pool
}

func TestAssembleSectionSamplesWithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := paragraphPool(5)

	assembled, err := AssembleSection(rng, "Paragraph", pool, 3)
	require.NoError(t, err)
	require.Len(t, assembled, 3)

	// 抽取结果互不重复，且都来自候选池
	poolIDs := make(map[string]bool, len(pool))
	for _, q := range pool {
		poolIDs[q.ID] = true
	}
	seen := make(map[string]bool)
	for _, q := range assembled {
		assert.True(t, poolIDs[q.ID])
		assert.False(t, seen[q.ID])
		seen[q.ID] = true
	}
}

func TestAssembleSectionDoesNotMutatePool(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := paragraphPool(5)
	before := make([]string, len(pool))
	for i, q := range pool {
		before[i] = q.ID
	}

	_, err := AssembleSection(rng, "Paragraph", pool, 3)
	require.NoError(t, err)

	for i, q := range pool {
		assert.Equal(t, before[i], q.ID)
	}
}

func TestAssembleSectionInsufficientPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := AssembleSection(rng, "Paragraph", paragraphPool(2), 3)
	var sectionErr *util.SectionError
	require.ErrorAs(t, err, &sectionErr)
	assert.Equal(t, "Paragraph", sectionErr.Section)

	_, err = AssembleSection(rng, "Paragraph", paragraphPool(2), 0)
	require.ErrorAs(t, err, &sectionErr)
}

func TestAssembleSectionDeterministicWithSeed(t *testing.T) {
	pool := paragraphPool(5)

	first, err := AssembleSection(rand.New(rand.NewSource(99)), "Paragraph", pool, 3)
	require.NoError(t, err)
	second, err := AssembleSection(rand.New(rand.NewSource(99)), "Paragraph", pool, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssembleSectionShufflesMCQOptions(t *testing.T) {
	options, err := json.Marshal(map[string]string{
		"a": "one", "b": "two", "c": "three", "d": "four",
	})
	require.NoError(t, err)

	pool := []model.Question{{
		UUIDBase:      model.UUIDBase{ID: "mcq-1"},
		QuestionText:  "pick one",
		QuestionType:  model.MCQ,
		Score:         1,
		Options:       options,
		CorrectOption: "a",
	}}

	assembled, err := AssembleSection(rand.New(rand.NewSource(3)), "MCQ", pool, 1)
	require.NoError(t, err)
	require.Len(t, assembled, 1)

	// 全部选项都在，键值对应关系保持不变
	require.Len(t, assembled[0].Options, 4)
	got := make(map[string]string, 4)
	for _, opt := range assembled[0].Options {
		got[opt.Key] = opt.Text
	}
	assert.Equal(t, map[string]string{"a": "one", "b": "two", "c": "three", "d": "four"}, got)
}
