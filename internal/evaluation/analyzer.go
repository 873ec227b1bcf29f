// Package evaluation 实现答案评分的纯函数：内容分析、结构分析、打分与等级换算。
// 不依赖数据库与全局状态，便于单元测试。
package evaluation

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitter = regexp.MustCompile(`[.!?]+`)
	punctuation      = regexp.MustCompile(`[^\w\s]`)
)

// transitionWords 用于判断行文结构的固定连接词表
var transitionWords = []string{
	"however", "therefore", "furthermore", "moreover",
	"in addition", "consequently", "thus", "hence",
}

// ContentAnalysis 自由文本的内容分析结果
type ContentAnalysis struct {
	ValidSentences      int     `json:"valid_sentences"`
	MeaningfulSentences int     `json:"meaningful_sentences"`
	KeyCoverage         float64 `json:"key_coverage"`
	TotalWords          int     `json:"total_words"`
}

// StructureAnalysis 自由文本的结构分析结果
type StructureAnalysis struct {
	WellStructured     bool `json:"well_structured"`
	HasIntroduction    bool `json:"has_introduction"`
	HasConclusion      bool `json:"has_conclusion"`
	ParagraphCount     int  `json:"paragraph_count"`
	SentenceCount      int  `json:"sentence_count"`
	UsesTransitionWord bool `json:"uses_transition_words"`
}

// splitSentences 按 . ! ? 切句，去除空白片段
func splitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// sentenceIsValid 拦截刷字数的句子：任一单词（不区分大小写）出现 5 次及以上即无效
func sentenceIsValid(sentence string) bool {
	counts := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(sentence)) {
		counts[w]++
		if counts[w] >= 5 {
			return false
		}
	}
	return true
}

// wordSet 大小写折叠、去标点后的去重词集
func wordSet(text string) map[string]struct{} {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(text), "")
	set := make(map[string]struct{})
	for _, w := range strings.Fields(cleaned) {
		set[w] = struct{}{}
	}
	return set
}

func intersectCount(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// AnalyzeContent 对学生作答与参考答案做关键词覆盖分析。
// 覆盖率 = 作答去重词集与答案关键词集的交集大小 / 关键词数（关键词为空时为 0）。
func AnalyzeContent(text, answerKey string) ContentAnalysis {
	sentences := splitSentences(text)

	validSentences := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if sentenceIsValid(s) {
			validSentences = append(validSentences, s)
		}
	}

	keywords := wordSet(answerKey)

	// 有效句中超过 10 词且与关键词集有交集的，计为有信息量的句子
	meaningful := 0
	for _, s := range validSentences {
		if len(strings.Fields(s)) > 10 && intersectCount(wordSet(s), keywords) > 0 {
			meaningful++
		}
	}

	totalWords := wordSet(text)
	coverage := 0.0
	if len(keywords) > 0 {
		coverage = float64(intersectCount(totalWords, keywords)) / float64(len(keywords))
	}

	return ContentAnalysis{
		ValidSentences:      len(validSentences),
		MeaningfulSentences: meaningful,
		KeyCoverage:         coverage,
		TotalWords:          len(totalWords),
	}
}

// AnalyzeStructure 按换行切段并检查引言/结尾/连接词
func AnalyzeStructure(text string) StructureAnalysis {
	paragraphs := make([]string, 0)
	for _, p := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(p); s != "" {
			paragraphs = append(paragraphs, s)
		}
	}
	sentences := splitSentences(text)

	lower := strings.ToLower(text)
	usesTransitions := false
	for _, w := range transitionWords {
		if strings.Contains(lower, w) {
			usesTransitions = true
			break
		}
	}

	return StructureAnalysis{
		WellStructured:     len(paragraphs) >= 3 && usesTransitions,
		HasIntroduction:    len(paragraphs) >= 1,
		HasConclusion:      len(paragraphs) > 1,
		ParagraphCount:     len(paragraphs),
		SentenceCount:      len(sentences),
		UsesTransitionWord: usesTransitions,
	}
}
