package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		percentage float64
		expected   string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79.5, "B+"},
		{70, "B+"},
		{69.99, "B"},
		{60, "B"},
		{59.9, "C"},
		{50, "C"},
		{49.999, "Fail"},
		{0, "Fail"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Grade(tt.percentage), "percentage %.3f", tt.percentage)
	}
}
