package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/types"
)

func TestEducationCodeTotal(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Diploma", 0},
		{"Bachelors", 1},
		{"Masters", 2},
		{"PhD", 3},
		// 词表外的标签按约定映射为 Bachelors，不报错
		{constants.SentinelUnknown, 1},
		{"Engineering", 1},
		{"B.Sc", 1},
		{"", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EducationCode(tt.label), "label=%q", tt.label)
	}
}

func TestScoreFallbackWithoutModel(t *testing.T) {
	s := NewTreeScorer("")
	assert.False(t, s.Ready())
	assert.Equal(t, "fallback(0)", s.Describe())

	got := s.Score(types.ScoreInput{EducationCode: 3, Experience: 10, SkillCount: 20})
	assert.Equal(t, 0.0, got)
}

func TestScoreMissingModelFile(t *testing.T) {
	s := NewTreeScorer("/nonexistent/path/model.txt")
	assert.False(t, s.Ready())
	assert.Equal(t, 0.0, s.Score(types.ScoreInput{}))
}

func TestScoreInputFeatureOrder(t *testing.T) {
	in := types.ScoreInput{EducationCode: 2, Experience: 4.5, SkillCount: 7}
	assert.Equal(t, []float64{2, 4.5, 7}, in.Features())
}
