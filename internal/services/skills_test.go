package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseSkillList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		reply string
		want  []string
	}{
		{"normalizes", "Python, Java , SQL", []string{"java", "python", "sql"}},
		{"dedupes case", "Go, go, GO", []string{"go"}},
		{"skips blanks", "docker,, ,kubernetes,", []string{"docker", "kubernetes"}},
		{"drops prose", "Here are the skills the candidate has listed in the resume, python", []string{"python"}},
		{"empty", "", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseSkillList(tc.reply).Sorted())
		})
	}
}

func TestSkillSetInvariants(t *testing.T) {
	set := NewSkillSet("  Rust ", "", "rust", "\t")

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Contains("rust"))

	data, err := json.Marshal(NewSkillSet("b", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))
}

func TestSelectSkillMode(t *testing.T) {
	assert.Equal(t, ModeResumeSkills, SelectSkillMode("Backend Engineer", RoleResume))
	assert.Equal(t, ModeJobTitleSkills, SelectSkillMode("Backend Engineer", RoleJobDescription))
	assert.Equal(t, ModeJobDescSkills, SelectSkillMode(DefaultJobDescription, RoleJobDescription))
	assert.True(t, IsJobTitle("one two three four five six seven eight nine"))
	assert.False(t, IsJobTitle("one two three four five six seven eight nine ten"))
}

func TestSkillExtractorRoutesPrompts(t *testing.T) {
	llm := &fakeLLM{reply: func(string) (string, error) { return "Go, PostgreSQL", nil }}
	extractor := NewSkillExtractor(llm, NewPromptBuilder(), zap.NewNop())

	skills, err := extractor.Extract(context.Background(), "Backend Engineer", RoleJobDescription)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "postgresql"}, skills.Sorted())
	require.Len(t, llm.prompts, 1)
	assert.True(t, strings.HasPrefix(llm.prompts[0], "List the key skills required for a Backend Engineer role."))
}

func TestSkillExtractorWrapsErrors(t *testing.T) {
	llm := &fakeLLM{reply: func(string) (string, error) { return "", errUpstream }}
	extractor := NewSkillExtractor(llm, NewPromptBuilder(), zap.NewNop())

	_, err := extractor.Extract(context.Background(), "resume text", RoleResume)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUpstream))

	stage, ok := StageOf(err)
	require.True(t, ok)
	assert.Equal(t, StageSkills, stage)
}
