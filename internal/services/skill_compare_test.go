package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareSkills(t *testing.T) {
	got := CompareSkills(NewSkillSet("python", "sql", "git"), NewSkillSet("python", "git"))

	assert.Equal(t, []string{"sql"}, got.Missing)
	assert.Equal(t, []string{"git", "python", "sql"}, got.Axes)
	assert.Equal(t, []int{1, 1, 0}, got.MatchVector)
	assert.InDelta(t, 2.0/3.0, got.Coverage, 1e-9)
}

func TestCompareSkillsEmptyJD(t *testing.T) {
	got := CompareSkills(NewSkillSet(), NewSkillSet("go"))

	assert.NotNil(t, got.Missing)
	assert.Empty(t, got.Missing)
	assert.Empty(t, got.Axes)
	assert.Zero(t, got.Coverage)
}

func TestCompareSkillsFullMatch(t *testing.T) {
	got := CompareSkills(NewSkillSet("go"), NewSkillSet("go", "rust"))

	assert.Empty(t, got.Missing)
	assert.Equal(t, []int{1}, got.MatchVector)
	assert.Equal(t, 1.0, got.Coverage)
}
