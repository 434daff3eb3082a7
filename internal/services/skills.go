package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// titleWordLimit is the word count under which a job description is treated
// as a bare job title.
const titleWordLimit = 10

// maxSkillWords bounds a single skill token. Longer tokens are prose the model
// wrote instead of a list item and are discarded.
const maxSkillWords = 6

type SkillRole int

const (
	RoleResume SkillRole = iota
	RoleJobDescription
)

func (r SkillRole) String() string {
	if r == RoleJobDescription {
		return "job_description"
	}
	return "resume"
}

// SkillPromptMode says which prompt a text is routed to.
type SkillPromptMode string

const (
	ModeResumeSkills   SkillPromptMode = "resume_skills"
	ModeJobTitleSkills SkillPromptMode = "job_title_skills"
	ModeJobDescSkills  SkillPromptMode = "job_description_skills"
)

// SkillSet holds normalized skill names.
type SkillSet map[string]struct{}

func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, skill := range skills {
		set.Add(skill)
	}
	return set
}

// Add normalizes skill and stores it. Blank input is ignored.
func (s SkillSet) Add(skill string) {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return
	}
	s[skill] = struct{}{}
}

func (s SkillSet) Contains(skill string) bool {
	_, ok := s[skill]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in lexicographic order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// ParseSkillList turns a comma separated model reply into a SkillSet.
func ParseSkillList(reply string) SkillSet {
	set := make(SkillSet)
	for _, token := range strings.Split(reply, ",") {
		token = strings.TrimSpace(token)
		if token == "" || len(strings.Fields(token)) > maxSkillWords {
			continue
		}
		set.Add(token)
	}
	return set
}

// IsJobTitle reports whether a job description is short enough to be a title.
func IsJobTitle(text string) bool {
	return len(strings.Fields(text)) < titleWordLimit
}

// SelectSkillMode picks the prompt used for text in the given role.
func SelectSkillMode(text string, role SkillRole) SkillPromptMode {
	if role != RoleJobDescription {
		return ModeResumeSkills
	}
	if IsJobTitle(text) {
		return ModeJobTitleSkills
	}
	return ModeJobDescSkills
}

type SkillExtractor interface {
	Extract(ctx context.Context, text string, role SkillRole) (SkillSet, error)
}

type skillExtractor struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewSkillExtractor(llm LLMService, prompts *PromptBuilder, log *zap.Logger) SkillExtractor {
	return &skillExtractor{
		llm:     llm,
		prompts: prompts,
		log:     log.Named("skills"),
	}
}

// Extract implements SkillExtractor.
func (s *skillExtractor) Extract(ctx context.Context, text string, role SkillRole) (SkillSet, error) {
	mode := SelectSkillMode(text, role)
	prompt := s.prompts.BuildSkillPrompt(mode, text)

	reply, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return nil, stageErr(StageSkills, err)
	}

	skills := ParseSkillList(strings.TrimSpace(reply))
	s.log.Debug("skills extracted",
		zap.Stringer("role", role),
		zap.String("mode", string(mode)),
		zap.Int("count", skills.Len()))

	return skills, nil
}
