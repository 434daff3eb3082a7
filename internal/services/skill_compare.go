package services

// SkillComparison is the gap between job description skills and resume skills.
type SkillComparison struct {
	Missing     []string `json:"missing"`
	Axes        []string `json:"axes"`
	MatchVector []int    `json:"match_vector"`
	Coverage    float64  `json:"coverage"`
}

// CompareSkills lists the job skills absent from the resume and builds a 0/1
// match vector over the job skills in sorted order.
func CompareSkills(jdSkills, resumeSkills SkillSet) SkillComparison {
	axes := jdSkills.Sorted()
	comparison := SkillComparison{
		Missing:     []string{},
		Axes:        axes,
		MatchVector: make([]int, len(axes)),
	}

	matched := 0
	for i, skill := range axes {
		if resumeSkills.Contains(skill) {
			comparison.MatchVector[i] = 1
			matched++
			continue
		}
		comparison.Missing = append(comparison.Missing, skill)
	}

	if len(axes) > 0 {
		comparison.Coverage = float64(matched) / float64(len(axes))
	}

	return comparison
}
