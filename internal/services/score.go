package services

import (
	"regexp"
	"strconv"
)

// MaxReportScore is the denominator used in report score tokens.
const MaxReportScore = 5.0

var scoreTokenPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)/5`)

// ExtractScores returns every "<n>/5" value in text, left to right. A longer
// denominator still matches on its leading 5.
func ExtractScores(text string) []float64 {
	matches := scoreTokenPattern.FindAllStringSubmatch(text, -1)
	scores := make([]float64, 0, len(matches))
	for _, match := range matches {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		scores = append(scores, value)
	}
	return scores
}

// AggregateScore is the mean report score normalized to [0,1] for scores in
// range. A report without score tokens yields exactly 0. Tokens are not
// bounded on the right, so "10/50" reads as 10/5 and the result exceeds 1.
func AggregateScore(text string) float64 {
	scores := ExtractScores(text)
	if len(scores) == 0 {
		return 0.0
	}

	var sum float64
	for _, score := range scores {
		sum += score
	}
	return sum / (MaxReportScore * float64(len(scores)))
}
