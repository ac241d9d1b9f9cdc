package analytics

import (
	"math"
	"time"

	"github.com/aagmanpal/Intervyo/pkg/metrics"
	"github.com/aagmanpal/Intervyo/pkg/model"
)

// Component weights sum to 1.0.
const (
	weightPractice    = 0.2
	weightScore       = 0.3
	weightConsistency = 0.15
	weightCoverage    = 0.2
	weightImprovement = 0.15
)

const skillCoverageTarget = 10

// ComputeReadiness blends five 0-100 components into a single readiness
// score with a level label and targeted recommendations.
func ComputeReadiness(interviews []model.Interview, now time.Time) model.ReadinessReport {
	interviews = sortChronological(interviews)
	scores := make([]float64, len(interviews))
	recent := 0
	skills := map[string]bool{}
	cutoff := now.AddDate(0, 0, -30)
	for i, iv := range interviews {
		scores[i] = iv.OverallScore
		if iv.CreatedAt.After(cutoff) {
			recent++
		}
		for skill := range iv.SkillScores {
			skills[skill] = true
		}
	}

	c := model.ReadinessComponents{
		Practice:    math.Min(100, float64(10*recent)),
		Score:       metrics.Average(scores),
		Consistency: clamp(100-metrics.StdDev(scores), 0, 100),
		Coverage:    math.Min(100, float64(len(skills))/skillCoverageTarget*100),
		Improvement: clamp(50+improvement(scores), 0, 100),
	}
	total := int(math.Round(
		weightPractice*c.Practice +
			weightScore*c.Score +
			weightConsistency*c.Consistency +
			weightCoverage*c.Coverage +
			weightImprovement*c.Improvement))

	return model.ReadinessReport{
		Score:           total,
		Level:           readinessLevel(total),
		Components:      c,
		Recommendations: recommendations(c),
	}
}

func readinessLevel(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 55:
		return "Moderate"
	case score >= 40:
		return "Needs Work"
	}
	return "Not Ready"
}

func recommendations(c model.ReadinessComponents) []string {
	var recs []string
	if c.Practice < 50 {
		recs = append(recs, "Practice more often: aim for at least one mock interview per week.")
	}
	if c.Score < 70 {
		recs = append(recs, "Focus on answer quality: review the feedback from your lowest-scoring interviews.")
	}
	if c.Consistency < 60 {
		recs = append(recs, "Your scores vary a lot between sessions. Slow down and apply the same structure to every answer.")
	}
	if c.Coverage < 70 {
		recs = append(recs, "Broaden your coverage: practice interviews that exercise skills you have not touched yet.")
	}
	if c.Improvement < 50 {
		recs = append(recs, "Recent sessions scored below your earlier ones. Revisit the fundamentals before your next interview.")
	}
	if len(recs) == 0 {
		recs = append(recs, "You're on track. Keep up the regular practice to stay sharp.")
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
