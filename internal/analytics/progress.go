// Package analytics computes the derived, read-only views over completed
// interviews: per-user progress and readiness, and the cross-user
// leaderboard. All heavy lifting happens in pure functions so the service
// wrappers stay thin.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/pkg/metrics"
	"github.com/aagmanpal/Intervyo/pkg/model"
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendNeutral   = "neutral"
)

// CompletedLister is the slice of the interview gateway the aggregator needs.
type CompletedLister interface {
	ListCompletedByUser(ctx context.Context, userID string) ([]model.Interview, error)
}

type ProgressService struct {
	interviews CompletedLister
	logger     *zap.Logger
	now        func() time.Time
}

func NewProgressService(interviews CompletedLister, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		interviews: interviews,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProgressService) Progress(ctx context.Context, userID string) (model.ProgressAnalytics, error) {
	ivs, err := s.interviews.ListCompletedByUser(ctx, userID)
	if err != nil {
		return model.ProgressAnalytics{}, fmt.Errorf("load interviews: %w", err)
	}
	return ComputeProgress(ivs, s.now()), nil
}

func (s *ProgressService) Readiness(ctx context.Context, userID string) (model.ReadinessReport, error) {
	ivs, err := s.interviews.ListCompletedByUser(ctx, userID)
	if err != nil {
		return model.ReadinessReport{}, fmt.Errorf("load interviews: %w", err)
	}
	return ComputeReadiness(ivs, s.now()), nil
}

// ComputeProgress derives the progress view from a user's completed
// interviews. Empty input yields an explicit zeroed, neutral result.
func ComputeProgress(interviews []model.Interview, now time.Time) model.ProgressAnalytics {
	out := model.ProgressAnalytics{
		Trend:     TrendNeutral,
		Strengths: []model.SkillScore{},
		WeakAreas: []model.SkillScore{},
	}
	if len(interviews) == 0 {
		return out
	}

	sorted := sortChronological(interviews)

	scores := make([]float64, len(sorted))
	for i, iv := range sorted {
		scores[i] = iv.OverallScore
	}

	out.TotalInterviews = len(sorted)
	out.AverageScore = metrics.Average(scores)
	out.Consistency = math.Max(0, 100-metrics.StdDev(scores))
	out.Improvement = improvement(scores)
	switch {
	case out.Improvement > 5:
		out.Trend = TrendImproving
	case out.Improvement < -5:
		out.Trend = TrendDeclining
	}
	out.StreakDays = streak(sorted, now)

	ranked := rankedSkills(sorted)
	out.Strengths = topN(ranked, 5)
	out.WeakAreas = bottomN(ranked, 5)
	return out
}

// sortChronological returns a copy ordered by CreatedAt ascending. The half
// splits below assume chronological order; store results carry no guarantee.
func sortChronological(interviews []model.Interview) []model.Interview {
	out := make([]model.Interview, len(interviews))
	copy(out, interviews)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// improvement is the average of the second half minus the average of the
// first half, with the first half taking the floor of the midpoint split.
// Callers pass scores in chronological order.
func improvement(scores []float64) float64 {
	mid := len(scores) / 2
	diff := metrics.Average(scores[mid:]) - metrics.Average(scores[:mid])
	return math.Round(diff*100) / 100
}

// streak counts consecutive calendar days with at least one interview,
// walking backward from today and breaking at the first gap.
func streak(interviews []model.Interview, now time.Time) int {
	days := map[string]bool{}
	for _, iv := range interviews {
		days[iv.CreatedAt.UTC().Format("2006-01-02")] = true
	}
	count := 0
	day := now.UTC()
	for days[day.Format("2006-01-02")] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

// rankedSkills averages each skill's scores across interviews and returns
// them ordered best to worst. Ties order alphabetically so output is stable.
func rankedSkills(interviews []model.Interview) []model.SkillScore {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, iv := range interviews {
		for skill, score := range iv.SkillScores {
			sums[skill] += score
			counts[skill]++
		}
	}
	out := make([]model.SkillScore, 0, len(sums))
	for skill, sum := range sums {
		avg := math.Round(sum/float64(counts[skill])*100) / 100
		out = append(out, model.SkillScore{Skill: skill, Score: avg})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

func topN(ranked []model.SkillScore, n int) []model.SkillScore {
	if len(ranked) < n {
		n = len(ranked)
	}
	return append([]model.SkillScore{}, ranked[:n]...)
}

func bottomN(ranked []model.SkillScore, n int) []model.SkillScore {
	if len(ranked) < n {
		n = len(ranked)
	}
	out := make([]model.SkillScore, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		out = append(out, ranked[i])
	}
	return out
}
