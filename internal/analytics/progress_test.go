package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

func completedAt(score float64, at time.Time, skills map[string]float64) model.Interview {
	return model.Interview{
		ID:           "iv-" + at.Format("20060102150405"),
		UserID:       "u1",
		Status:       model.StatusCompleted,
		OverallScore: score,
		SkillScores:  skills,
		CreatedAt:    at,
	}
}

func TestComputeProgressEmpty(t *testing.T) {
	got := ComputeProgress(nil, time.Now())

	assert.Equal(t, 0, got.TotalInterviews)
	assert.Equal(t, 0.0, got.AverageScore)
	assert.Equal(t, TrendNeutral, got.Trend)
	assert.Equal(t, 0, got.StreakDays)
	assert.Empty(t, got.Strengths)
	assert.Empty(t, got.WeakAreas)
}

func TestComputeProgressAverageAndConsistency(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ivs := []model.Interview{
		completedAt(70, now.AddDate(0, 0, -2), nil),
		completedAt(80, now.AddDate(0, 0, -1), nil),
		completedAt(90, now, nil),
	}

	got := ComputeProgress(ivs, now)

	assert.Equal(t, 3, got.TotalInterviews)
	assert.Equal(t, 80.0, got.AverageScore)
	// stddev of 70/80/90 is 8.16, consistency is 100 minus that
	assert.InDelta(t, 91.84, got.Consistency, 0.01)
}

func TestComputeProgressIdenticalScoresFullConsistency(t *testing.T) {
	now := time.Now().UTC()
	ivs := []model.Interview{
		completedAt(50, now.AddDate(0, 0, -1), nil),
		completedAt(50, now, nil),
	}

	got := ComputeProgress(ivs, now)

	assert.Equal(t, 100.0, got.Consistency)
}

func TestComputeProgressTrend(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		scores []float64
		trend  string
	}{
		{"improving", []float64{50, 55, 80, 85}, TrendImproving},
		{"declining", []float64{85, 80, 55, 50}, TrendDeclining},
		{"flat", []float64{70, 71, 70, 71}, TrendNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ivs := make([]model.Interview, len(tc.scores))
			for i, s := range tc.scores {
				ivs[i] = completedAt(s, now.AddDate(0, 0, i-len(tc.scores)), nil)
			}
			got := ComputeProgress(ivs, now)
			assert.Equal(t, tc.trend, got.Trend)
		})
	}
}

func TestComputeProgressImprovementOddSplit(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	// first half {60}, second half {70, 80}: improvement 75 - 60 = 15
	ivs := []model.Interview{
		completedAt(60, now.AddDate(0, 0, -2), nil),
		completedAt(70, now.AddDate(0, 0, -1), nil),
		completedAt(80, now, nil),
	}

	got := ComputeProgress(ivs, now)

	assert.Equal(t, 15.0, got.Improvement)
}

func TestComputeProgressStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("consecutive days through today", func(t *testing.T) {
		ivs := []model.Interview{
			completedAt(70, now.AddDate(0, 0, -2), nil),
			completedAt(75, now.AddDate(0, 0, -1), nil),
			completedAt(80, now.Add(-2*time.Hour), nil),
		}
		got := ComputeProgress(ivs, now)
		assert.Equal(t, 3, got.StreakDays)
	})

	t.Run("no interview today breaks the streak", func(t *testing.T) {
		ivs := []model.Interview{
			completedAt(70, now.AddDate(0, 0, -2), nil),
			completedAt(75, now.AddDate(0, 0, -1), nil),
		}
		got := ComputeProgress(ivs, now)
		assert.Equal(t, 0, got.StreakDays)
	})

	t.Run("gap stops the walk", func(t *testing.T) {
		ivs := []model.Interview{
			completedAt(70, now.AddDate(0, 0, -3), nil),
			completedAt(75, now, nil),
		}
		got := ComputeProgress(ivs, now)
		assert.Equal(t, 1, got.StreakDays)
	})
}

func TestComputeProgressSkillRanking(t *testing.T) {
	now := time.Now().UTC()
	ivs := []model.Interview{
		completedAt(80, now.AddDate(0, 0, -1), map[string]float64{
			"algorithms": 90, "sql": 60, "system design": 75,
		}),
		completedAt(70, now, map[string]float64{
			"algorithms": 80, "sql": 50, "communication": 85,
		}),
	}

	got := ComputeProgress(ivs, now)

	require.NotEmpty(t, got.Strengths)
	assert.Equal(t, "algorithms", got.Strengths[0].Skill)
	assert.Equal(t, 85.0, got.Strengths[0].Score)
	require.NotEmpty(t, got.WeakAreas)
	assert.Equal(t, "sql", got.WeakAreas[0].Skill)
	assert.Equal(t, 55.0, got.WeakAreas[0].Score)
}

func TestComputeReadinessComponents(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ivs := []model.Interview{
		completedAt(80, now.AddDate(0, 0, -3), map[string]float64{"algorithms": 80, "sql": 70}),
		completedAt(80, now.AddDate(0, 0, -1), map[string]float64{"algorithms": 85, "system design": 75}),
	}

	got := ComputeReadiness(ivs, now)

	assert.Equal(t, 20.0, got.Components.Practice) // 2 recent interviews
	assert.Equal(t, 80.0, got.Components.Score)
	assert.Equal(t, 100.0, got.Components.Consistency)
	assert.Equal(t, 30.0, got.Components.Coverage) // 3 of 10 skills
	assert.Equal(t, 50.0, got.Components.Improvement)
}

func TestComputeReadinessImprovement(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	chronological := func(scores ...float64) []model.Interview {
		ivs := make([]model.Interview, len(scores))
		for i, s := range scores {
			ivs[i] = completedAt(s, now.AddDate(0, 0, i-len(scores)), nil)
		}
		return ivs
	}

	t.Run("improving run raises the component", func(t *testing.T) {
		got := ComputeReadiness(chronological(50, 55, 85, 90), now)
		// second half averages 35 above the first half
		assert.Equal(t, 85.0, got.Components.Improvement)
	})

	t.Run("declining run lowers it", func(t *testing.T) {
		got := ComputeReadiness(chronological(90, 85, 55, 50), now)
		assert.Equal(t, 15.0, got.Components.Improvement)
	})

	t.Run("store order does not matter", func(t *testing.T) {
		ivs := chronological(50, 55, 85, 90)
		reversed := make([]model.Interview, len(ivs))
		for i, iv := range ivs {
			reversed[len(ivs)-1-i] = iv
		}
		assert.Equal(t, ComputeReadiness(ivs, now), ComputeReadiness(reversed, now))
	})
}

func TestComputeReadinessLevels(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{90, "Excellent"},
		{85, "Excellent"},
		{70, "Good"},
		{55, "Moderate"},
		{40, "Needs Work"},
		{39, "Not Ready"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, readinessLevel(tc.score), "score %d", tc.score)
	}
}

func TestComputeReadinessRecommendations(t *testing.T) {
	t.Run("weak profile gets targeted advice", func(t *testing.T) {
		got := ComputeReadiness(nil, time.Now())
		assert.Equal(t, "Not Ready", got.Level)
		assert.NotEmpty(t, got.Recommendations)
		assert.GreaterOrEqual(t, len(got.Recommendations), 3)
	})

	t.Run("strong profile gets the on-track message", func(t *testing.T) {
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		skills := map[string]float64{}
		for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			skills[s] = 90
		}
		var ivs []model.Interview
		for i := 0; i < 6; i++ {
			ivs = append(ivs, completedAt(90, now.AddDate(0, 0, -i), skills))
		}
		got := ComputeReadiness(ivs, now)
		require.Len(t, got.Recommendations, 1)
		assert.Contains(t, got.Recommendations[0], "on track")
	})
}
