// Package metrics provides the pure scoring functions shared by the analytics
// and leaderboard services. Nothing here touches I/O or package state.
package metrics

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Average returns the arithmetic mean rounded to 2 decimal places.
// Non-finite entries are ignored; an empty or all-invalid input yields 0.
func Average(scores []float64) float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if !valid(s) {
			continue
		}
		sum += s
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// Percentile returns the share of the population strictly below score,
// scaled to 0-100 and rounded to the nearest integer. Empty population
// yields 0.
func Percentile(score float64, population []float64) int {
	if len(population) == 0 {
		return 0
	}
	below := 0
	for _, p := range population {
		if p < score {
			below++
		}
	}
	return int(math.Round(float64(below) / float64(len(population)) * 100))
}

// StdDev returns the population standard deviation (divide by N) rounded to
// 2 decimal places. Empty or all-invalid input yields 0.
func StdDev(values []float64) float64 {
	clean := values[:0:0]
	for _, v := range values {
		if valid(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return 0
	}
	var sum float64
	for _, v := range clean {
		sum += v
	}
	mean := sum / float64(len(clean))
	var sq float64
	for _, v := range clean {
		d := v - mean
		sq += d * d
	}
	return round2(math.Sqrt(sq / float64(len(clean))))
}

var difficultyMultipliers = map[string]float64{
	"easy":   0.8,
	"medium": 1.0,
	"hard":   1.3,
	"expert": 1.5,
}

// Multiplier returns the difficulty weighting factor; unknown difficulties
// get the neutral 1.0.
func Multiplier(difficulty string) float64 {
	if m, ok := difficultyMultipliers[difficulty]; ok {
		return m
	}
	return 1.0
}

// Grade maps a score to a letter grade on fixed thresholds.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "C+"
	case score >= 65:
		return "C"
	case score >= 60:
		return "D"
	}
	return "F"
}

// Summary is the derived metric bundle for one completed interview.
type Summary struct {
	Accuracy        int     `json:"accuracy"`
	AverageScore    float64 `json:"average_score"`
	WeightedScore   float64 `json:"weighted_score"`
	Grade           string  `json:"grade"`
	DurationSeconds int     `json:"duration_seconds"`
}

// ForInterview computes the per-interview metric bundle: answer accuracy,
// mean question score, difficulty-weighted score, and letter grade.
func ForInterview(total, correct, durationSeconds int, perQuestionScores []float64, difficulty string) Summary {
	accuracy := 0
	if total > 0 {
		accuracy = int(math.Round(float64(correct) / float64(total) * 100))
	}
	avg := Average(perQuestionScores)
	weighted := round2(avg * Multiplier(difficulty))
	return Summary{
		Accuracy:        accuracy,
		AverageScore:    avg,
		WeightedScore:   weighted,
		Grade:           Grade(weighted),
		DurationSeconds: durationSeconds,
	}
}
