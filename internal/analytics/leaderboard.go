package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/pkg/metrics"
	"github.com/aagmanpal/Intervyo/pkg/model"
)

const leaderboardCacheKey = "leaderboard:v1"

// AllCompletedLister provides completed interviews across every user.
type AllCompletedLister interface {
	ListCompleted(ctx context.Context) ([]model.Interview, error)
}

// NameResolver attaches display names to ranked entries.
type NameResolver interface {
	GetManyByID(ctx context.Context, ids []string) (map[string]model.User, error)
}

// LeaderboardService computes the ranked roster on demand, with a short-lived
// Redis cache in front so a busy leaderboard page does not hammer the store.
type LeaderboardService struct {
	interviews AllCompletedLister
	users      NameResolver
	rdb        *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewLeaderboardService(interviews AllCompletedLister, users NameResolver, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		interviews: interviews,
		users:      users,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Top returns the full ranked roster. Cache failures degrade to a recompute,
// never to an error.
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var cached []model.LeaderboardEntry
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	ivs, err := s.interviews.ListCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interviews: %w", err)
	}
	entries := RankUsers(ivs)

	if s.users != nil && len(entries) > 0 {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.UserID
		}
		names, err := s.users.GetManyByID(ctx, ids)
		if err != nil {
			s.logger.Warn("leaderboard name lookup failed", zap.Error(err))
		} else {
			for i := range entries {
				entries[i].Name = names[entries[i].UserID].Name
			}
		}
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, leaderboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

// RankUsers builds the ranked roster from completed interviews. Composite
// score blends average score, consistency, and activity; ranks are dense
// sequential integers starting at 1, so tied composites still get distinct
// consecutive ranks.
func RankUsers(interviews []model.Interview) []model.LeaderboardEntry {
	scoresByUser := map[string][]float64{}
	for _, iv := range interviews {
		scoresByUser[iv.UserID] = append(scoresByUser[iv.UserID], iv.OverallScore)
	}

	entries := make([]model.LeaderboardEntry, 0, len(scoresByUser))
	population := make([]float64, 0, len(scoresByUser))
	for userID, scores := range scoresByUser {
		composite := CompositeScore(scores)
		entries = append(entries, model.LeaderboardEntry{
			UserID:         userID,
			CompositeScore: composite,
			Interviews:     len(scores),
		})
		population = append(population, composite)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CompositeScore != entries[j].CompositeScore {
			return entries[i].CompositeScore > entries[j].CompositeScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Percentile = metrics.Percentile(entries[i].CompositeScore, population)
	}
	return entries
}

// CompositeScore is the leaderboard ranking metric:
// 0.6*average + 0.25*consistency + 0.15*activity, rounded.
func CompositeScore(scores []float64) float64 {
	avg := metrics.Average(scores)
	consistency := 100 - metrics.StdDev(scores)
	activity := math.Min(float64(2*len(scores)), 100)
	return math.Round(0.6*avg + 0.25*consistency + 0.15*activity)
}
