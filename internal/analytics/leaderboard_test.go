package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

func completedFor(userID string, scores ...float64) []model.Interview {
	out := make([]model.Interview, len(scores))
	for i, s := range scores {
		out[i] = model.Interview{
			UserID:       userID,
			Status:       model.StatusCompleted,
			OverallScore: s,
		}
	}
	return out
}

func TestCompositeScore(t *testing.T) {
	// avg 80, stddev 0, activity 2*2=4: 0.6*80 + 0.25*100 + 0.15*4 = 73.6 -> 74
	assert.Equal(t, 74.0, CompositeScore([]float64{80, 80}))
}

func TestRankUsersOrdering(t *testing.T) {
	var ivs []model.Interview
	ivs = append(ivs, completedFor("alice", 90, 92, 88)...)
	ivs = append(ivs, completedFor("bob", 70, 75)...)
	ivs = append(ivs, completedFor("carol", 50)...)

	entries := RankUsers(ivs)

	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, "bob", entries[1].UserID)
	assert.Equal(t, "carol", entries[2].UserID)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, 3, entries[0].Interviews)
	assert.Greater(t, entries[0].Percentile, entries[2].Percentile)
}

func TestRankUsersTiesGetConsecutiveRanks(t *testing.T) {
	var ivs []model.Interview
	ivs = append(ivs, completedFor("zoe", 80, 80)...)
	ivs = append(ivs, completedFor("amy", 80, 80)...)

	entries := RankUsers(ivs)

	require.Len(t, entries, 2)
	assert.Equal(t, entries[0].CompositeScore, entries[1].CompositeScore)
	// identical composites still rank 1 and 2, ordered by user id
	assert.Equal(t, "amy", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "zoe", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRankUsersEmpty(t *testing.T) {
	assert.Empty(t, RankUsers(nil))
}

type fakeAllCompletedLister struct {
	interviews []model.Interview
	calls      int
}

func (f *fakeAllCompletedLister) ListCompleted(context.Context) ([]model.Interview, error) {
	f.calls++
	return f.interviews, nil
}

type fakeNameResolver struct {
	names map[string]model.User
}

func (f *fakeNameResolver) GetManyByID(_ context.Context, ids []string) (map[string]model.User, error) {
	return f.names, nil
}

func TestLeaderboardTopCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	lister := &fakeAllCompletedLister{interviews: completedFor("alice", 90, 85)}
	users := &fakeNameResolver{names: map[string]model.User{"alice": {ID: "alice", Name: "Alice"}}}
	svc := NewLeaderboardService(lister, users, rdb, time.Minute, zap.NewNop())

	first, err := svc.Top(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Alice", first[0].Name)
	assert.Equal(t, 1, lister.calls)

	// second call is served from the cache
	second, err := svc.Top(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, lister.calls)

	// cache expiry forces a recompute
	mr.FastForward(2 * time.Minute)
	_, err = svc.Top(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestLeaderboardTopWithoutRedis(t *testing.T) {
	lister := &fakeAllCompletedLister{interviews: completedFor("bob", 70)}
	svc := NewLeaderboardService(lister, nil, nil, time.Minute, zap.NewNop())

	entries, err := svc.Top(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].UserID)
}

func TestLeaderboardTopUnreachableRedisDegrades(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	lister := &fakeAllCompletedLister{interviews: completedFor("bob", 70)}
	svc := NewLeaderboardService(lister, nil, rdb, time.Minute, zap.NewNop())

	entries, err := svc.Top(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
}
