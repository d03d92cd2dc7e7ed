package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/cancatch/internal/model"
)

func goodOnlyConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.BadChance = 0
	cfg.Seed = 5
	return cfg
}

func TestFastBotWinsGoodOnlyRound(t *testing.T) {
	profile := Profile{Reaction: 100 * time.Millisecond, Accuracy: 1, Miss: 0}
	rounds := Simulate(goodOnlyConfig(), profile, 1, nil)

	require.Len(t, rounds, 1)
	r := rounds[0]
	assert.True(t, r.Won)
	assert.Equal(t, 25, r.Count)
	assert.Equal(t, 25, r.GoodHits)
	assert.Equal(t, int64(22600), r.DurationMs)
}

func TestSlowBotNeverScores(t *testing.T) {
	profile := Profile{Reaction: 2 * time.Second, Accuracy: 1, Miss: 0}
	rounds := Simulate(goodOnlyConfig(), profile, 1, nil)

	require.Len(t, rounds, 1)
	r := rounds[0]
	assert.False(t, r.Won)
	assert.Equal(t, 0, r.Count)
	assert.Equal(t, 0, r.GoodHits)
	assert.Equal(t, int64(30000), r.DurationMs)
}

func TestBotSkipsBadCansWhenAccurate(t *testing.T) {
	cfg := goodOnlyConfig()
	cfg.BadChance = 1
	profile := Profile{Reaction: 100 * time.Millisecond, Accuracy: 1, Miss: 0}

	rounds := Simulate(cfg, profile, 1, nil)
	require.Len(t, rounds, 1)
	assert.Equal(t, 0, rounds[0].BadHits)
	assert.Positive(t, rounds[0].Spawned)
}

func TestBotClicksBadCansWhenCareless(t *testing.T) {
	cfg := goodOnlyConfig()
	cfg.BadChance = 1
	profile := Profile{Reaction: 100 * time.Millisecond, Accuracy: 0, Miss: 0}

	rounds := Simulate(cfg, profile, 1, nil)
	require.Len(t, rounds, 1)
	assert.Equal(t, rounds[0].Spawned, rounds[0].BadHits)
	assert.Equal(t, 0, rounds[0].Count)
}

func TestSimulateRecordsEveryRound(t *testing.T) {
	var recorded []model.RoundStats
	rounds := Simulate(goodOnlyConfig(), DefaultProfile(), 3, func(r model.RoundStats) {
		recorded = append(recorded, r)
	})

	require.Len(t, rounds, 3)
	assert.Equal(t, rounds, recorded)
	ids := map[string]bool{}
	for _, r := range rounds {
		ids[r.ID] = true
		assert.GreaterOrEqual(t, r.Count, 0)
		assert.LessOrEqual(t, r.Count, r.Goal)
	}
	assert.Len(t, ids, 3, "every round gets its own id")
}
