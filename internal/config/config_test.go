package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"secretdeck-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("SDB_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("SDB_GAME_MAX_ROUNDS", "8")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("debug", cfg.Log.Level)
	a.Equal(2, cfg.Game.NumDecks)
	a.Equal(8, cfg.Game.MaxRounds)

	// ensure that it's only loaded once
	_ = os.Setenv("SDB_GAME_MAX_ROUNDS", "9")
	// ensure we aren't using a pointer
	cfg.Game.MaxRounds = -1
	cfg = Instance()
	a.Equal(8, cfg.Game.MaxRounds)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("SDB_CONFIG_FILE", "does-not-exist.yaml")
	defer clear()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, 4, cfg.Game.NumDecks)
	assert.Equal(t, 6, cfg.Game.MaxRounds)
	assert.Equal(t, 3, cfg.Game.SwapsPerRound)
	assert.Equal(t, 10000, cfg.Game.StartingChips)
	assert.Equal(t, 1000000, cfg.Game.TargetBalance)
	assert.Equal(t, 21, cfg.Game.BustLimit)
}
