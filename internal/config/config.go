package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"secretdeck-server/internal/util"
)

// Config provides configuration for Secret Deck Blackjack
type Config struct {
	loaded bool

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`

	Game struct {
		NumDecks      int `yaml:"numDecks" envconfig:"num_decks"`
		MaxRounds     int `yaml:"maxRounds" envconfig:"max_rounds"`
		SwapsPerRound int `yaml:"swapsPerRound" envconfig:"swaps_per_round"`
		StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
		TargetBalance int `yaml:"targetBalance" envconfig:"target_balance"`
		BustLimit     int `yaml:"bustLimit" envconfig:"bust_limit"`
	} `yaml:"game"`
}

var config Config

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	var c Config
	c.Log.Level = "info"
	c.Game.NumDecks = 4
	c.Game.MaxRounds = 6
	c.Game.SwapsPerRound = 3
	c.Game.StartingChips = 10000
	c.Game.TargetBalance = 1000000
	c.Game.BustLimit = 21
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults are used instead.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("SDB_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("sdb", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
