package config

import (
	"fmt"
	"strings"
	"time"

	"frontiers/game"
	"frontiers/meta"

	"github.com/spf13/viper"
)

// ConfigName is the file Load looks for in the config directory.
const ConfigName = "frontiers.json"

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("search.goroutines", meta.GO_ROUTINES)
	viper.SetDefault("search.nodeBudget", meta.NODE_BUDGET)

	viper.SetDefault("engine.maxTurns", meta.MAX_TURNS)
	viper.SetDefault("engine.pollInterval", meta.POLL_INTERVAL.String())

	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.dsn", "frontiers.db")

	viper.SetDefault("experiments.games", 10)
	viper.SetDefault("experiments.outputDir", "./results")

	for _, t := range []game.PlayerType{game.Cadet, game.Spacer, game.Pirate, game.Admiral} {
		p := game.DefaultPersonality(t)
		prefix := personalityKey(t)
		viper.SetDefault(prefix+"thinkingTime", p.ThinkingTime.String())
		for key, weight := range weights(&p) {
			viper.SetDefault(prefix+key, *weight)
		}
	}

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Personality returns the heuristic profile of an AI type with configured weights applied over
// the built-in ones.
func Personality(t game.PlayerType) game.Personality {
	p := game.DefaultPersonality(t)
	if !t.IsAI() {
		return p
	}

	prefix := personalityKey(t)
	if viper.IsSet(prefix + "thinkingTime") {
		p.ThinkingTime = viper.GetDuration(prefix + "thinkingTime")
	}
	for key, weight := range weights(&p) {
		if viper.IsSet(prefix + key) {
			*weight = viper.GetFloat64(prefix + key)
		}
	}
	return p
}

func personalityKey(t game.PlayerType) string {
	return "personalities." + t.String() + "."
}

// weights maps config keys to the fields of p.
func weights(p *game.Personality) map[string]*float64 {
	w := map[string]*float64{
		"ship":           &p.Ship,
		"shipPerTurn":    &p.ShipPerTurn,
		"fuel":           &p.Fuel,
		"ore":            &p.Ore,
		"colony":         &p.Colony,
		"colonyPending":  &p.ColonyPending,
		"hubNotch":       &p.HubNotch,
		"vp":             &p.VP,
		"tech":           &p.Tech,
		"techPerTurn":    &p.TechPerTurn,
		"techVP":         &p.TechVP,
		"unusedPip":      &p.UnusedPip,
		"win":            &p.Win,
		"aggression":     &p.Aggression,
		"humanPrejudice": &p.HumanPrejudice,
		"random":         &p.Random,
	}
	for kind := game.CardKind(0); kind < game.NumCardKinds; kind++ {
		w["techBonus."+camelKey(kind.String())] = &p.TechBonus[kind]
	}
	for kind := game.RegionKind(0); kind < game.NumRegions; kind++ {
		w["regionBonus."+camelKey(kind.String())] = &p.RegionBonus[kind]
	}
	return w
}

// camelKey turns "Plasma Cannon" into "plasmaCannon".
func camelKey(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		if i == 0 {
			words[i] = strings.ToLower(word)
		}
	}
	return strings.Join(words, "")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
