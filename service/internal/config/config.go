// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/rachel/engine"
)

// Config holds the settings for a batch of simulated games.
type Config struct {
	Players  int          // seats per game, all AI
	Games    int          // number of games to play
	Seed     uint32       // seed of the first game, game i uses Seed+i; 0 picks random seeds
	Ultimate bool         // deal the 56-card deck
	LogLevel logrus.Level // logrus level for session logs
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Players:  4,
		Games:    10,
		Seed:     0,
		Ultimate: false,
		LogLevel: logrus.WarnLevel,
	}
}

// Rules returns the engine rules for the i-th game of the batch. With no
// seed configured the seed is left zero for the session to randomize. Seeds
// wrap around the uint32 range, skipping zero.
func (c Config) Rules(i int) engine.Rules {
	r := engine.Rules{UltimateMode: c.Ultimate}
	if c.Seed != 0 {
		r.Seed = uint32((uint64(c.Seed)-1+uint64(i))%math.MaxUint32) + 1
	}
	return r
}

// Load reads the optional env files, then applies RACHEL_* variables on top of
// Default. With no files given it tries ".env" in the working directory. A
// missing file is not an error; a malformed value is.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("RACHEL_PLAYERS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("RACHEL_PLAYERS: %w", err)
		}
		if n < engine.MinPlayers || n > engine.MaxPlayers {
			return Config{}, fmt.Errorf("RACHEL_PLAYERS: %d outside [%d,%d]", n, engine.MinPlayers, engine.MaxPlayers)
		}
		cfg.Players = n
	}

	if v, ok := lookup("RACHEL_GAMES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("RACHEL_GAMES: %w", err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("RACHEL_GAMES: must be positive, got %d", n)
		}
		cfg.Games = n
	}

	if v, ok := lookup("RACHEL_SEED"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("RACHEL_SEED: %w", err)
		}
		cfg.Seed = uint32(n)
	}

	if v, ok := lookup("RACHEL_ULTIMATE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("RACHEL_ULTIMATE: %w", err)
		}
		cfg.Ultimate = b
	}

	if v, ok := lookup("RACHEL_LOG_LEVEL"); ok {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("RACHEL_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}
