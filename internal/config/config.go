// Package config loads server and CLI settings from defaults, an optional
// YAML file, and the environment (with .env support).
package config

import (
    "fmt"
    "os"
    "strconv"
    "time"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
    "gopkg.in/yaml.v2"

    "github.com/jaminalder/tictactoe-ai/internal/ai"
)

// Config holds runtime settings.
type Config struct {
    Addr       string `yaml:"addr"`
    LogLevel   string `yaml:"log_level"`
    AIDelay    string `yaml:"ai_delay"`
    Difficulty string `yaml:"difficulty"`
    // Seed for the AI random source; 0 means seed from the clock.
    Seed int64 `yaml:"seed"`
}

// Default returns the built-in settings.
func Default() Config {
    return Config{
        Addr:       ":8080",
        LogLevel:   "info",
        AIDelay:    "400ms",
        Difficulty: "hard",
    }
}

// Load applies, in order: defaults, the YAML file at path (if non-empty),
// then environment variables. A .env file in the working directory is read
// first if present.
func Load(path string) (Config, error) {
    _ = godotenv.Load()

    cfg := Default()
    if path != "" {
        raw, err := os.ReadFile(path)
        if err != nil {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err := yaml.Unmarshal(raw, &cfg); err != nil {
            return cfg, fmt.Errorf("parse config %s: %w", path, err)
        }
    }
    if err := cfg.applyEnv(); err != nil {
        return cfg, err
    }
    return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
    if v := os.Getenv("PORT"); v != "" {
        c.Addr = ":" + v
    }
    if v := os.Getenv("TTT_ADDR"); v != "" {
        c.Addr = v
    }
    if v := os.Getenv("LOG_LEVEL"); v != "" {
        c.LogLevel = v
    }
    if v := os.Getenv("TTT_AI_DELAY"); v != "" {
        c.AIDelay = v
    }
    if v := os.Getenv("TTT_DIFFICULTY"); v != "" {
        c.Difficulty = v
    }
    if v := os.Getenv("TTT_SEED"); v != "" {
        seed, err := strconv.ParseInt(v, 10, 64)
        if err != nil {
            return fmt.Errorf("TTT_SEED: %w", err)
        }
        c.Seed = seed
    }
    return nil
}

// Validate checks that every field parses.
func (c Config) Validate() error {
    if c.Addr == "" {
        return fmt.Errorf("addr must not be empty")
    }
    if _, err := c.Level(); err != nil {
        return err
    }
    if _, err := c.Delay(); err != nil {
        return err
    }
    if _, err := c.DefaultDifficulty(); err != nil {
        return err
    }
    return nil
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
    lvl, err := zerolog.ParseLevel(c.LogLevel)
    if err != nil {
        return zerolog.InfoLevel, fmt.Errorf("log level: %w", err)
    }
    return lvl, nil
}

// Delay parses AIDelay; an empty value means no delay.
func (c Config) Delay() (time.Duration, error) {
    if c.AIDelay == "" {
        return 0, nil
    }
    d, err := time.ParseDuration(c.AIDelay)
    if err != nil {
        return 0, fmt.Errorf("ai delay: %w", err)
    }
    if d < 0 {
        return 0, fmt.Errorf("ai delay: negative duration %s", d)
    }
    return d, nil
}

// DefaultDifficulty parses Difficulty.
func (c Config) DefaultDifficulty() (ai.Difficulty, error) {
    return ai.ParseDifficulty(c.Difficulty)
}

// RandSeed returns Seed, or the current time when Seed is zero.
func (c Config) RandSeed() int64 {
    if c.Seed != 0 {
        return c.Seed
    }
    return time.Now().UnixNano()
}
