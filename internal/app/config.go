package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior. Populated from the environment, then
// validated; Validate also fills defaults so a zero Config is usable.
type Config struct {
	DataDir     string `env:"PROMPTDOJO_DATA_DIR"`
	PacksDir    string `env:"PROMPTDOJO_PACKS_DIR" envDefault:"packs"`
	UserID      string `env:"PROMPTDOJO_USER" envDefault:"local"`
	JournalPath string `env:"PROMPTDOJO_JOURNAL"`
	Debug       bool   `env:"PROMPTDOJO_DEBUG"`
	ASCIIOnly   bool   `env:"PROMPTDOJO_ASCII"`
	UI          UIConfig
}

type UIConfig struct {
	StyleVariant string `env:"PROMPTDOJO_STYLE"`
	MotionLevel  string `env:"PROMPTDOJO_MOTION"`
}

func DefaultConfig() Config {
	return Config{
		PacksDir: "packs",
		UserID:   "local",
		UI: UIConfig{
			StyleVariant: "dojo_dark",
			MotionLevel:  "full",
		},
	}
}

// FromEnv builds a Config from defaults overlaid with environment
// variables.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.UserID == "" {
		c.UserID = "local"
	}
	switch c.UI.StyleVariant {
	case "", "dojo_dark", "paper_light", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "dojo_dark"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "promptdojo")
	}

	return nil
}
