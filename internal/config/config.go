package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SutrasDir string `yaml:"sutras_dir"`
	Database  struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Server struct {
		Addr      string `yaml:"addr"`
		StaticDir string `yaml:"static_dir"` // reader front-end, optional
	} `yaml:"server"`
	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{SutrasDir: "sutras"}
	cfg.Database.Path = "dizang.db"
	cfg.Server.Addr = ":8080"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error; environment variables override both.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if dir := os.Getenv("DIZANG_SUTRAS_DIR"); dir != "" {
		cfg.SutrasDir = dir
	}
	if db := os.Getenv("DIZANG_DB"); db != "" {
		cfg.Database.Path = db
	}
	if addr := os.Getenv("DIZANG_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := os.Getenv("DIZANG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}
