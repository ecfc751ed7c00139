package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"nazar/internal/config"
	"nazar/internal/logging"
	"nazar/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// newLogger builds the CLI logger writing to stderr and the run log file.
// verbose forces debug level regardless of configuration.
func (c *commandContext) newLogger(verbose bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stderr",
			filepath.Join(cfg.Paths.LogDir, "nazar.log"),
		},
	})
}

func (c *commandContext) analysisStore(logger *slog.Logger) (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.New(cfg.Paths.DataDir, logger), nil
}
