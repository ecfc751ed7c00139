package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInference()
	c.normalizeAnalysis()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeInference() {
	if c.Inference.APIToken == "" {
		if value, ok := os.LookupEnv("HF_API_TOKEN"); ok {
			c.Inference.APIToken = value
		}
	}
	c.Inference.APIToken = strings.TrimSpace(c.Inference.APIToken)
	c.Inference.BaseURL = strings.TrimSpace(c.Inference.BaseURL)
	if c.Inference.BaseURL == "" {
		c.Inference.BaseURL = defaultInferenceBaseURL
	}
	c.Inference.BaseURL = strings.TrimRight(c.Inference.BaseURL, "/")
	if c.Inference.TimeoutSeconds <= 0 {
		c.Inference.TimeoutSeconds = defaultInferenceTimeout
	}
	c.Inference.PersianSentimentModel = strings.TrimSpace(c.Inference.PersianSentimentModel)
	c.Inference.TranslationModel = strings.TrimSpace(c.Inference.TranslationModel)
	c.Inference.EnglishEmotionModel = strings.TrimSpace(c.Inference.EnglishEmotionModel)
	c.Inference.IronyModel = strings.TrimSpace(c.Inference.IronyModel)
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.MaxCommentChars <= 0 {
		c.Analysis.MaxCommentChars = defaultMaxCommentChars
	}
	if c.Analysis.CommentsPerVideo <= 0 {
		c.Analysis.CommentsPerVideo = defaultCommentsPerVideo
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
