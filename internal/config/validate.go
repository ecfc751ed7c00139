package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInference(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateInference() error {
	if c.Inference.BaseURL == "" {
		return errors.New("inference.base_url must be set")
	}
	for name, model := range map[string]string{
		"inference.persian_sentiment_model": c.Inference.PersianSentimentModel,
		"inference.translation_model":       c.Inference.TranslationModel,
		"inference.english_emotion_model":   c.Inference.EnglishEmotionModel,
		"inference.irony_model":             c.Inference.IronyModel,
	} {
		if model == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.MaxCommentChars < 1 {
		return errors.New("analysis.max_comment_chars must be positive")
	}
	if c.Analysis.CommentsPerVideo < 1 {
		return errors.New("analysis.comments_per_video must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
