package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGIF(); err != nil {
		return err
	}
	if err := c.validateTrim(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGIF() error {
	if c.GIF.FPS <= 0 {
		return errors.New("gif.fps must be positive")
	}
	if c.GIF.ScaleWidth < 0 {
		return errors.New("gif.scale_width must be zero (source width) or positive")
	}
	return nil
}

func (c *Config) validateTrim() error {
	if strings.ContainsAny(c.Trim.Suffix, `/\`) {
		return fmt.Errorf("trim.suffix %q must not contain path separators", c.Trim.Suffix)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.UI {
	case "auto", "bar", "tui", "log", "none":
		return nil
	default:
		return fmt.Errorf("output.ui must be one of auto, bar, tui, log or none (got %q)", c.Output.UI)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
