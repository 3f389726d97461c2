// Package config loads vid2gif settings from TOML, applies defaults, expands
// paths and validates the result. Command-line flags override what is
// loaded here.
package config
