package config

import (
	"errors"
	"fmt"

	"github.com/dshills/voxnav/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownSetting indicates a key that no section defines.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidValue indicates a value of the wrong type or out of range.
	ErrInvalidValue = errors.New("invalid value")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ConfigError describes a setting that could not be applied.
type ConfigError struct {
	// Path is the configuration file, or "env" for environment overrides.
	Path string
	// Key is the dotted setting path, e.g. "speech.rate".
	Key string
	// Message describes the problem.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	src := e.Path
	if src == "" {
		src = "defaults"
	}
	if e.Key == "" {
		return fmt.Sprintf("config %s: %s", src, e.Message)
	}
	return fmt.Sprintf("config %s: %s: %s", src, e.Key, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalid(path, key, format string, args ...any) *ConfigError {
	return &ConfigError{
		Path:    path,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInvalidValue,
	}
}
