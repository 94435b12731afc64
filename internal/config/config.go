// Package config holds the settings of the huff command. Values start from
// Default, are overlaid by an optional TOML file and finally by command line
// flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/axiomhq/huffman"
	"github.com/axiomhq/huffman/internal/logging"
)

// BufferConfig mirrors huffman.BufferConfig with TOML keys.
type BufferConfig struct {
	InputSize  int `toml:"input"`
	OutputSize int `toml:"output"`
}

// Config is the full command configuration.
type Config struct {
	Buffer BufferConfig   `toml:"buffer"`
	Log    logging.Config `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	def := huffman.DefaultConfig()
	return Config{
		Buffer: BufferConfig{
			InputSize:  def.Buffer.InputSize,
			OutputSize: def.Buffer.OutputSize,
		},
		Log: logging.DefaultConfig,
	}
}

// LoadFile overlays the TOML file at path onto cfg. Keys that match no
// setting are rejected.
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks the buffer sizes and log settings.
func (c *Config) Validate() error {
	if err := c.Codec(nil).Validate(); err != nil {
		return err
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		return fmt.Errorf("verbosity %d out of range 0..5", c.Log.Verbosity)
	}
	if c.Log.File == "" && c.Log.Compress {
		return errors.New("log.compress requires log.file")
	}
	return nil
}

// Dump writes cfg as TOML.
func (c *Config) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Codec converts the buffer settings into a codec configuration.
func (c *Config) Codec(log *slog.Logger) huffman.Config {
	return huffman.Config{
		Buffer: huffman.BufferConfig{
			InputSize:  c.Buffer.InputSize,
			OutputSize: c.Buffer.OutputSize,
		},
		Logger: log,
	}
}
