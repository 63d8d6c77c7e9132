// SPDX-License-Identifier: EPL-2.0

// Package config reads the process configuration of the adapters from
// AUDSIM_* environment variables, after loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "AUDSIM_"

// Config is the adapter configuration. Analysis parameters are not part of
// it; they are fixed by the pipeline defaults.
type Config struct {
	Addr           string        // AUDSIM_ADDR
	LogLevel       string        // AUDSIM_LOG_LEVEL
	LogDevelopment bool          // AUDSIM_LOG_DEV
	TrimDB         float64       // AUDSIM_TRIM_DB, 0 disables trimming
	MaxUploadBytes int64         // AUDSIM_MAX_UPLOAD_BYTES, per request
	RequestTimeout time.Duration // AUDSIM_REQUEST_TIMEOUT
}

func Default() Config {
	return Config{
		Addr:           ":8000",
		LogLevel:       "info",
		TrimDB:         20,
		MaxUploadBytes: 64 << 20,
		RequestTimeout: 2 * time.Minute,
	}
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing .env files are ignored; variables already set in the
// environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.str("ADDR", &cfg.Addr)
	p.str("LOG_LEVEL", &cfg.LogLevel)
	p.boolean("LOG_DEV", &cfg.LogDevelopment)
	p.float("TRIM_DB", &cfg.TrimDB)
	p.int64("MAX_UPLOAD_BYTES", &cfg.MaxUploadBytes)
	p.duration("REQUEST_TIMEOUT", &cfg.RequestTimeout)

	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("config: %sADDR is empty", envPrefix)
	case c.TrimDB < 0:
		return fmt.Errorf("config: %sTRIM_DB must not be negative", envPrefix)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("config: %sMAX_UPLOAD_BYTES must be positive", envPrefix)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: %sREQUEST_TIMEOUT must be positive", envPrefix)
	}
	return nil
}

// parser keeps the first error.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(envPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) fail(key, v string, err error) {
	p.err = fmt.Errorf("config: %s%s=%q: %w", envPrefix, key, v, err)
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) boolean(key string, dst *bool) {
	if v, ok := p.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) float(key string, dst *float64) {
	if v, ok := p.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (p *parser) int64(key string, dst *int64) {
	if v, ok := p.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) duration(key string, dst *time.Duration) {
	if v, ok := p.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = d
	}
}
