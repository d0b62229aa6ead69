package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/rohmanhakim/amp-sanitizer/pkg/fileutil"
	"github.com/rohmanhakim/amp-sanitizer/pkg/hashutil"
)

type Config struct {
	//===============
	// Validation
	//===============
	// Validate from <html> when true, from <body> otherwise
	useDocumentElement bool
	// Error codes that are reported but never fixed
	exemptCodes []validation.Code

	//===============
	// Output
	//===============
	// Whether the program only reports what it would do, leaving the
	// document untouched
	dryRun bool
	// Directory the sanitized document is written to. Empty means stdout
	outputDir string
	// Hash used to derive output filenames
	hashAlgo hashutil.HashAlgo

	//===============
	// Logging
	//===============
	// debug, info, warn or error
	logLevel string
}

type configDTO struct {
	UseDocumentElement *bool    `json:"useDocumentElement,omitempty" yaml:"useDocumentElement,omitempty"`
	ExemptCodes        []string `json:"exemptCodes,omitempty" yaml:"exemptCodes,omitempty"`
	DryRun             bool     `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	OutputDir          string   `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	HashAlgo           string   `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	LogLevel           string   `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// UseDocumentElement defaults to true, so only an explicit value overrides it
	if dto.UseDocumentElement != nil {
		cfg.WithUseDocumentElement(*dto.UseDocumentElement)
	}
	if len(dto.ExemptCodes) > 0 {
		codes := make([]validation.Code, 0, len(dto.ExemptCodes))
		for _, name := range dto.ExemptCodes {
			codes = append(codes, validation.Code(strings.TrimSpace(name)))
		}
		cfg.WithExemptCodes(codes)
	}
	cfg.WithDryRun(dto.DryRun)
	if dto.OutputDir != "" {
		cfg.WithOutputDir(dto.OutputDir)
	}
	if dto.HashAlgo != "" {
		cfg.WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo))
	}
	if dto.LogLevel != "" {
		cfg.WithLogLevel(dto.LogLevel)
	}

	return cfg.Build()
}

// WithConfigFile loads a config file. Files ending in .yaml or .yml are
// read as YAML, .json as JSON.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch ext := fileutil.GetFileExtension(path); ext {
	case "json":
		err = json.Unmarshal(configContent, &cfgDTO)
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		useDocumentElement: true,
		exemptCodes:        nil,
		dryRun:             false,
		outputDir:          "",
		hashAlgo:           hashutil.HashAlgoBLAKE3,
		logLevel:           "info",
	}
	return &defaultConfig
}

func (c *Config) WithUseDocumentElement(use bool) *Config {
	c.useDocumentElement = use
	return c
}

func (c *Config) WithExemptCodes(codes []validation.Code) *Config {
	c.exemptCodes = codes
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = strings.ToLower(level)
	return c
}

func (c *Config) Build() (Config, error) {
	for _, code := range c.exemptCodes {
		if _, ok := validation.ParseCode(string(code)); !ok {
			return Config{}, fmt.Errorf("%w: unknown error code %q", ErrInvalidConfig, code)
		}
	}
	if !hashutil.IsSupported(c.hashAlgo) {
		return Config{}, fmt.Errorf("%w: unsupported hash algorithm %q", ErrInvalidConfig, c.hashAlgo)
	}
	if _, ok := logLevels[c.logLevel]; !ok {
		return Config{}, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.logLevel)
	}
	return *c, nil
}

func (c Config) UseDocumentElement() bool {
	return c.useDocumentElement
}

func (c Config) ExemptCodes() []validation.Code {
	codes := make([]validation.Code, len(c.exemptCodes))
	copy(codes, c.exemptCodes)
	return codes
}

func (c Config) DryRun() bool {
	return c.dryRun
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) LogLevel() string {
	return c.logLevel
}

// Decider turns the config into the decision callback of a sanitize pass.
// A dry run rejects every error, otherwise the exempt codes are rejected.
func (c Config) Decider() validation.Decider {
	if c.dryRun {
		return validation.RejectAll
	}
	if len(c.exemptCodes) == 0 {
		return validation.AcceptAll
	}
	return validation.RejectCodes(c.exemptCodes...)
}
