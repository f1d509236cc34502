// Package config loads tokenlint settings from tokenlint.yaml, tokenlint.json
// or the "tokenlint" field of package.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"bennypowers.dev/tokenlint/internal/source"
	consistency "bennypowers.dev/tokenlint/internal/validator"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is the project configuration. Nil slices take the built-in defaults;
// an explicit empty requiredColorSubcategories disables that check.
type Config struct {
	// Inputs are doublestar patterns relative to the project root
	Inputs  []string `yaml:"inputs" json:"inputs" validate:"dive,required"`
	Exclude []string `yaml:"exclude" json:"exclude" validate:"dive,required"`

	NumRuns    int     `yaml:"numRuns" json:"numRuns" validate:"gte=0"`
	Seed       *uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	Exhaustive bool    `yaml:"exhaustive" json:"exhaustive"`

	RequiredColorSubcategories []string `yaml:"requiredColorSubcategories" json:"requiredColorSubcategories" validate:"omitempty,unique,dive,required"`
	SpacingScale               []string `yaml:"spacingScale" json:"spacingScale" validate:"omitempty,unique,dive,required"`
	FontWeightScale            []string `yaml:"fontWeightScale" json:"fontWeightScale" validate:"omitempty,unique,dive,required"`
	LineHeightScale            []string `yaml:"lineHeightScale" json:"lineHeightScale" validate:"omitempty,unique,dive,required"`

	Extractor    string `yaml:"extractor" json:"extractor" validate:"omitempty,oneof=regex tree-sitter"`
	StrictColors bool   `yaml:"strictColors" json:"strictColors"`
	// Prefix is prepended to token names read from DTCG files
	Prefix string `yaml:"prefix" json:"prefix"`

	LogLevel string `yaml:"logLevel" json:"logLevel" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" json:"format" validate:"omitempty,oneof=text json"`
}

// FileNames are the configuration files Discover looks for, in order
var FileNames = []string{
	"tokenlint.yaml",
	"tokenlint.yml",
	"tokenlint.json",
	"tokenlint.jsonc",
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Inputs:    []string{"**/*.css"},
		Exclude:   []string{"**/node_modules/**"},
		NumRuns:   consistency.DefaultNumRuns,
		Extractor: string(source.ExtractorRegex),
		LogLevel:  "warn",
		Format:    "text",
	}
}

// Load reads a YAML or JSON(C) configuration file over the defaults
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	default:
		return cfg, NewInvalidConfigError(path, "expected a .yaml, .yml, .json or .jsonc file")
	}
	if err != nil {
		return cfg, NewInvalidConfigError(path, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		var ice *InvalidConfigError
		if errors.As(err, &ice) {
			ice.Path = path
		}
		return cfg, err
	}
	return cfg, nil
}

// Discover finds the configuration for the project rooted at dir. It returns
// the defaults and an empty path when there is none.
func Discover(dir string) (Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}

	cfg, ok, err := fromPackageJSON(dir)
	if err != nil || !ok {
		return cfg, "", err
	}
	return cfg, filepath.Join(dir, "package.json"), nil
}

func fromPackageJSON(dir string) (Config, bool, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, "package.json")

	data, err := os.ReadFile(path) //nolint:gosec // G304: project package.json
	if os.IsNotExist(err) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg struct {
		Tokenlint json.RawMessage `json:"tokenlint"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return cfg, false, fmt.Errorf("failed to parse package.json: %w", err)
	}
	if len(pkg.Tokenlint) == 0 {
		return cfg, false, nil
	}
	if err := json.Unmarshal(pkg.Tokenlint, &cfg); err != nil {
		return cfg, false, NewInvalidConfigError(path, "tokenlint must be an object")
	}
	if err := cfg.Validate(); err != nil {
		var ice *InvalidConfigError
		if errors.As(err, &ice) {
			ice.Path = path
		}
		return cfg, false, err
	}
	return cfg, true, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewInvalidConfigError("", err.Error())
	}
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reason := fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			reason = fmt.Sprintf("%s failed %q (%s)", fe.Namespace(), fe.Tag(), fe.Param())
		}
		reasons = append(reasons, reason)
	}
	return NewInvalidConfigError("", strings.Join(reasons, "; "))
}

// ValidatorOptions translates the configuration into validator options
func (c *Config) ValidatorOptions() consistency.Options {
	return consistency.Options{
		NumRuns:                    c.NumRuns,
		Seed:                       c.Seed,
		Exhaustive:                 c.Exhaustive,
		StrictColors:               c.StrictColors,
		RequiredColorSubcategories: c.RequiredColorSubcategories,
		SpacingScale:               c.SpacingScale,
		FontWeightScale:            c.FontWeightScale,
		LineHeightScale:            c.LineHeightScale,
	}
}

// SourceOptions translates the configuration into source options
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Extractor: source.Extractor(c.Extractor),
		Prefix:    c.Prefix,
	}
}
