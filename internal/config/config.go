package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration of a conversion run.
type Config struct {
	Paths           PathsConfig   `yaml:"paths"`
	Routing         RoutingConfig `yaml:"routing"`
	Options         Options       `yaml:"options"`
	SubstituteFiles []string      `yaml:"substitute"`
}

// PathsConfig locates the site, the exported notes and the content tree.
// Relative Export and Content paths are resolved against Site.
type PathsConfig struct {
	Site    string `yaml:"site"`
	Export  string `yaml:"export"`
	Content string `yaml:"content"`
}

// LookupFunc reads a value from the process environment.
type LookupFunc func(key string) (string, bool)

// DefaultEnvFiles are read, when present, before the process environment.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Load reads the optional YAML file at configPath, then .env files, then the
// process environment, and validates the result.
func Load(configPath string) (*Config, error) {
	return LoadWith(configPath, os.LookupEnv, DefaultEnvFiles...)
}

// LoadOverriding is Load with non-empty fields of paths taking precedence over
// the file. Overrides apply before relative paths are resolved.
func LoadOverriding(configPath string, paths PathsConfig) (*Config, error) {
	return load(configPath, paths, os.LookupEnv, DefaultEnvFiles...)
}

// LoadWith is Load with an injectable environment and env file list.
// Precedence, lowest first: defaults, YAML file, env files, lookup.
func LoadWith(configPath string, lookup LookupFunc, envFiles ...string) (*Config, error) {
	return load(configPath, PathsConfig{}, lookup, envFiles...)
}

func load(configPath string, paths PathsConfig, lookup LookupFunc, envFiles ...string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return nil, err
		}
	}
	cfg.Paths.override(paths)

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read env file").Fatal().Build()
	}
	for _, key := range Keys() {
		if v, ok := dotenv[key]; ok {
			cfg.Options[key] = v
		}
		if lookup != nil {
			if v, ok := lookup(key); ok {
				cfg.Options[key] = v
			}
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied and no required option set.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Site:    "build",
			Export:  "__vault_export",
			Content: "content",
		},
		Routing:         defaultRouting(),
		Options:         defaultOptions(),
		SubstituteFiles: []string{"config.toml", "content/_index.md", "static/js/graph.js"},
	}
}

func (c *Config) mergeFile(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ferrors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
		}
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").Fatal().Build()
	}

	expanded := os.ExpandEnv(string(data))
	var file Config
	file.Routing.Templates = c.Routing.Templates
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			Fatal().WithContext("path", configPath).Build()
	}

	if file.Paths.Site != "" {
		c.Paths.Site = file.Paths.Site
	}
	if file.Paths.Export != "" {
		c.Paths.Export = file.Paths.Export
	}
	if file.Paths.Content != "" {
		c.Paths.Content = file.Paths.Content
	}
	if file.Routing.Tags != nil {
		c.Routing.Tags = file.Routing.Tags
	}
	c.Routing.Templates = file.Routing.Templates
	if file.Routing.Default.Section != "" {
		c.Routing.Default.Section = file.Routing.Default.Section
	}
	if file.Routing.Default.Page != "" {
		c.Routing.Default.Page = file.Routing.Default.Page
	}
	if file.Routing.Unmatched != "" {
		c.Routing.Unmatched = file.Routing.Unmatched
	}
	for k, v := range file.Options {
		c.Options[strings.ToUpper(k)] = v
	}
	if file.SubstituteFiles != nil {
		c.SubstituteFiles = file.SubstituteFiles
	}
	return nil
}

// finalize resolves paths, derives dependent options and validates.
func (c *Config) finalize() error {
	if c.Options[OptSiteTitleTab] == "" {
		c.Options[OptSiteTitleTab] = c.Options[OptSiteTitle]
	}
	if !filepath.IsAbs(c.Paths.Export) {
		c.Paths.Export = filepath.Join(c.Paths.Site, c.Paths.Export)
	}
	if !filepath.IsAbs(c.Paths.Content) {
		c.Paths.Content = filepath.Join(c.Paths.Site, c.Paths.Content)
	}
	return c.Validate()
}

// Validate checks required options and routing tables.
func (c *Config) Validate() error {
	var missing []string
	for _, spec := range optionTable {
		if spec.Required && strings.TrimSpace(c.Options[spec.Key]) == "" {
			missing = append(missing, spec.Key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return ferrors.ConfigError(fmt.Sprintf("required option %s not set", strings.Join(missing, ", "))).
			WithContext("options", missing).Build()
	}

	policy := NormalizeUnmatched(string(c.Routing.Unmatched))
	if policy == "" {
		return ferrors.ValidationError("routing.unmatched must be 'default' or 'skip'").
			WithContext("value", string(c.Routing.Unmatched)).Build()
	}
	c.Routing.Unmatched = policy

	for _, route := range c.Routing.Tags {
		if route.Tag == "" || route.Section == "" {
			return ferrors.ValidationError("routing tag entries need both tag and section").Build()
		}
		if strings.ContainsAny(route.Section, `/\`) || route.Section == "." || route.Section == ".." {
			return ferrors.ValidationError("routing section must be a single path segment").
				WithContext("section", route.Section).Build()
		}
	}
	return nil
}

func (p *PathsConfig) override(o PathsConfig) {
	if o.Site != "" {
		p.Site = o.Site
	}
	if o.Export != "" {
		p.Export = o.Export
	}
	if o.Content != "" {
		p.Content = o.Content
	}
}

// StaticDir is the directory receiving the graph and settings scripts.
func (c *Config) StaticDir() string {
	return filepath.Join(c.Paths.Site, "static", "js")
}
