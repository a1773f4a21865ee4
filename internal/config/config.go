package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	herrors "hyperui/internal/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProduct    = "Tailwind"
	DefaultBrand      = "HyperUI"
	DefaultContentDir = "src/data/components"
	DefaultExtension  = ".mdx"
	DefaultOutputDir  = "public"
	DefaultStaticDir  = "static"
	DefaultTemplate   = "default"
	DefaultTemplates  = "templates"
)

// SiteConfig holds the configuration from the site.yaml file.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Product     string `yaml:"product"`
	Brand       string `yaml:"brand"`
	BaseURL     string `yaml:"baseurl"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
	TemplateDir string `yaml:"template_dir"`
	ContentDir  string `yaml:"content_dir"`
	Extension   string `yaml:"extension"`
	OutputDir   string `yaml:"output_dir"`
	StaticDir   string `yaml:"static_dir"`
}

// Default returns the configuration used when no site.yaml exists.
func Default() SiteConfig {
	cfg := SiteConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *SiteConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultBrand
	}
	if c.Product == "" {
		c.Product = DefaultProduct
	}
	if c.Brand == "" {
		c.Brand = DefaultBrand
	}
	if c.BaseURL == "" {
		c.BaseURL = "/"
	}
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.TemplateDir == "" {
		c.TemplateDir = DefaultTemplates
	}
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
}

// LoadSiteConfig reads and decodes the site file at path. A missing file
// yields the defaults; a malformed one is a config error.
func LoadSiteConfig(path string) (SiteConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return SiteConfig{}, herrors.WrapError(err, herrors.CategoryConfig, "could not read config file").
			Fatal().File(path).Build()
	}
	return ParseSiteConfig(path, data)
}

// ParseSiteConfig decodes site.yaml content and fills defaults.
func ParseSiteConfig(path string, data []byte) (SiteConfig, error) {
	cfg := SiteConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, herrors.WrapError(err, herrors.CategoryConfig, "could not parse config file").
			Fatal().File(path).Build()
	}
	cfg.applyDefaults()
	return cfg, nil
}
