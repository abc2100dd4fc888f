// Package settings loads the CLI configuration: the config file
// (~/.chartopts.yaml), environment variables and flag overrides through viper.
package settings

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"

	"github.com/reglet-dev/chartopts/internal/infrastructure/export"
	"github.com/reglet-dev/chartopts/internal/infrastructure/redaction"
)

// Settings is the resolved configuration.
type Settings struct {
	Export ExportConfig `mapstructure:"export" yaml:"export"`
	// Secrets tunes the credential scan of check and convert --redact.
	Secrets redaction.Config `mapstructure:"secrets" yaml:"secrets,omitempty"`
	// Theme is a document layered underneath every converted or exported chart.
	Theme string `mapstructure:"theme" yaml:"theme,omitempty"`
	// Format is the default report format of the check command.
	Format string `mapstructure:"format" yaml:"format"`
	// TargetVersion is the default library version to check compatibility against.
	TargetVersion string `mapstructure:"target_version" yaml:"target_version,omitempty"`
	// Strict rejects unrecognized keys instead of dropping them.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// ExportConfig locates and authenticates against the export server.
type ExportConfig struct {
	// URL overrides the protocol, domain, port and path when set.
	URL      string        `mapstructure:"url" yaml:"url,omitempty"`
	Protocol string        `mapstructure:"protocol" yaml:"protocol"`
	Domain   string        `mapstructure:"domain" yaml:"domain"`
	Path     string        `mapstructure:"path" yaml:"path,omitempty"`
	User     string        `mapstructure:"user" yaml:"user,omitempty"`
	Password string        `mapstructure:"password" yaml:"password,omitempty"`
	Port     int           `mapstructure:"port" yaml:"port,omitempty"`
	Retries  int           `mapstructure:"retries" yaml:"retries"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		Format: "table",
		Export: ExportConfig{
			Protocol: export.DefaultServer.Protocol,
			Domain:   export.DefaultServer.Domain,
			Retries:  3,
			Timeout:  30 * time.Second,
		},
	}
}

// Register installs defaults and environment bindings on v.
func Register(v *viper.Viper) error {
	d := Default()
	v.SetDefault("format", d.Format)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("export.protocol", d.Export.Protocol)
	v.SetDefault("export.domain", d.Export.Domain)
	v.SetDefault("export.retries", d.Export.Retries)
	v.SetDefault("export.timeout", d.Export.Timeout)

	bindings := map[string]string{
		"export.protocol": export.EnvProtocol,
		"export.domain":   export.EnvDomain,
		"export.port":     export.EnvPort,
		"export.path":     export.EnvPath,
		"export.user":     "CHARTOPTS_EXPORT_USER",
		"export.password": "CHARTOPTS_EXPORT_PASSWORD",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Load resolves the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	s := Default()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if _, err := s.Export.Server(); err != nil {
		return nil, err
	}
	if s.Export.Retries < 0 {
		return nil, fmt.Errorf("export.retries must not be negative, got %d", s.Export.Retries)
	}
	return s, nil
}

// Server returns the configured export server.
func (c ExportConfig) Server() (export.Server, error) {
	if c.URL != "" {
		return export.ParseServerURL(c.URL)
	}
	s := export.Server{Protocol: c.Protocol, Domain: c.Domain, Port: c.Port, Path: c.Path}
	if err := s.Validate(); err != nil {
		return export.Server{}, fmt.Errorf("invalid export server settings: %w", err)
	}
	return s, nil
}

// ClientOptions turns the settings into export client options.
func (c ExportConfig) ClientOptions() []export.Option {
	opts := []export.Option{export.WithRetries(c.Retries)}
	if c.Timeout > 0 {
		opts = append(opts, export.WithTimeout(c.Timeout))
	}
	if c.User != "" && c.Password != "" {
		opts = append(opts, export.WithBasicAuth(c.User, c.Password))
	}
	return opts
}

// Write stores s as a YAML config file. Existing files are only replaced
// when overwrite is set.
func Write(path string, s *Settings, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
