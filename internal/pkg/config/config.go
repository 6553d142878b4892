package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ovh-ddns/internal/pkg/logging"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the config file read when no --config flag is given
	DefaultPath = "config.txt"

	// DefaultLookupURL echoes the caller's public address
	DefaultLookupURL = "http://ipconfig.io"

	sectionOVH     = "ovh"
	sectionLogging = "logging"
)

var (
	// ErrConfigMissing is returned when the config file does not exist
	ErrConfigMissing = errors.New("config file not found")

	// ErrConfigInvalid is returned when the config file cannot be parsed or lacks required keys
	ErrConfigInvalid = errors.New("invalid config")
)

// OVHConfig represents the [ovh] section
type OVHConfig struct {
	Username     string `yaml:"username" toml:"username" ini:"username"`
	Password     string `yaml:"password" toml:"password" ini:"password"`
	PasswordFile string `yaml:"password_file" toml:"password_file" ini:"password_file"`
	Hostname     string `yaml:"hostname" toml:"hostname" ini:"hostname"`
	URLLookup    string `yaml:"url_lookup" toml:"url_lookup" ini:"url_lookup"`
	IPv6         string `yaml:"ipv6" toml:"ipv6" ini:"ipv6"`
	Interface    string `yaml:"interface" toml:"interface" ini:"interface"`
	Endpoint     string `yaml:"endpoint" toml:"endpoint" ini:"endpoint"` // empty means OVH's EU endpoint
}

// Config represents the main configuration structure
type Config struct {
	OVH     OVHConfig         `yaml:"ovh" toml:"ovh"`
	Logging logging.LogConfig `yaml:"logging" toml:"logging"`
}

// Load loads configuration from path, detecting the format by extension:
// .yml/.yaml is YAML, .toml is TOML, anything else is INI.
// The result has defaults applied and has been validated.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrConfigMissing, configPath)
		}
		return nil, fmt.Errorf("%w: failed to read config file %s: %w", ErrConfigInvalid, configPath, err)
	}

	var config *Config
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yml", ".yaml":
		config, err = parseYAML(data)
	case ".toml":
		config, err = parseTOML(data)
	default:
		config, err = parseINI(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %w", ErrConfigInvalid, configPath, err)
	}

	config.normalize()

	if err := config.resolvePasswordFile(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func parseYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func parseTOML(data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// parseINI reads the config.txt format: [ovh] with key = value lines.
// Key names are case-insensitive; values are taken verbatim, so '#', ';' and quotes
// inside a password survive.
func parseINI(data []byte) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, data)
	if err != nil {
		return nil, err
	}

	var config Config
	if !file.HasSection(sectionOVH) {
		return &config, nil
	}
	if err := file.Section(sectionOVH).MapTo(&config.OVH); err != nil {
		return nil, err
	}
	if file.HasSection(sectionLogging) {
		if err := file.Section(sectionLogging).MapTo(&config.Logging); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

// normalize trims every value and fills in optional defaults
func (c *Config) normalize() {
	o := &c.OVH
	for _, v := range []*string{&o.Username, &o.Password, &o.PasswordFile, &o.Hostname, &o.URLLookup, &o.IPv6, &o.Interface, &o.Endpoint} {
		*v = strings.TrimSpace(*v)
	}
	if o.URLLookup == "" {
		o.URLLookup = DefaultLookupURL
	}
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
}

// resolvePasswordFile replaces the password with the contents of password_file when set
func (c *Config) resolvePasswordFile() error {
	if c.OVH.PasswordFile == "" {
		return nil
	}
	content, err := os.ReadFile(c.OVH.PasswordFile)
	if err != nil {
		return fmt.Errorf("%w: failed to read password_file: %w", ErrConfigInvalid, err)
	}
	c.OVH.Password = strings.TrimSpace(string(content))
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var missing []string
	if c.OVH.Username == "" {
		missing = append(missing, "username")
	}
	if c.OVH.Password == "" {
		missing = append(missing, "password")
	}
	if c.OVH.Hostname == "" {
		missing = append(missing, "hostname")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required key(s) in [%s]: %s", ErrConfigInvalid, sectionOVH, strings.Join(missing, ", "))
	}
	return nil
}
