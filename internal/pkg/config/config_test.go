//go:build unit

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("ValidINI", func(t *testing.T) {
		path := writeConfig(t, "config.txt", `[ovh]
username = example.com-ddns
password = s3cret#;value
hostname = home.example.com
url_lookup = https://ifconfig.co
ipv6 =
`)

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "example.com-ddns", config.OVH.Username)
		assert.Equal(t, "s3cret#;value", config.OVH.Password)
		assert.Equal(t, "home.example.com", config.OVH.Hostname)
		assert.Equal(t, "https://ifconfig.co", config.OVH.URLLookup)
		assert.Empty(t, config.OVH.IPv6)
		assert.Empty(t, config.OVH.Endpoint)
	})

	t.Run("INIDefaults", func(t *testing.T) {
		path := writeConfig(t, "config.txt", `[ovh]
Username = user
PASSWORD = pass
hostname = host.example.com
`)

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "user", config.OVH.Username)
		assert.Equal(t, "pass", config.OVH.Password)
		assert.Equal(t, DefaultLookupURL, config.OVH.URLLookup)
		assert.Empty(t, config.OVH.IPv6)
		assert.Empty(t, config.Logging.Level)
	})

	t.Run("INIStaticAddressTrimmed", func(t *testing.T) {
		path := writeConfig(t, "config.txt", "[ovh]\nusername=u\npassword=p\nhostname=h\nipv6 =   2001:db8::9   \n")

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "2001:db8::9", config.OVH.IPv6)
	})

	t.Run("INILoggingSection", func(t *testing.T) {
		path := writeConfig(t, "config.txt", "[ovh]\nusername=u\npassword=p\nhostname=h\n\n[logging]\nlevel = debug\n")

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", config.Logging.Level)
	})

	t.Run("ValidYAML", func(t *testing.T) {
		path := writeConfig(t, "config.yml", `ovh:
  username: user
  password: pass
  hostname: host.example.com
  ipv6: "2001:db8::9"
logging:
  level: warn
`)

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "user", config.OVH.Username)
		assert.Equal(t, "2001:db8::9", config.OVH.IPv6)
		assert.Equal(t, DefaultLookupURL, config.OVH.URLLookup)
		assert.Equal(t, "warn", config.Logging.Level)
	})

	t.Run("ValidTOML", func(t *testing.T) {
		path := writeConfig(t, "config.toml", `[ovh]
username = "user"
password = "pass"
hostname = "host.example.com"
interface = "eth0"
`)

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "host.example.com", config.OVH.Hostname)
		assert.Equal(t, "eth0", config.OVH.Interface)
	})

	t.Run("PasswordFile", func(t *testing.T) {
		secret := writeConfig(t, "password", "from-file\n")
		path := writeConfig(t, "config.txt", "[ovh]\nusername=u\npassword=inline\npassword_file="+secret+"\nhostname=h\n")

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", config.OVH.Password)
	})

	t.Run("PasswordFileMissing", func(t *testing.T) {
		path := writeConfig(t, "config.txt", "[ovh]\nusername=u\npassword_file=/nonexistent/secret\nhostname=h\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), "failed to read password_file")
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := Load("/nonexistent/config.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigMissing))
		assert.False(t, errors.Is(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), "config file not found: '/nonexistent/config.txt'")
	})

	t.Run("MissingRequiredKeys", func(t *testing.T) {
		path := writeConfig(t, "config.txt", "[ovh]\nusername = user\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), "missing required key(s) in [ovh]: password, hostname")
	})

	t.Run("MissingSection", func(t *testing.T) {
		path := writeConfig(t, "config.txt", "[other]\nusername = user\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), "username, password, hostname")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "invalid: yaml: content: [\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		path := writeConfig(t, "config.toml", "[ovh\nusername = \n")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		config := &Config{OVH: OVHConfig{Username: "u", Password: "p", Hostname: "h"}}
		assert.NoError(t, config.Validate())
	})

	t.Run("EmptyConfig", func(t *testing.T) {
		config := &Config{}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "username, password, hostname")
	})

	t.Run("MissingHostname", func(t *testing.T) {
		config := &Config{OVH: OVHConfig{Username: "u", Password: "p"}}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[ovh]: hostname")
	})
}
