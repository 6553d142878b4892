//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"ovh-ddns/internal/adapter/infrastructure/httpclient"
	"ovh-ddns/internal/adapter/resolver"
	"ovh-ddns/internal/pkg/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the command into a temp dir and returns its path.
func buildBinary(t *testing.T) string {
	t.Helper()

	testDir, err := os.Getwd()
	require.NoError(t, err)

	binary := filepath.Join(t.TempDir(), "ovh-ddns")
	cmd := exec.Command("go", "build", "-o", binary, ".")
	cmd.Dir = filepath.Dir(testDir)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed: %s", out)
	return binary
}

func runBinary(t *testing.T, binary, dir string, args ...string) (int, string) {
	t.Helper()

	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), string(out)
	}
	require.NoError(t, err)
	return 0, string(out)
}

// TestBinaryLifecycle runs the built binary from a working directory holding
// config.txt, the way a scheduler would.
func TestBinaryLifecycle(t *testing.T) {
	binary := buildBinary(t)
	workDir := t.TempDir()

	var updates atomic.Int32
	ovh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		updates.Add(1)
		io.WriteString(w, "good "+r.URL.Query().Get("myip"))
	}))
	defer ovh.Close()

	writeConfig := func(address string) {
		content := "[ovh]\nusername = user\npassword = pass\nhostname = home.example.com\nipv6 = " + address + "\nendpoint = " + ovh.URL + "/nic/update\n"
		require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.txt"), []byte(content), 0600))
	}

	t.Run("Version", func(t *testing.T) {
		code, out := runBinary(t, binary, workDir, "--version")
		assert.Equal(t, 0, code)
		assert.Equal(t, "ovh-ddns version 1.0\n", out)
		assert.NoFileExists(t, filepath.Join(workDir, "update_ovh_ddns.log"))
	})

	t.Run("MissingConfig", func(t *testing.T) {
		code, _ := runBinary(t, binary, workDir)
		assert.Equal(t, 1, code)
		assert.NoFileExists(t, filepath.Join(workDir, "ipv6addr.txt"))
	})

	t.Run("FirstRunUpdates", func(t *testing.T) {
		writeConfig("2001:db8::1")
		code, out := runBinary(t, binary, workDir, "--verbose")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "Stored new IPv6 address: 2001:db8::1")
		assert.Equal(t, int32(1), updates.Load())

		data, err := os.ReadFile(filepath.Join(workDir, "ipv6addr.txt"))
		require.NoError(t, err)
		assert.Equal(t, "2001:db8::1", string(data))
	})

	t.Run("SecondRunSkips", func(t *testing.T) {
		code, _ := runBinary(t, binary, workDir)
		assert.Equal(t, 0, code)
		assert.Equal(t, int32(1), updates.Load())
	})

	t.Run("AddressChange", func(t *testing.T) {
		writeConfig("2001:db8::2")
		code, _ := runBinary(t, binary, workDir)
		assert.Equal(t, 0, code)
		assert.Equal(t, int32(2), updates.Load())
	})

	t.Run("LogBounded", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(workDir, "update_ovh_ddns.log"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		assert.LessOrEqual(t, len(lines), 10)
	})
}

// TestLiveLookup asks the default lookup service for this host's address.
// It needs working IPv6 connectivity and OVH_DDNS_LIVE=1.
func TestLiveLookup(t *testing.T) {
	if os.Getenv("OVH_DDNS_LIVE") != "1" {
		t.Skip("set OVH_DDNS_LIVE=1 to query " + config.DefaultLookupURL)
	}

	logger := logrus.New()
	client := httpclient.New(httpclient.Config{Network: httpclient.NetworkIPv6})
	address, err := resolver.NewWebResolver(config.DefaultLookupURL, client, logger).Resolve(context.Background())
	require.NoError(t, err)

	addr, err := netip.ParseAddr(address)
	require.NoError(t, err)
	assert.True(t, addr.Is6())
}
