//go:build unit

package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerAdapter(t *testing.T) {
	adapter := NewManagerAdapter()
	assert.NotNil(t, adapter)
}

func TestManagerAdapter_GetLinkByName(t *testing.T) {
	adapter := NewManagerAdapter()

	t.Run("ValidInterface", func(t *testing.T) {
		// Loopback should exist on most systems
		link, err := adapter.GetLinkByName("lo")
		if err != nil {
			t.Skip("Loopback interface not available, skipping test")
		}
		assert.Equal(t, "lo", link.Attrs().Name)
	})

	t.Run("InvalidInterface", func(t *testing.T) {
		_, err := adapter.GetLinkByName("nonexistent")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get netlink interface")
	})
}

func TestManagerAdapter_ListAddresses(t *testing.T) {
	adapter := NewManagerAdapter()

	link, err := adapter.GetLinkByName("lo")
	if err != nil {
		t.Skip("Loopback interface not available, skipping test")
	}

	addrs, err := adapter.ListAddresses(link)
	require.NoError(t, err)
	for _, addr := range addrs {
		assert.Nil(t, addr.IP.To4(), "expected only IPv6 addresses, got %s", addr.IP)
	}
}
