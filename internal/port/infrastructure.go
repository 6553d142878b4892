package port

import (
	"github.com/vishvananda/netlink"
)

// NetworkManager is a port for reading local interface state.
// This interface abstracts the netlink lookups used by the interface resolver.
type NetworkManager interface {
	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// ListAddresses returns IPv6 addresses configured on the link
	ListAddresses(link netlink.Link) ([]netlink.Addr, error)
}

// FileManager is a port for file system operations.
// This interface abstracts the reads and whole-file rewrites of the cache and log files.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// WriteFile truncates and writes a file with specified permissions
	WriteFile(filename string, data []byte, perm int) error

	// FileExists checks if a file exists
	FileExists(filename string) bool
}
