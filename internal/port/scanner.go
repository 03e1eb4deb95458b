package port

import (
	"fmt"
	"net"
)

// DefaultStreamlitPort is the port Streamlit binds when no server.port
// configuration is present.
const DefaultStreamlitPort = 8501

// Scanner checks whether specific TCP ports are available on the host.
//
// It uses the operating system's network stack (net.Listen) to
// determine if a port is free. This is the most reliable method because
// it asks the OS directly, rather than parsing /proc/net/* or relying
// on external commands like `lsof` or `ss` which may require elevated
// permissions.
//
// The struct is currently stateless, but is defined as a struct (rather
// than bare functions) so that future options (e.g., bind address) can
// be added without breaking the API, and so it is injectable as a
// dependency in doctor tests.
type Scanner struct{}

// NewScanner creates a new Scanner instance.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsAvailable checks whether a single TCP port is free on the host.
//
// It attempts net.Listen("tcp", ":port"); if the bind succeeds the
// port is available and the probe listener is closed immediately. We
// bind to all interfaces (":port" rather than "127.0.0.1:port")
// because Streamlit's default server address is 0.0.0.0, so the check
// must cover the same address space.
func (s *Scanner) IsAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	defer func() { _ = listener.Close() }()
	return true
}

// FindAvailable scans [startPort, endPort] (inclusive) and returns the
// first free TCP port. The sequential, deterministic order means the
// same free port is reported consistently across calls.
//
// Doctor uses this to suggest a fallback when the default Streamlit
// port is taken.
func (s *Scanner) FindAvailable(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		if s.IsAvailable(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available TCP port found in range %d-%d", startPort, endPort)
}
