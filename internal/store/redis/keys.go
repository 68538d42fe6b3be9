package redis

import "fmt"

const (
	// KeyPrefixSidebar is the prefix for per-session sidebar state keys
	KeyPrefixSidebar = "planopro:sidebar:"
)

// SidebarKey returns the Redis key for a session's sidebar state
func SidebarKey(sessionID string) string {
	return KeyPrefixSidebar + sessionID
}

// ExtractSessionID extracts the session ID from a sidebar key
func ExtractSessionID(key string) (string, error) {
	if len(key) <= len(KeyPrefixSidebar) || key[:len(KeyPrefixSidebar)] != KeyPrefixSidebar {
		return "", fmt.Errorf("invalid sidebar key: %s", key)
	}
	return key[len(KeyPrefixSidebar):], nil
}
