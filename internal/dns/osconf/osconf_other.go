//go:build !unix

package osconf

// Discover reports that no system resolver configuration is available.
// Enumerating per-interface DNS servers on Windows needs the IP helper
// API; until that lands, callers must configure servers explicitly.
func Discover() (Config, error) {
	return Config{}, ErrUnavailable
}
