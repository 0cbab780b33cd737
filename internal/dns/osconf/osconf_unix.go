//go:build unix

package osconf

import "os"

const resolvConfPath = "/etc/resolv.conf"

// Discover reads the system resolver configuration from
// /etc/resolv.conf.
func Discover() (Config, error) {
	f, err := os.Open(resolvConfPath)
	if err != nil {
		return Config{}, ErrUnavailable
	}
	defer f.Close()
	return parseResolvConf(f)
}
