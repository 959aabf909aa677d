package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate rejects configurations that would start a broken refresh loop.
// It assumes Normalize already ran.
func (c *Config) Validate() error {
	var errs []error

	if c.WiFi.SSID == "" {
		errs = append(errs, errors.New("wifi.ssid is required"))
	}
	if len(c.WiFi.SSID) > 32 {
		errs = append(errs, errors.New("wifi.ssid exceeds 32 bytes"))
	}
	if c.WiFi.Passphrase != "" && len(c.WiFi.Passphrase) < 8 {
		errs = append(errs, errors.New("wifi.passphrase must be at least 8 characters (or empty for an open network)"))
	}

	if c.Solana.RPCEndpoint == "" {
		errs = append(errs, errors.New("solana.rpc_endpoint is required"))
	} else if !isHTTPURL(c.Solana.RPCEndpoint) {
		errs = append(errs, fmt.Errorf("solana.rpc_endpoint %q is not an http(s) URL", c.Solana.RPCEndpoint))
	}

	if c.Solana.Wallet == "" {
		errs = append(errs, errors.New("solana.wallet is required"))
	} else if !isBase58(c.Solana.Wallet) || len(c.Solana.Wallet) < 32 || len(c.Solana.Wallet) > 44 {
		errs = append(errs, fmt.Errorf("solana.wallet %q is not a plausible base58 address", c.Solana.Wallet))
	}

	if !isHTTPURL(c.Price.Endpoint) {
		errs = append(errs, fmt.Errorf("price.endpoint %q is not an http(s) URL", c.Price.Endpoint))
	}

	if c.Poll.IntervalSeconds < minIntervalSec {
		errs = append(errs, fmt.Errorf("poll.interval_seconds must be at least %d", minIntervalSec))
	}
	if c.Poll.RequestTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("poll.request_timeout_seconds must be positive"))
	}
	if c.Poll.RequestTimeoutSeconds >= c.Poll.IntervalSeconds {
		errs = append(errs, errors.New("poll.request_timeout_seconds must be shorter than the poll interval"))
	}
	if c.WiFi.ConnectTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("wifi.connect_timeout_seconds must be positive"))
	}

	return errors.Join(errs...)
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// isBase58 checks the Bitcoin base58 alphabet (no 0, O, I, l).
func isBase58(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '1' && c <= '9':
		case c >= 'A' && c <= 'H':
		case c >= 'J' && c <= 'N':
		case c >= 'P' && c <= 'Z':
		case c >= 'a' && c <= 'k':
		case c >= 'm' && c <= 'z':
		default:
			return false
		}
	}
	return len(s) > 0
}
