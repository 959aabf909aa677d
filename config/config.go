// Package config holds the device configuration: wireless credentials, remote
// endpoints, and refresh tuning. On the host it loads from YAML; on the
// device it is compiled in, since there is no filesystem to read at boot.
package config

import "time"

type Config struct {
	WiFi    WiFiConfig    `yaml:"wifi"`
	Solana  SolanaConfig  `yaml:"solana"`
	Price   PriceConfig   `yaml:"price"`
	Display DisplayConfig `yaml:"display"`
	Poll    PollConfig    `yaml:"poll"`
}

type WiFiConfig struct {
	SSID       string `yaml:"ssid"`
	Passphrase string `yaml:"passphrase"`
	// ConnectTimeoutSeconds bounds one association attempt.
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
}

type SolanaConfig struct {
	RPCEndpoint string `yaml:"rpc_endpoint"`
	// Wallet is the account whose balance is shown (and QR-encoded).
	Wallet string `yaml:"wallet"`
}

type PriceConfig struct {
	// Endpoint must answer a GET with the CoinGecko simple-price schema.
	Endpoint string `yaml:"endpoint"`
}

type DisplayConfig struct {
	// ShowQR renders the wallet address as a scannable code when it fits.
	ShowQR bool `yaml:"show_qr"`
}

type PollConfig struct {
	IntervalSeconds       int `yaml:"interval_seconds"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

const (
	defaultPriceEndpoint  = "https://api.coingecko.com/api/v3/simple/price?ids=solana&vs_currencies=usd"
	defaultIntervalSec    = 30
	minIntervalSec        = 5
	defaultReqTimeoutSec  = 10
	defaultConnTimeoutSec = 30
)

// Normalize fills unset optional fields with defaults. Required fields are
// left alone for Validate to reject.
func (c *Config) Normalize() {
	if c.Price.Endpoint == "" {
		c.Price.Endpoint = defaultPriceEndpoint
	}
	if c.Poll.IntervalSeconds == 0 {
		c.Poll.IntervalSeconds = defaultIntervalSec
	}
	if c.Poll.RequestTimeoutSeconds == 0 {
		c.Poll.RequestTimeoutSeconds = defaultReqTimeoutSec
	}
	if c.WiFi.ConnectTimeoutSeconds == 0 {
		c.WiFi.ConnectTimeoutSeconds = defaultConnTimeoutSec
	}
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Poll.RequestTimeoutSeconds) * time.Second
}

func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.WiFi.ConnectTimeoutSeconds) * time.Second
}
