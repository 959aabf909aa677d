//go:build tinygo

package config

// Compiled-in settings for the device build. Edit before flashing, or
// override at build time:
//
//	tinygo build -target=nano-rp2040 \
//	  -ldflags="-X solpanel/config.ssid=MyAP -X solpanel/config.passphrase=secret"
var (
	ssid       = ""
	passphrase = ""
	rpcURL     = "https://api.mainnet-beta.solana.com"
	wallet     = "5KgfWjGePnbFgDAuCqxB5oymuFxQskvCtrw6eYfDa7fj"
	showQR     = "1"
)

// Compiled returns the build-time device configuration, normalized and
// validated like the host path.
func Compiled() (Config, error) {
	c := Config{
		WiFi:    WiFiConfig{SSID: ssid, Passphrase: passphrase},
		Solana:  SolanaConfig{RPCEndpoint: rpcURL, Wallet: wallet},
		Display: DisplayConfig{ShowQR: showQR == "1"},
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
