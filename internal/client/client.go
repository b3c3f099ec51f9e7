package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/inchstudio/forward-catalogs/internal/config"
)

// New builds the shared *http.Client used by every upstream adapter:
// optional proxy, configurable timeout, and transparent response
// decompression (gzip, brotli, zstd).
func New(cfg *config.Config) *http.Client {
	// Parse timeout duration
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2) and only override the Proxy field when configured.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: newDecompressTransport(baseTransport),
	}
}
