package apiclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/vitalvas/forthecity/hawk"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultHost            = "https://api.forthecity.org"
	DefaultAPIVersion      = "1"
	DefaultRequestIDHeader = "X-Request-ID"
	DefaultUserAgent       = "forthecity-go"
)

// Environment variables read by LoadConfig.
const (
	EnvToken     = "FTC_TOKEN"
	EnvSecret    = "FTC_SECRET"
	EnvHost      = "FTC_HOST"
	EnvPort      = "FTC_PORT"
	EnvAlgorithm = "FTC_ALGORITHM"
)

// Config configures a Client.
type Config struct {
	// ID is the Hawk credentials id. Required.
	ID string `yaml:"id"`

	// Key is the Hawk credentials key. Required.
	Key string `yaml:"key"`

	// Algorithm is the MAC algorithm. Defaults to sha256.
	Algorithm hawk.Algorithm `yaml:"algorithm"`

	// Host is the API base, with scheme. A port in Host takes precedence
	// over Port. Defaults to DefaultHost.
	Host string `yaml:"host"`

	// Port is the API port. Defaults to 80 for http and 443 for https.
	Port int `yaml:"port"`

	// APIVersion is sent in the api-version header. Defaults to "1".
	APIVersion string `yaml:"api_version"`

	// UserAgent is sent in the User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// RequestIDHeader names the header carrying the per-request id.
	// Defaults to "X-Request-ID".
	RequestIDHeader string `yaml:"request_id_header"`

	// Timeout bounds a whole round trip. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	// LocaltimeOffset is added to the signing clock to compensate for skew
	// against the server.
	LocaltimeOffset time.Duration `yaml:"localtime_offset"`

	// HashPayload covers request bodies with a Hawk payload hash.
	HashPayload bool `yaml:"hash_payload"`

	// Transport is the base transport requests are sent through after
	// signing. When nil, a clone of http.DefaultTransport is used.
	Transport *http.Transport `yaml:"-"`

	// Logger receives one debug record per round trip. Defaults to a
	// logger that discards everything.
	Logger *slog.Logger `yaml:"-"`
}

// Credentials returns the Hawk credentials described by c.
func (c Config) Credentials() hawk.Credentials {
	return hawk.Credentials{
		ID:        c.ID,
		Key:       []byte(c.Key),
		Algorithm: c.Algorithm,
	}
}

// withDefaults returns a copy of c with unset fields defaulted.
func (c Config) withDefaults() Config {
	if c.Algorithm == "" {
		c.Algorithm = hawk.AlgorithmSHA256
	}

	if c.Host == "" {
		c.Host = DefaultHost
	}

	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}

	if c.RequestIDHeader == "" {
		c.RequestIDHeader = DefaultRequestIDHeader
	}

	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}

	return c
}

// BaseURL returns the scheme, host and port requests are sent to.
func (c Config) BaseURL() (string, error) {
	c = c.withDefaults()

	u, err := url.Parse(c.Host)
	if err != nil {
		return "", fmt.Errorf("%w: host: %w", ErrInvalidConfig, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: host %q must include a scheme", ErrInvalidConfig, c.Host)
	}

	if u.Port() != "" {
		return u.Scheme + "://" + u.Host, nil
	}

	port := c.Port
	if port == 0 {
		switch u.Scheme {
		case "http":
			port = 80
		case "https":
			port = 443
		default:
			return "", fmt.Errorf("%w: no default port for scheme %q", ErrInvalidConfig, u.Scheme)
		}
	}

	return u.Scheme + "://" + u.Hostname() + ":" + strconv.Itoa(port), nil
}

// LoadConfig reads a YAML config file and overlays the FTC_* environment
// variables. An empty path reads the environment only.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}

	if v, ok := os.LookupEnv(EnvToken); ok {
		cfg.ID = v
	}

	if v, ok := os.LookupEnv(EnvSecret); ok {
		cfg.Key = v
	}

	if v, ok := os.LookupEnv(EnvHost); ok {
		cfg.Host = v
	}

	if v, ok := os.LookupEnv(EnvAlgorithm); ok {
		cfg.Algorithm = hawk.Algorithm(v)
	}

	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("%w: %s=%q is not a port", ErrInvalidConfig, EnvPort, v)
		}

		cfg.Port = port
	}

	return cfg, nil
}
