package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/cloudprovider/cloudflare"
	"github.com/spf13/pflag"
)

const (
	EnvAPIToken       = "CF_API_TOKEN"
	EnvDNSName        = "DNS_NAME"
	EnvSleepMs        = "DURATION_SLEEP_MS"
	EnvAPIUrl         = "CF_API_URL"
	EnvIPProvider     = "IP_PROVIDER"
	EnvMetricsAddress = "METRICS_ADDRESS"

	DefaultInterval       = 5000 * time.Millisecond
	DefaultIPProvider     = "ipify"
	DefaultMetricsAddress = ":8080"
	DefaultAPIUrl         = cloudflare.DefaultAPIUrl
)

// Config is loaded once at startup and not modified afterwards.
type Config struct {
	APIToken       string
	DNSName        string
	Interval       time.Duration
	IPProvider     string
	MetricsAddress string
	APIUrl         string
}

// MissingError reports a required setting that was not provided.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return e.Name + " is required"
}

// LoadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the environment and then applies command line flags from args
// on top of it. The API token can only come from the environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{
		APIToken:       os.Getenv(EnvAPIToken),
		DNSName:        os.Getenv(EnvDNSName),
		Interval:       sleepInterval(os.Getenv(EnvSleepMs)),
		IPProvider:     env(EnvIPProvider, DefaultIPProvider),
		MetricsAddress: env(EnvMetricsAddress, DefaultMetricsAddress),
		APIUrl:         env(EnvAPIUrl, DefaultAPIUrl),
	}

	flags := pflag.NewFlagSet("ddns", pflag.ContinueOnError)
	flags.StringVar(&cfg.DNSName, "dns-name", cfg.DNSName, "fully-qualified name of the `A` record to keep in sync.")
	flags.DurationVar(&cfg.Interval, "interval", cfg.Interval, "time to wait between public IP checks.")
	flags.StringVar(&cfg.IPProvider, "provider", cfg.IPProvider, "ip provider queried for the public address: ipify, icanhazip or random.")
	flags.StringVar(&cfg.MetricsAddress, "metrics-address", cfg.MetricsAddress, "listen address for /metrics and health checks, empty to disable.")
	flags.StringVar(&cfg.APIUrl, "api-url", cfg.APIUrl, "base url of the Cloudflare v4 API.")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if cfg.APIToken == "" {
		return nil, &MissingError{Name: EnvAPIToken}
	}
	if cfg.DNSName == "" {
		return nil, &MissingError{Name: EnvDNSName}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return cfg, nil
}

// sleepInterval parses a millisecond count, falling back to the default for
// empty, malformed or non-positive values.
func sleepInterval(value string) time.Duration {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms <= 0 || ms > math.MaxInt64/int64(time.Millisecond) {
		return DefaultInterval
	}
	return time.Duration(ms) * time.Millisecond
}

func env(name, defaultValue string) string {
	if value, found := os.LookupEnv(name); found {
		return value
	}
	return defaultValue
}
