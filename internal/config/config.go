package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Balance source kinds
const (
	SourceRPC      = "rpc"
	SourcePostgres = "postgres"
)

// Config is the service configuration, read from the environment
type Config struct {
	APIToken    string `envconfig:"API_TOKEN" default:"dev-token"`
	GRPCAddr    string `envconfig:"GRPC_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// BalanceSource selects where balances and account lookups come from: rpc or postgres
	BalanceSource string `envconfig:"BALANCE_SOURCE" default:"rpc"`

	Steem        Steem
	Postgres     Postgres
	SteemConnect SteemConnect
}

// Steem configures the JSON-RPC node
type Steem struct {
	RPCURL  string        `envconfig:"STEEM_RPC_URL" default:"https://api.steemit.com"`
	Timeout time.Duration `envconfig:"STEEM_RPC_TIMEOUT" default:"10s"`
}

// Postgres configures the read-only indexer database
type Postgres struct {
	DSN             string        `envconfig:"DB_CONN_STR"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

// SteemConnect configures the signing service; values are passed through untouched
type SteemConnect struct {
	App         string `envconfig:"STEEMCONNECT_CLIENT_ID" default:"ulogs.app"`
	Host        string `envconfig:"STEEMCONNECT_HOST" default:"https://steemconnect.com"`
	CallbackURL string `envconfig:"STEEMCONNECT_REDIRECT_URL" default:"http://ulogs.org/callback"`

	// SignRedirectURL is sent as redirect_uri on sign URLs; empty sends none
	SignRedirectURL string `envconfig:"STEEMCONNECT_SIGN_REDIRECT_URL"`
}

// Load reads the configuration from the environment and validates it
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express
func (c Config) Validate() error {
	switch c.BalanceSource {
	case SourceRPC:
		if c.Steem.RPCURL == "" {
			return fmt.Errorf("STEEM_RPC_URL is required when BALANCE_SOURCE=%s", SourceRPC)
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DB_CONN_STR is required when BALANCE_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown BALANCE_SOURCE %q (want %s or %s)", c.BalanceSource, SourceRPC, SourcePostgres)
	}

	if c.APIToken == "" {
		return fmt.Errorf("API_TOKEN cannot be empty")
	}
	return nil
}
