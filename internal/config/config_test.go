package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, SourceRPC, cfg.BalanceSource)
	assert.Equal(t, 10*time.Second, cfg.Steem.Timeout)
	assert.Equal(t, "https://steemconnect.com", cfg.SteemConnect.Host)
	assert.Equal(t, "http://ulogs.org/callback", cfg.SteemConnect.CallbackURL)
	assert.Empty(t, cfg.SteemConnect.SignRedirectURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("BALANCE_SOURCE", "postgres")
	t.Setenv("DB_CONN_STR", "host=db dbname=steem sslmode=disable")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("STEEMCONNECT_HOST", "https://signer.example")
	t.Setenv("STEEMCONNECT_SIGN_REDIRECT_URL", "https://ulogs.org/wallet")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, SourcePostgres, cfg.BalanceSource)
	assert.Equal(t, "host=db dbname=steem sslmode=disable", cfg.Postgres.DSN)
	assert.Equal(t, 4, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, "https://signer.example", cfg.SteemConnect.Host)
	assert.Equal(t, "https://ulogs.org/wallet", cfg.SteemConnect.SignRedirectURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "postgres without DSN",
			env:    map[string]string{"BALANCE_SOURCE": "postgres"},
			errMsg: "DB_CONN_STR is required",
		},
		{
			name:   "unknown source",
			env:    map[string]string{"BALANCE_SOURCE": "redis"},
			errMsg: "unknown BALANCE_SOURCE",
		},
		{
			name:   "rpc without URL",
			env:    map[string]string{"STEEM_RPC_URL": ""},
			errMsg: "STEEM_RPC_URL is required",
		},
		{
			name:   "bad duration",
			env:    map[string]string{"STEEM_RPC_TIMEOUT": "soon"},
			errMsg: "failed to process env var",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
