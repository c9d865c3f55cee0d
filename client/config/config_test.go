package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/llakterian/FTkn-d/types"
)

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := Config{PrivateKey: "aa"}
	require.NoError(t, cfg.Validate())

	require.Equal(t, NetworkShasta, cfg.Network)
	require.Equal(t, "https://api.shasta.trongrid.io", cfg.FullHost)
	require.Equal(t, DefaultAmount, cfg.Amount)
	require.Equal(t, DefaultFeeLimit, cfg.FeeLimit)
	require.Equal(t, DefaultConfirmations, cfg.WaitTx.Confirmations)
	require.Equal(t, 3*time.Second, cfg.WaitTx.PollInterval)
	require.NotNil(t, cfg.Logger)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := Config{PrivateKey: "aa", Network: "ropsten"}
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrInvalidConfig))
	require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)

	cfg = Config{PrivateKey: "aa", Amount: -1}
	require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
}

func TestValidateAllowsMissingKey(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	require.Empty(t, cfg.PrivateKey)
}

func TestDefaultResolvesHostFromNetwork(t *testing.T) {
	cfg := Default()
	require.Empty(t, cfg.FullHost)

	cfg.Network = NetworkMainnet
	require.NoError(t, cfg.Validate())
	require.Equal(t, "https://api.trongrid.io", cfg.FullHost)
	require.Equal(t, "https://tronscan.org/#/transaction/ab", cfg.ExplorerTxURL("ab"))

	cfg = Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "https://api.shasta.trongrid.io", cfg.FullHost)
}

func TestValidateKeepsFullHostOverride(t *testing.T) {
	cfg := Config{PrivateKey: "aa", Network: "NILE", FullHost: "http://127.0.0.1:8090/"}
	require.NoError(t, cfg.Validate())
	require.Equal(t, NetworkNile, cfg.Network)
	require.Equal(t, "http://127.0.0.1:8090", cfg.FullHost)
	require.Equal(t, "https://nile.tronscan.org/#/transaction/abc", cfg.ExplorerTxURL("abc"))
}

func TestApplyWaitTxDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := WaitTxConfig{Confirmations: 27, PollInterval: time.Second, PollMaxRetries: 5, PollBackoffJitter: -1}
	ApplyWaitTxDefaults(&cfg)
	require.Equal(t, int64(27), cfg.Confirmations)
	require.Equal(t, time.Second, cfg.PollInterval)
	require.Equal(t, 5, cfg.PollMaxRetries)
	require.Equal(t, float64(1), cfg.PollBackoffMultiplier)
	require.Zero(t, cfg.PollBackoffJitter)

	ApplyWaitTxDefaults(nil)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PRIVATE_KEY", "0xabcdef")
	t.Setenv("RECEIVER_ADDRESS", "TReceiver")
	t.Setenv("AMOUNT", "2500000")
	t.Setenv("NETWORK", "nile")
	t.Setenv("CONFIRMATIONS", "27")
	t.Setenv("POLL_INTERVAL", "1500ms")
	t.Setenv("RECIPIENTS", "TOne, TTwo,,TThree")

	cfg := Load(NewViper())
	require.Equal(t, "abcdef", cfg.PrivateKey)
	require.Equal(t, "TReceiver", cfg.Receiver)
	require.Equal(t, int64(2_500_000), cfg.Amount)
	require.Equal(t, NetworkNile, cfg.Network)
	require.Equal(t, int64(27), cfg.WaitTx.Confirmations)
	require.Equal(t, 1500*time.Millisecond, cfg.WaitTx.PollInterval)
	require.Equal(t, []string{"TOne", "TTwo", "TThree"}, cfg.Recipients)
	require.Equal(t, DefaultFeeLimit, cfg.FeeLimit)
}

func TestReadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PRIVATE_KEY=ff01\nAMOUNT=42\n"), 0o600))

	v := NewViper()
	require.NoError(t, ReadEnvFile(v, path, true))
	cfg := Load(v)
	require.Equal(t, "ff01", cfg.PrivateKey)
	require.Equal(t, int64(42), cfg.Amount)

	require.NoError(t, ReadEnvFile(NewViper(), filepath.Join(dir, "missing.env"), false))
	require.Error(t, ReadEnvFile(NewViper(), filepath.Join(dir, "missing.env"), true))
}
