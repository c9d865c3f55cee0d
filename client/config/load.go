package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Keys understood by Load. With AutomaticEnv they map 1:1 to upper-case
// environment variables (PRIVATE_KEY, RECEIVER_ADDRESS, ...).
const (
	KeyNetwork                = "network"
	KeyFullHost               = "full_host"
	KeyAPIKey                 = "tron_pro_api_key"
	KeyPrivateKey             = "private_key"
	KeyReceiver               = "receiver_address"
	KeyRecipients             = "recipients"
	KeyAmount                 = "amount"
	KeyFeeLimit               = "fee_limit"
	KeyContractAddress        = "contract_address"
	KeyRequestTimeout         = "request_timeout"
	KeyConfirmations          = "confirmations"
	KeyPollInterval           = "poll_interval"
	KeyPollMaxRetries         = "poll_max_retries"
	KeyPollBackoffMultiplier  = "poll_backoff_multiplier"
	KeyPollBackoffMaxInterval = "poll_backoff_max_interval"
	KeyPollBackoffJitter      = "poll_backoff_jitter"
)

// NewViper returns a viper instance reading the process environment and
// pre-populated with defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	def := Default()
	v.SetDefault(KeyNetwork, string(def.Network))
	v.SetDefault(KeyAmount, def.Amount)
	v.SetDefault(KeyFeeLimit, def.FeeLimit)
	v.SetDefault(KeyRequestTimeout, def.RequestTimeout)
	v.SetDefault(KeyConfirmations, def.WaitTx.Confirmations)
	v.SetDefault(KeyPollInterval, def.WaitTx.PollInterval)
	v.SetDefault(KeyPollMaxRetries, def.WaitTx.PollMaxRetries)
	v.SetDefault(KeyPollBackoffMultiplier, def.WaitTx.PollBackoffMultiplier)
	return v
}

// ReadEnvFile merges a dotenv file into v. A missing file is not an error
// unless required is set.
func ReadEnvFile(v *viper.Viper, path string, required bool) error {
	if path == "" {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from v. Defaults are not validated here; call
// Config.Validate (client.New does) before use.
func Load(v *viper.Viper) Config {
	return Config{
		Network:         Network(v.GetString(KeyNetwork)),
		FullHost:        v.GetString(KeyFullHost),
		APIKey:          v.GetString(KeyAPIKey),
		PrivateKey:      strings.TrimPrefix(v.GetString(KeyPrivateKey), "0x"),
		Receiver:        v.GetString(KeyReceiver),
		Recipients:      splitList(v.Get(KeyRecipients)),
		Amount:          v.GetInt64(KeyAmount),
		FeeLimit:        v.GetInt64(KeyFeeLimit),
		ContractAddress: v.GetString(KeyContractAddress),
		RequestTimeout:  v.GetDuration(KeyRequestTimeout),
		WaitTx: WaitTxConfig{
			Confirmations:          v.GetInt64(KeyConfirmations),
			PollInterval:           v.GetDuration(KeyPollInterval),
			PollMaxRetries:         v.GetInt(KeyPollMaxRetries),
			PollBackoffMultiplier:  v.GetFloat64(KeyPollBackoffMultiplier),
			PollBackoffMaxInterval: v.GetDuration(KeyPollBackoffMaxInterval),
			PollBackoffJitter:      v.GetFloat64(KeyPollBackoffJitter),
		},
	}
}

// splitList accepts either a comma separated string (env, dotenv) or a
// string slice (flags).
func splitList(raw interface{}) []string {
	var parts []string
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.Split(val, ",")
	case []string:
		for _, s := range val {
			parts = append(parts, strings.Split(s, ",")...)
		}
	case []interface{}:
		for _, s := range val {
			parts = append(parts, strings.Split(fmt.Sprint(s), ",")...)
		}
	default:
		parts = strings.Split(fmt.Sprint(val), ",")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
