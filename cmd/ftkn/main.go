package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ftclient "github.com/llakterian/FTkn-d/client"
	clientconfig "github.com/llakterian/FTkn-d/client/config"
	sdklog "github.com/llakterian/FTkn-d/pkg/log"
	"github.com/llakterian/FTkn-d/types"
)

const CmdRoot = "ftkn"

// Exit codes reported to the shell.
const (
	exitOK         = 0
	exitError      = 1
	exitSubmission = 2
	exitTxFailed   = 3
	exitTimedOut   = 4
)

var (
	// Function used to terminate the CLI
	terminate = os.Exit
	// Function used to redirect output to
	outWriter io.Writer = os.Stdout
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(clientconfig.NewViper()).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	terminate(exitCode(err))
}

// exitCode maps terminal outcomes to distinct process exit statuses.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, types.ErrTransactionFailed):
		return exitTxFailed
	case errors.Is(err, types.ErrTimedOut):
		return exitTimedOut
	case errors.Is(err, types.ErrSubmission):
		return exitSubmission
	default:
		return exitError
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var (
		envFile  string
		logLevel string
		devLog   bool
	)

	cmd := &cobra.Command{
		Use:           CmdRoot,
		Short:         "Send TRX or mint TRC-20 tokens and wait for confirmation depth.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return clientconfig.ReadEnvFile(v, envFile, cmd.Flags().Changed("env-file"))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "Dotenv file with PRIVATE_KEY, RECEIVER_ADDRESS, ...")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flags.BoolVar(&devLog, "dev", false, "Human readable console logs")
	flags.String("network", "", "Network preset: mainnet|shasta|nile")
	flags.String("full-host", "", "Full node endpoint, overrides --network")
	flags.String("api-key", "", "TronGrid API key")
	flags.Int64("confirmations", 0, "Blocks required on top of the inclusion block")
	flags.Duration("poll-interval", 0, "Wait between confirmation polls")
	flags.Int("max-retries", 0, "Maximum number of confirmation polls")
	flags.Int64("fee-limit", 0, "Fee limit for contract calls, in sun")
	if err := bindFlags(v, flags, map[string]string{
		"network":       clientconfig.KeyNetwork,
		"full-host":     clientconfig.KeyFullHost,
		"api-key":       clientconfig.KeyAPIKey,
		"confirmations": clientconfig.KeyConfirmations,
		"poll-interval": clientconfig.KeyPollInterval,
		"max-retries":   clientconfig.KeyPollMaxRetries,
		"fee-limit":     clientconfig.KeyFeeLimit,
	}); err != nil {
		panic(err)
	}

	newClient := func(ctx context.Context) (*ftclient.Client, error) {
		logger, err := sdklog.New(logLevel, devLog)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
		}
		cfg := clientconfig.Load(v)
		return ftclient.New(ctx, cfg, ftclient.WithLogger(logger))
	}

	cmd.AddCommand(
		newSendCmd(v, newClient),
		newMintCmd(v, newClient),
		newWatchCmd(newClient),
		newBalanceCmd(newClient),
	)
	return cmd
}

type clientFn func(ctx context.Context) (*ftclient.Client, error)

func newSendCmd(v *viper.Viper, newClient clientFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send TRX to RECEIVER_ADDRESS and wait for confirmations.",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags(), map[string]string{
				"to":     clientconfig.KeyReceiver,
				"amount": clientconfig.KeyAmount,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close() //nolint:errcheck

			cfg := c.Config()
			if cfg.Receiver == "" {
				return fmt.Errorf("%w: receiver address is required", types.ErrInvalidConfig)
			}
			res, err := c.Transfer(cmd.Context(), cfg.Receiver, cfg.Amount)
			if res != nil && res.TxID != "" {
				fmt.Fprintf(outWriter, "Transaction: %s\n", res.TxID)
				fmt.Fprintf(outWriter, "TronScan URL: %s\n", res.ExplorerURL)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(outWriter, "Transaction fully confirmed (%d blocks)\n", res.Confirmation.Depth)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("to", "", "Recipient address (RECEIVER_ADDRESS)")
	flags.Int64("amount", 0, "Amount in sun (AMOUNT)")
	return cmd
}

func newMintCmd(v *viper.Viper, newClient clientFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint TRC-20 tokens to every recipient, one confirmed mint at a time.",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags(), map[string]string{
				"contract": clientconfig.KeyContractAddress,
				"to":       clientconfig.KeyRecipients,
				"amount":   clientconfig.KeyAmount,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close() //nolint:errcheck

			cfg := c.Config()
			recipients := cfg.Recipients
			if len(recipients) == 0 && cfg.Receiver != "" {
				recipients = []string{cfg.Receiver}
			}
			results, err := c.BatchMint(cmd.Context(), recipients, cfg.Amount)
			for _, res := range results {
				if res == nil || res.TxID == "" {
					continue
				}
				fmt.Fprintf(outWriter, "%s\t%s\t%s\t%d blocks\n",
					res.Recipient, res.TxID, res.Confirmation.Status, res.Confirmation.Depth)
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.String("contract", "", "TRC-20 contract address (CONTRACT_ADDRESS)")
	flags.StringSlice("to", nil, "Recipient addresses (RECIPIENTS)")
	flags.Int64("amount", 0, "Amount in token base units (AMOUNT)")
	return cmd
}

func newWatchCmd(newClient clientFn) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <txid>",
		Short: "Wait for an already submitted transaction to reach the confirmation depth.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close() //nolint:errcheck

			res, err := c.Watch(cmd.Context(), args[0])
			fmt.Fprintf(outWriter, "%s\t%s\tblock %d\t%d blocks\t%d attempts\n",
				res.TxID, res.Status, res.InclusionBlock, res.Depth, res.Attempts)
			return err
		},
	}
}

func newBalanceCmd(newClient clientFn) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Print the TRX balance of an address (default: sender).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close() //nolint:errcheck

			addr := c.Address()
			if len(args) == 1 {
				addr = args[0]
			}
			if addr == "" {
				return fmt.Errorf("%w: address argument or private key is required", types.ErrInvalidConfig)
			}
			bal, err := c.Balance(cmd.Context(), addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(outWriter, "%s\t%s TRX\n", addr, ftclient.FormatTRX(bal))
			return nil
		},
	}
}

// bindFlags wires flags into viper so that explicitly set flags take
// precedence over env values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
