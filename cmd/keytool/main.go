// keytool migrates testnet wallet keys to mainnet.
//
//	keytool convert --dump wallet.dump
//	keytool import --dump wallet.dump --user rpc --password secret
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var dumpPath string

var rootCmd = &cobra.Command{
	Use:          "keytool",
	Short:        "Convert and import dumpwallet keys",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dumpPath, "dump", "d", "", "Path to a dumpwallet file.")
	rootCmd.MarkPersistentFlagRequired("dump")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
