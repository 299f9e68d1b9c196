package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suffix-labs/genblock/pkg/logger"
	"github.com/suffix-labs/genblock/pkg/rpc"
	"github.com/suffix-labs/genblock/pkg/wallet"
)

var (
	rpcURL      string
	rpcUser     string
	rpcPassword string
	keyLabel    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the dump's mainnet keys into a node and rescan.",
	RunE:  importRun,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&rpcURL, "url", "u", rpc.DefaultURL, "Wallet RPC endpoint.")
	importCmd.Flags().StringVar(&rpcUser, "user", "", "RPC user.")
	importCmd.Flags().StringVar(&rpcPassword, "password", "", "RPC password.")
	importCmd.Flags().StringVar(&keyLabel, "label", "", "Label for imported keys.")
	importCmd.MarkFlagRequired("user")
	importCmd.MarkFlagRequired("password")
}

func importRun(cmd *cobra.Command, args []string) error {
	log, err := logger.New("KEYTOOL")
	if err != nil {
		return err
	}
	defer log.Sync()

	keys, err := wallet.ParseDumpFile(dumpPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client := rpc.New(rpcURL, rpcUser, rpcPassword, nil)

	for _, k := range keys {
		if err := client.ImportPrivKey(ctx, k.WIF, keyLabel, false); err != nil {
			return fmt.Errorf("importing key from line %d: %w", k.Line, err)
		}
		log.Infow("import", "status", "imported", "line", k.Line, "address", k.Address)
	}

	if err := client.Rescan(ctx); err != nil {
		return fmt.Errorf("rescanning: %w", err)
	}
	log.Infow("import", "status", "rescan complete", "keys", len(keys))

	return nil
}
